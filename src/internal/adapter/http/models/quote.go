package models

import (
	"errors"
	"strings"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/shopspring/decimal"
)

type QuoteRequest struct {
	Amount    string `json:"amount"`
	Direction string `json:"direction"`
}

func (r QuoteRequest) Validate() error {
	var errs []string

	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		errs = append(errs, "amount must be a valid number")
	} else if amount.IsNegative() {
		errs = append(errs, "amount cannot be negative")
	}

	if strings.TrimSpace(r.Direction) != "" {
		if _, err := domain.ParseDirection(r.Direction); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type QuoteResponse struct {
	Direction       domain.Direction `json:"direction"`
	AmountSend      string           `json:"amountSend"`
	CurrencySend    domain.Currency  `json:"currencySend"`
	AmountReceive   string           `json:"amountReceive"`
	CurrencyReceive domain.Currency  `json:"currencyReceive"`
	Rate            string           `json:"rate"`
	RateDisplay     string           `json:"rateDisplay"`
	Fee             string           `json:"fee"`
	FeePercentage   string           `json:"feePercentage"`
	TotalToPay      string           `json:"totalToPay"`
}
