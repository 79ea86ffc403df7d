package services

import (
	"context"
	"strings"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
	"github.com/shopspring/decimal"
)

type QuoteService struct{}

func NewQuoteService() *QuoteService {
	return &QuoteService{}
}

func (s *QuoteService) GetQuote(ctx context.Context, req models.QuoteRequest) (commons.Response[models.QuoteResponse], error) {
	logger.Info("quote service get quote request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	_ = ctx
	if err := req.Validate(); err != nil {
		logger.Error("quote service get quote validation failed", err, nil)
		return commons.ValidationResponse[models.QuoteResponse](err), err
	}

	direction := domain.DirectionSomToUga
	if strings.TrimSpace(req.Direction) != "" {
		direction, _ = domain.ParseDirection(req.Direction)
	}
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))

	response := Quote(amount, direction)

	logger.Info("quote service get quote success", logger.Fields{
		"direction":     response.Direction,
		"amountSend":    response.AmountSend,
		"amountReceive": response.AmountReceive,
		"fee":           response.Fee,
	})

	return commons.SuccessResponse("quote fetched successfully", response), nil
}

// Quote prices a send amount. Figures are display strings; the ledger keeps
// exact decimals.
func Quote(amount decimal.Decimal, direction domain.Direction) models.QuoteResponse {
	fee := domain.Fee(amount)
	receivePlaces := int32(2)
	if direction.ReceiveCurrency() == domain.CurrencyUGX {
		receivePlaces = 0
	}

	return models.QuoteResponse{
		Direction:       direction,
		AmountSend:      amount.StringFixed(2),
		CurrencySend:    direction.SendCurrency(),
		AmountReceive:   domain.ReceiveAmount(amount, direction).StringFixed(receivePlaces),
		CurrencyReceive: direction.ReceiveCurrency(),
		Rate:            domain.Rate(direction).String(),
		RateDisplay:     domain.RateDisplay(direction),
		Fee:             fee.StringFixed(2),
		FeePercentage:   domain.FeePercentage.Mul(decimal.NewFromInt(100)).String(),
		TotalToPay:      amount.Add(fee).StringFixed(2),
	}
}
