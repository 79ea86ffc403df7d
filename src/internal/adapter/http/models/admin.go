package models

import (
	"errors"
	"strings"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/shopspring/decimal"
)

type UnlockRequest struct {
	Pin string `json:"pin"`
}

type UnlockResponse struct {
	Unlocked bool `json:"unlocked"`
}

const (
	SortByTimestamp = "timestamp"
	SortByAmount    = "amount"
	SortByFees      = "fees"
)

type ListTransactionsRequest struct {
	Query     string
	Status    string
	SortBy    string
	SortOrder string
}

func (r ListTransactionsRequest) Validate() error {
	var errs []string

	if status := strings.TrimSpace(r.Status); status != "" && !domain.TransactionStatus(strings.ToUpper(status)).Valid() {
		errs = append(errs, "status is not supported")
	}
	switch strings.ToLower(strings.TrimSpace(r.SortBy)) {
	case "", SortByTimestamp, SortByAmount, SortByFees:
	default:
		errs = append(errs, "sortBy must be timestamp, amount or fees")
	}
	switch strings.ToLower(strings.TrimSpace(r.SortOrder)) {
	case "", "asc", "desc":
	default:
		errs = append(errs, "sortOrder must be asc or desc")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransactionListResponse struct {
	Transactions []domain.TransactionRecord `json:"transactions"`
	Count        int                        `json:"count"`
}

type ManualEntryRequest struct {
	SenderName string          `json:"senderName"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
}

func (r ManualEntryRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.SenderName) == "" {
		errs = append(errs, "senderName is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	if _, err := domain.ParseCurrency(r.Currency); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type ApproveResponse struct {
	Transaction       domain.TransactionRecord `json:"transaction"`
	NotificationsSent bool                     `json:"notificationsSent"`
	Skipped           []string                 `json:"skipped,omitempty"`
	Feedback          string                   `json:"feedback"`
}

type ExportFile struct {
	Filename string
	Content  []byte
}

type DailyAggregate struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Volume  string `json:"volume"`
	Revenue string `json:"revenue"`
}

type AnalyticsResponse struct {
	Days              []DailyAggregate `json:"days"`
	TotalVolume       string           `json:"totalVolume"`
	TotalRevenue      string           `json:"totalRevenue"`
	TotalTransactions int              `json:"totalTransactions"`
	DistinctSenders   int              `json:"distinctSenders"`
	PendingCount      int              `json:"pendingCount"`
}
