package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusSuccess             TransactionStatus = "SUCCESS"
	TransactionStatusFailed              TransactionStatus = "FAILED"
	TransactionStatusPending             TransactionStatus = "PENDING"
	TransactionStatusWaitingVerification TransactionStatus = "WAITING_VERIFICATION"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusSuccess, TransactionStatusFailed, TransactionStatusPending, TransactionStatusWaitingVerification:
		return true
	default:
		return false
	}
}

// Approvable reports whether an admin may move the record to SUCCESS.
func (s TransactionStatus) Approvable() bool {
	return s == TransactionStatusPending || s == TransactionStatusWaitingVerification
}

type Recipient struct {
	FullName         string           `json:"fullName"`
	Phone            string           `json:"phone"`
	WithdrawalMethod WithdrawalMethod `json:"withdrawalMethod"`
	Network          Network          `json:"network,omitempty"`
	BankName         string           `json:"bankName,omitempty"`
	AccountNumber    string           `json:"accountNumber,omitempty"`
}

type TransactionResult struct {
	TransactionID    string            `json:"transactionId"`
	Status           TransactionStatus `json:"status"`
	Message          string            `json:"message"`
	EstimatedArrival string            `json:"estimatedArrival"`
	Fees             decimal.Decimal   `json:"fees"`
}

// SanitizeResult replaces any externally supplied fee with the local one.
// Every status result passes through here before it reaches the ledger.
func SanitizeResult(result TransactionResult, amountSend decimal.Decimal) TransactionResult {
	result.Fees = Fee(amountSend)
	return result
}

type TransactionRecord struct {
	TransactionDraft
	TransactionResult
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionRecord(draft TransactionDraft, result TransactionResult, at time.Time) TransactionRecord {
	return TransactionRecord{
		TransactionDraft:  draft,
		TransactionResult: result,
		Timestamp:         at.UTC(),
	}
}

// Matches reports a case-insensitive substring hit on ID, sender or recipient.
func (r TransactionRecord) Matches(needle string) bool {
	if needle == "" {
		return true
	}
	return containsFold(r.TransactionID, needle) ||
		containsFold(r.SenderName, needle) ||
		containsFold(r.Recipient.FullName, needle)
}
