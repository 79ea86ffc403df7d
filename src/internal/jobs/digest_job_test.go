package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerStub struct {
	records []domain.TransactionRecord
	err     error
}

func (s ledgerStub) List(context.Context) ([]domain.TransactionRecord, error) {
	return s.records, s.err
}

type digestStub struct {
	subject string
	body    string
	calls   int
}

func (s *digestStub) SendAdminDigest(_ context.Context, subject, body string) error {
	s.calls++
	s.subject = subject
	s.body = body
	return nil
}

func TestSendAdminDigest(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)
	records := []domain.TransactionRecord{
		{
			TransactionDraft:  domain.TransactionDraft{AmountSend: decimal.NewFromInt(100), CurrencySend: domain.CurrencyUSD, SenderPhone: "615123456"},
			TransactionResult: domain.TransactionResult{TransactionID: "LOC-000001", Status: domain.TransactionStatusSuccess, Fees: decimal.RequireFromString("1.5")},
			Timestamp:         now.Add(-time.Hour),
		},
		{
			TransactionDraft:  domain.TransactionDraft{AmountSend: decimal.NewFromInt(20), CurrencySend: domain.CurrencyUSD, SenderPhone: "615000000"},
			TransactionResult: domain.TransactionResult{TransactionID: "LOC-000002", Status: domain.TransactionStatusWaitingVerification, Fees: decimal.RequireFromString("0.3")},
			Timestamp:         now.Add(-2 * time.Hour),
		},
	}

	digest := &digestStub{}
	runner := NewJobRunner(ledgerStub{records: records}, digest, time.Second)
	runner.now = func() time.Time { return now }

	runner.SendAdminDigest()

	require.Equal(t, 1, digest.calls)
	assert.Equal(t, "SomalUganda Remit daily digest: 1 awaiting approval", digest.subject)
	assert.Contains(t, digest.body, "Daily summary for 2026-03-10 (UTC)")
	assert.Contains(t, digest.body, "Awaiting approval: 1")
	assert.Contains(t, digest.body, "Tue 2026-03-10  volume 100.00  fees 1.50")
}

func TestSendAdminDigestSkipsOnLedgerError(t *testing.T) {
	digest := &digestStub{}
	runner := NewJobRunner(ledgerStub{err: errors.New("store offline")}, digest, time.Second)

	runner.SendAdminDigest()

	assert.Equal(t, 0, digest.calls)
}
