package services_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/file"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type generatorMock struct {
	mock.Mock
}

func (m *generatorMock) GenerateStatus(ctx context.Context, draft domain.TransactionDraft) (domain.TransactionResult, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(domain.TransactionResult), args.Error(1)
}

type notifierMock struct {
	mock.Mock
}

func (m *notifierMock) NotifyAdminOfNewRequest(ctx context.Context, r domain.TransactionRecord) error {
	return m.Called(ctx, r).Error(0)
}

func (m *notifierMock) SendReceiptToSender(ctx context.Context, r domain.TransactionRecord) error {
	return m.Called(ctx, r).Error(0)
}

func (m *notifierMock) NotifySenderOfCompletion(ctx context.Context, r domain.TransactionRecord) error {
	return m.Called(ctx, r).Error(0)
}

func (m *notifierMock) NotifyRecipientOfFunds(ctx context.Context, r domain.TransactionRecord) error {
	return m.Called(ctx, r).Error(0)
}

func (m *notifierMock) SendAdminDigest(ctx context.Context, subject, body string) error {
	return m.Called(ctx, subject, body).Error(0)
}

// countingLedger wraps a real store and can fail or report duplicates on demand.
type countingLedger struct {
	*file.LedgerStore

	mu       sync.Mutex
	prepends int
	failWith error
}

func (l *countingLedger) Prepend(ctx context.Context, record domain.TransactionRecord) error {
	l.mu.Lock()
	l.prepends++
	failWith := l.failWith
	l.mu.Unlock()

	if failWith != nil {
		return failWith
	}
	return l.LedgerStore.Prepend(ctx, record)
}

func newLedgerStore(t *testing.T) *file.LedgerStore {
	t.Helper()
	store, err := file.NewLedgerStore(filepath.Join(t.TempDir(), "ledger.json"))
	require.NoError(t, err)
	return store
}

func validParties() models.SetPartiesRequest {
	return models.SetPartiesRequest{
		SenderName:  "Amina Warsame",
		SenderPhone: "0615123456",
		SenderEmail: "amina@example.com",
		Recipient: models.RecipientRequest{
			FullName:         "John Okello",
			Phone:            "+256 772 123 456",
			WithdrawalMethod: "MOBILE_MONEY",
			Network:          "MTN_UGANDA",
		},
	}
}
