package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/memory"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/usecase/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type submissionFixture struct {
	wizard     *services.WizardService
	submission *services.SubmissionService
	ledger     *countingLedger
	generator  *generatorMock
	notifier   *notifierMock
	dispatcher *services.Dispatcher
}

func newSubmissionFixture(t *testing.T, offline bool) *submissionFixture {
	t.Helper()

	sessions := memory.NewSessionRepository(time.Hour)
	ledger := &countingLedger{LedgerStore: newLedgerStore(t)}
	generator := &generatorMock{}
	notifier := &notifierMock{}
	dispatcher := services.NewDispatcher(context.Background(), time.Second)

	f := &submissionFixture{
		wizard:     services.NewWizardService(sessions, testAgents),
		ledger:     ledger,
		generator:  generator,
		notifier:   notifier,
		dispatcher: dispatcher,
	}
	f.submission = services.NewSubmissionService(
		sessions,
		services.NewLedgerService(ledger),
		generator,
		notifier,
		dispatcher,
		services.SubmissionOptions{Offline: offline, StatusTimeout: time.Second},
	)
	services.SetSubmissionClock(f.submission, func() time.Time {
		return time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	})
	return f
}

// reviewedSession walks a new session to REVIEW with 100 USD going to Uganda.
func (f *submissionFixture) reviewedSession(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	id := startSession(t, f.wizard)
	_, err := f.wizard.SetAmount(ctx, id, models.SetAmountRequest{Amount: decimal.NewFromInt(100), Direction: "SOM_TO_UGA"})
	require.NoError(t, err)
	_, err = f.wizard.SetParties(ctx, id, validParties())
	require.NoError(t, err)
	return id
}

func (f *submissionFixture) expectNewRequestNotices() {
	f.notifier.On("NotifyAdminOfNewRequest", mock.Anything, mock.Anything).Return(nil).Once()
	f.notifier.On("SendReceiptToSender", mock.Anything, mock.Anything).Return(nil).Once()
}

func TestSubmissionServiceConfirmRecordsSanitizedResult(t *testing.T) {
	f := newSubmissionFixture(t, false)
	id := f.reviewedSession(t)

	f.generator.On("GenerateStatus", mock.Anything, mock.MatchedBy(func(d domain.TransactionDraft) bool {
		return d.SenderTransactionRef == "CI2309XY"
	})).Return(domain.TransactionResult{
		TransactionID:    "SUG7F2K9Q1ZP",
		Status:           domain.TransactionStatusWaitingVerification,
		Message:          "We have received your request.",
		EstimatedArrival: "15-30 Minutes",
		Fees:             decimal.NewFromInt(999),
	}, nil).Once()
	f.expectNewRequestNotices()

	resp, err := f.submission.Confirm(context.Background(), id, models.ConfirmRequest{Reference: "  CI2309XY "})
	require.NoError(t, err)
	f.dispatcher.Wait()

	require.True(t, resp.Success)
	assert.Equal(t, domain.StepReceipt, resp.Data.Step)
	assert.Equal(t, "SUG7F2K9Q1ZP", resp.Data.Transaction.TransactionID)
	assert.True(t, resp.Data.Transaction.Fees.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, "CI2309XY", resp.Data.Transaction.SenderTransactionRef)

	records, err := f.ledger.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Fees.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, records[0].AmountReceive.Equal(decimal.NewFromInt(375000)))

	f.generator.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestSubmissionServiceConfirmFallsBackWhenGeneratorFails(t *testing.T) {
	f := newSubmissionFixture(t, false)
	id := f.reviewedSession(t)

	f.generator.On("GenerateStatus", mock.Anything, mock.Anything).
		Return(domain.TransactionResult{}, errors.New("upstream unavailable")).Once()
	f.expectNewRequestNotices()

	resp, err := f.submission.Confirm(context.Background(), id, models.ConfirmRequest{Reference: "REF-1234"})
	require.NoError(t, err)
	f.dispatcher.Wait()

	tx := resp.Data.Transaction
	assert.True(t, strings.HasPrefix(tx.TransactionID, "LOC-"))
	assert.Len(t, tx.TransactionID, len("LOC-")+6)
	assert.Equal(t, domain.TransactionStatusWaitingVerification, tx.Status)
	assert.Equal(t, "Request received. We are verifying your payment manually.", tx.Message)
	assert.Equal(t, "30 Minutes", tx.EstimatedArrival)
	assert.True(t, tx.Fees.Equal(decimal.RequireFromString("1.5")))
}

func TestSubmissionServiceConfirmOffline(t *testing.T) {
	f := newSubmissionFixture(t, true)
	id := f.reviewedSession(t)
	f.expectNewRequestNotices()

	resp, err := f.submission.Confirm(context.Background(), id, models.ConfirmRequest{Reference: "REF-1234"})
	require.NoError(t, err)
	f.dispatcher.Wait()

	tx := resp.Data.Transaction
	assert.True(t, strings.HasPrefix(tx.TransactionID, "OFFLINE-"))
	assert.Equal(t, "Offline Mode: Request saved locally. Admin will verify when back online.", tx.Message)
	assert.Equal(t, "When Online", tx.EstimatedArrival)
	f.generator.AssertNotCalled(t, "GenerateStatus", mock.Anything, mock.Anything)
}

func TestSubmissionServiceConfirmRegeneratesDuplicateID(t *testing.T) {
	f := newSubmissionFixture(t, false)
	require.NoError(t, f.ledger.LedgerStore.Prepend(context.Background(), domain.TransactionRecord{
		TransactionResult: domain.TransactionResult{TransactionID: "SUG-TAKEN", Status: domain.TransactionStatusSuccess},
	}))
	id := f.reviewedSession(t)

	f.generator.On("GenerateStatus", mock.Anything, mock.Anything).Return(domain.TransactionResult{
		TransactionID:    "SUG-TAKEN",
		Status:           domain.TransactionStatusPending,
		Message:          "ok",
		EstimatedArrival: "15-30 Minutes",
	}, nil).Once()
	f.expectNewRequestNotices()

	resp, err := f.submission.Confirm(context.Background(), id, models.ConfirmRequest{Reference: "REF-1234"})
	require.NoError(t, err)
	f.dispatcher.Wait()

	assert.True(t, strings.HasPrefix(resp.Data.Transaction.TransactionID, "LOC-"))
	assert.Equal(t, domain.TransactionStatusPending, resp.Data.Transaction.Status)

	records, err := f.ledger.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSubmissionServiceConfirmIsExactlyOnce(t *testing.T) {
	f := newSubmissionFixture(t, true)
	id := f.reviewedSession(t)
	f.expectNewRequestNotices()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.submission.Confirm(context.Background(), id, models.ConfirmRequest{Reference: "REF-1234"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, commons.ErrSubmitInProgress):
				conflicts++
			}
		}()
	}
	wg.Wait()
	f.dispatcher.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, f.ledger.prepends)

	resp, err := f.submission.Confirm(context.Background(), id, models.ConfirmRequest{Reference: "REF-1234"})
	require.ErrorIs(t, err, commons.ErrSubmitInProgress)
	assert.Equal(t, commons.MessageInProgress, resp.Message)
}

func TestSubmissionServiceConfirmRejectsShortReference(t *testing.T) {
	f := newSubmissionFixture(t, true)
	id := f.reviewedSession(t)

	resp, err := f.submission.Confirm(context.Background(), id, models.ConfirmRequest{Reference: " ab "})
	require.Error(t, err)
	assert.Equal(t, commons.MessageValidationFailed, resp.Message)
	assert.Equal(t, 0, f.ledger.prepends)
}

func TestSubmissionServiceConfirmRequiresReviewStep(t *testing.T) {
	f := newSubmissionFixture(t, true)
	id := startSession(t, f.wizard)

	_, err := f.submission.Confirm(context.Background(), id, models.ConfirmRequest{Reference: "REF-1234"})
	require.ErrorIs(t, err, commons.ErrInvalidStep)
}

func TestSubmissionServiceLedgerFailureStaysInReview(t *testing.T) {
	f := newSubmissionFixture(t, true)
	id := f.reviewedSession(t)
	f.ledger.failWith = errors.New("disk full")

	resp, err := f.submission.Confirm(context.Background(), id, models.ConfirmRequest{Reference: "REF-1234"})
	require.Error(t, err)
	assert.False(t, resp.Success)

	session, err := f.wizard.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepReview, session.Data.Step)

	// The sender can retry once storage recovers.
	f.ledger.failWith = nil
	f.expectNewRequestNotices()
	_, err = f.submission.Confirm(context.Background(), id, models.ConfirmRequest{Reference: "REF-1234"})
	require.NoError(t, err)
	f.dispatcher.Wait()
	f.notifier.AssertExpectations(t)
}

func TestSubmissionServiceSkipsReceiptWithoutEmail(t *testing.T) {
	f := newSubmissionFixture(t, true)
	ctx := context.Background()
	id := startSession(t, f.wizard)
	_, err := f.wizard.SetAmount(ctx, id, models.SetAmountRequest{Amount: decimal.NewFromInt(10), Direction: "SOM_TO_UGA"})
	require.NoError(t, err)
	req := validParties()
	req.SenderEmail = ""
	_, err = f.wizard.SetParties(ctx, id, req)
	require.NoError(t, err)

	f.notifier.On("NotifyAdminOfNewRequest", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	resp, err := f.submission.Confirm(ctx, id, models.ConfirmRequest{Reference: "REF-1234"})
	require.NoError(t, err)
	f.dispatcher.Wait()

	assert.True(t, resp.Success)
	f.notifier.AssertExpectations(t)
	f.notifier.AssertNotCalled(t, "SendReceiptToSender", mock.Anything, mock.Anything)
	f.assertSingleRecord(t, resp.Data.Transaction.TransactionID)
}

func TestSubmissionServiceReceiptFailureKeepsSingleRecord(t *testing.T) {
	f := newSubmissionFixture(t, true)
	id := f.reviewedSession(t)

	f.notifier.On("NotifyAdminOfNewRequest", mock.Anything, mock.Anything).Return(nil).Once()
	f.notifier.On("SendReceiptToSender", mock.Anything, mock.Anything).Return(errors.New("mailbox unavailable")).Once()

	resp, err := f.submission.Confirm(context.Background(), id, models.ConfirmRequest{Reference: "REF-1234"})
	require.NoError(t, err)
	f.dispatcher.Wait()

	assert.True(t, resp.Success)
	assert.Equal(t, domain.StepReceipt, resp.Data.Step)
	f.notifier.AssertExpectations(t)
	f.assertSingleRecord(t, resp.Data.Transaction.TransactionID)
}

// assertSingleRecord checks that notification failures neither duplicated nor dropped the write.
func (f *submissionFixture) assertSingleRecord(t *testing.T, transactionID string) {
	t.Helper()
	assert.Equal(t, 1, f.ledger.prepends)

	records, err := f.ledger.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, transactionID, records[0].TransactionID)
}
