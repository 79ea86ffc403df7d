package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
)

const maxRecordAttempts = 5

type LedgerService struct {
	repo repo_interfaces.LedgerRepository

	approveMu sync.Mutex
}

func NewLedgerService(repo repo_interfaces.LedgerRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

// Record prepends the record produced by build. When the transaction ID is
// already taken, build is called again with the next attempt number so it
// can mint a fresh ID.
func (s *LedgerService) Record(ctx context.Context, build func(attempt int) domain.TransactionRecord) (domain.TransactionRecord, error) {
	var (
		record domain.TransactionRecord
		err    error
	)
	for attempt := 0; attempt < maxRecordAttempts; attempt++ {
		record = build(attempt)
		err = s.repo.Prepend(ctx, record)
		if err == nil {
			logger.Info("ledger service record success", logger.Fields{
				"transactionId": record.TransactionID,
				"status":        record.Status,
				"attempt":       attempt,
			})
			return record, nil
		}
		if !errors.Is(err, commons.ErrDuplicateRecord) {
			logger.Error("ledger service record failed", err, logger.Fields{
				"transactionId": record.TransactionID,
			})
			return domain.TransactionRecord{}, err
		}
		logger.Warn("ledger service duplicate transaction id, regenerating", logger.Fields{
			"transactionId": record.TransactionID,
			"attempt":       attempt,
		})
	}

	return domain.TransactionRecord{}, fmt.Errorf("record transaction after %d attempts: %w", maxRecordAttempts, err)
}

func (s *LedgerService) List(ctx context.Context) ([]domain.TransactionRecord, error) {
	return s.repo.List(ctx)
}

func (s *LedgerService) Get(ctx context.Context, transactionID string) (domain.TransactionRecord, error) {
	return s.repo.Get(ctx, transactionID)
}

// Approve moves a PENDING or WAITING_VERIFICATION record to SUCCESS.
func (s *LedgerService) Approve(ctx context.Context, transactionID string) (domain.TransactionRecord, error) {
	s.approveMu.Lock()
	defer s.approveMu.Unlock()

	current, err := s.repo.Get(ctx, transactionID)
	if err != nil {
		return domain.TransactionRecord{}, err
	}
	if !current.Status.Approvable() {
		return domain.TransactionRecord{}, fmt.Errorf("approve %s in status %s: %w", transactionID, current.Status, commons.ErrInvalidStatus)
	}

	updated, err := s.repo.UpdateStatus(ctx, transactionID, domain.TransactionStatusSuccess)
	if err != nil {
		return domain.TransactionRecord{}, err
	}

	logger.Info("ledger service approve success", logger.Fields{
		"transactionId": transactionID,
		"previous":      current.Status,
	})
	return updated, nil
}
