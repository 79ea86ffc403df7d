package repo_interfaces

import (
	"context"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
)

// LedgerRepository stores transaction records newest-first, keyed by
// transaction ID. Prepend returns commons.ErrDuplicateRecord for a used ID.
type LedgerRepository interface {
	Prepend(ctx context.Context, record domain.TransactionRecord) error
	List(ctx context.Context) ([]domain.TransactionRecord, error)
	Get(ctx context.Context, transactionID string) (domain.TransactionRecord, error)
	UpdateStatus(ctx context.Context, transactionID string, status domain.TransactionStatus) (domain.TransactionRecord, error)
}
