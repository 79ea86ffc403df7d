package service_interfaces

import (
	"context"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
)

type LedgerService interface {
	Record(ctx context.Context, build func(attempt int) domain.TransactionRecord) (domain.TransactionRecord, error)
	List(ctx context.Context) ([]domain.TransactionRecord, error)
	Get(ctx context.Context, transactionID string) (domain.TransactionRecord, error)
	Approve(ctx context.Context, transactionID string) (domain.TransactionRecord, error)
}
