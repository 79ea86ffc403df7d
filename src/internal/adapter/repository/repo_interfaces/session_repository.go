package repo_interfaces

import (
	"context"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.TransferSession) (domain.TransferSession, error)
	Get(ctx context.Context, id string) (domain.TransferSession, error)
	// Update applies mutate atomically. If mutate fails nothing is stored.
	Update(ctx context.Context, id string, mutate func(*domain.TransferSession) error) (domain.TransferSession, error)
}
