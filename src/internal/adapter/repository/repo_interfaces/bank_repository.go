package repo_interfaces

import (
	"context"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
)

type BankRepository interface {
	GetByCountry(ctx context.Context, country domain.Country) ([]domain.Bank, error)
}
