package repo_interfaces

import (
	"context"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
)

type PreferenceRepository interface {
	GetTheme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, theme domain.Theme) error
}
