package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
)

const themeKey = "theme"

type PreferenceRepository struct {
	db *sql.DB
}

func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) GetTheme(ctx context.Context) (domain.Theme, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = $1`, themeKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ThemeLight, nil
	}
	if err != nil {
		return "", fmt.Errorf("get theme: %w", err)
	}

	theme, err := domain.ParseTheme(value)
	if err != nil {
		return domain.ThemeLight, nil
	}
	return theme, nil
}

func (r *PreferenceRepository) SetTheme(ctx context.Context, theme domain.Theme) error {
	const query = `
INSERT INTO preferences (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, themeKey, string(theme)); err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	return nil
}
