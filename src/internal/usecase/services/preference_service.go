package services

import (
	"context"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
)

type PreferenceService struct {
	repo repo_interfaces.PreferenceRepository
}

func NewPreferenceService(repo repo_interfaces.PreferenceRepository) *PreferenceService {
	return &PreferenceService{repo: repo}
}

func (s *PreferenceService) GetTheme(ctx context.Context) (commons.Response[models.ThemeResponse], error) {
	theme, err := s.repo.GetTheme(ctx)
	if err != nil {
		logger.Error("preference service get theme failed", err, nil)
		return commons.ErrorResponse[models.ThemeResponse]("failed to fetch theme", "Unable to fetch theme right now"), err
	}
	return commons.SuccessResponse("theme fetched successfully", models.ThemeResponse{Theme: theme}), nil
}

func (s *PreferenceService) SetTheme(ctx context.Context, req models.ThemeRequest) (commons.Response[models.ThemeResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ValidationResponse[models.ThemeResponse](err), err
	}

	theme, _ := domain.ParseTheme(req.Theme)
	if err := s.repo.SetTheme(ctx, theme); err != nil {
		logger.Error("preference service set theme failed", err, logger.Fields{"theme": theme})
		return commons.ErrorResponse[models.ThemeResponse]("failed to save theme", "Unable to save theme right now"), err
	}

	logger.Info("preference service set theme success", logger.Fields{"theme": theme})
	return commons.SuccessResponse("theme saved successfully", models.ThemeResponse{Theme: theme}), nil
}
