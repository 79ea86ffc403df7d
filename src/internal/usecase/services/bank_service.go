package services

import (
	"context"
	"strings"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
)

type BankService struct {
	bankRepo repo_interfaces.BankRepository
}

func NewBankService(bankRepo repo_interfaces.BankRepository) *BankService {
	return &BankService{bankRepo: bankRepo}
}

// GetBanks lists banks in the recipient country for the corridor.
func (s *BankService) GetBanks(ctx context.Context, req models.BankListRequest) (commons.Response[[]models.BankResponse], error) {
	logger.Info("bank service get banks request", logger.Fields{
		"direction": req.Direction,
		"query":     req.Query,
	})

	if err := req.Validate(); err != nil {
		return commons.ValidationResponse[[]models.BankResponse](err), err
	}

	direction := domain.DirectionSomToUga
	if strings.TrimSpace(req.Direction) != "" {
		direction, _ = domain.ParseDirection(req.Direction)
	}

	banks, err := s.bankRepo.GetByCountry(ctx, domain.RecipientCountry(direction))
	if err != nil {
		logger.Error("bank service get banks failed", err, nil)
		return commons.ErrorResponse[[]models.BankResponse]("failed to fetch banks", "Unable to fetch banks right now"), err
	}

	needle := strings.ToLower(strings.TrimSpace(req.Query))
	resp := make([]models.BankResponse, 0, len(banks))
	for _, bank := range banks {
		if needle != "" && !strings.Contains(strings.ToLower(bank.BankName), needle) {
			continue
		}
		resp = append(resp, models.BankResponse{
			BankName: bank.BankName,
			Country:  bank.Country.Name(),
		})
	}

	logger.Info("bank service get banks success", logger.Fields{
		"count": len(resp),
	})

	return commons.SuccessResponse("banks fetched successfully", resp), nil
}
