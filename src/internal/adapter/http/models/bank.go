package models

import (
	"strings"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
)

type BankListRequest struct {
	Direction string
	Query     string
}

func (r BankListRequest) Validate() error {
	if strings.TrimSpace(r.Direction) == "" {
		return nil
	}
	_, err := domain.ParseDirection(r.Direction)
	return err
}

type BankResponse struct {
	BankName string `json:"bankName"`
	Country  string `json:"country"`
}
