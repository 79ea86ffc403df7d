package models

import "github.com/api-sage/somaluganda-remit/src/internal/domain"

type ThemeRequest struct {
	Theme string `json:"theme"`
}

func (r ThemeRequest) Validate() error {
	_, err := domain.ParseTheme(r.Theme)
	return err
}

type ThemeResponse struct {
	Theme domain.Theme `json:"theme"`
}
