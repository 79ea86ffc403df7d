package memory

import (
	"context"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
)

type BankRepository struct{}

func NewBankRepository() *BankRepository {
	return &BankRepository{}
}

func (r *BankRepository) GetByCountry(_ context.Context, country domain.Country) ([]domain.Bank, error) {
	var names []string
	switch country {
	case domain.CountryUganda:
		names = []string{
			"Stanbic Bank",
			"Centenary Bank",
			"Absa Bank Uganda",
			"Equity Bank Uganda",
			"DFCU Bank",
			"Standard Chartered",
			"Bank of Baroda",
			"KCB Bank Uganda",
			"Housing Finance Bank",
			"PostBank Uganda",
		}
	case domain.CountrySomalia:
		names = []string{
			"Premier Bank",
			"IBS Bank",
			"Salaam Somali Bank",
			"Amal Bank",
			"Dahabshil Bank",
			"MyBank",
		}
	}

	banks := make([]domain.Bank, 0, len(names))
	for _, name := range names {
		banks = append(banks, domain.Bank{BankName: name, Country: country})
	}

	return banks, nil
}
