package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/memory"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteServiceGetQuote(t *testing.T) {
	svc := services.NewQuoteService()

	resp, err := svc.GetQuote(context.Background(), models.QuoteRequest{Amount: "100", Direction: "SOM_TO_UGA"})
	require.NoError(t, err)

	q := resp.Data
	assert.Equal(t, "375000", q.AmountReceive)
	assert.Equal(t, domain.CurrencyUGX, q.CurrencyReceive)
	assert.Equal(t, "1.50", q.Fee)
	assert.Equal(t, "101.50", q.TotalToPay)
	assert.Equal(t, "1.5", q.FeePercentage)
	assert.Equal(t, "1 USD = 3,750 UGX", q.RateDisplay)

	resp, err = svc.GetQuote(context.Background(), models.QuoteRequest{Amount: "10000", Direction: "uga_to_som"})
	require.NoError(t, err)
	assert.Equal(t, "2.60", resp.Data.AmountReceive)
	assert.Equal(t, "150.00", resp.Data.Fee)
	assert.Equal(t, "10,000 UGX = 2.60 USD", resp.Data.RateDisplay)
}

func TestQuoteServiceRejectsBadAmount(t *testing.T) {
	svc := services.NewQuoteService()

	resp, err := svc.GetQuote(context.Background(), models.QuoteRequest{Amount: "abc", Direction: "SIDEWAYS"})
	require.Error(t, err)
	assert.Equal(t, commons.MessageValidationFailed, resp.Message)
	assert.Len(t, resp.Errors, 2)
}

func TestBankServiceGetBanksByDirection(t *testing.T) {
	svc := services.NewBankService(memory.NewBankRepository())

	resp, err := svc.GetBanks(context.Background(), models.BankListRequest{Direction: "SOM_TO_UGA"})
	require.NoError(t, err)
	require.NotEmpty(t, *resp.Data)
	for _, bank := range *resp.Data {
		assert.Equal(t, domain.CountryUganda.Name(), bank.Country)
	}

	resp, err = svc.GetBanks(context.Background(), models.BankListRequest{Direction: "UGA_TO_SOM", Query: "premier"})
	require.NoError(t, err)
	require.Len(t, *resp.Data, 1)
	assert.Equal(t, "Premier Bank", (*resp.Data)[0].BankName)
}

func TestPreferenceServiceRoundTrip(t *testing.T) {
	svc := services.NewPreferenceService(newLedgerStore(t))

	resp, err := svc.GetTheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, resp.Data.Theme)

	_, err = svc.SetTheme(context.Background(), models.ThemeRequest{Theme: "dark"})
	require.NoError(t, err)

	resp, err = svc.GetTheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, resp.Data.Theme)

	_, err = svc.SetTheme(context.Background(), models.ThemeRequest{Theme: "sepia"})
	require.Error(t, err)
}
