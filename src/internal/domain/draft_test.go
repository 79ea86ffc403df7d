package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()

	assert.Equal(t, DirectionSomToUga, d.Direction)
	assert.Equal(t, CurrencyUSD, d.CurrencySend)
	assert.Equal(t, CurrencyUGX, d.CurrencyReceive)
	assert.Equal(t, WithdrawalMobileMoney, d.Recipient.WithdrawalMethod)
	assert.Equal(t, NetworkMTNUganda, d.Recipient.Network)
	assert.True(t, d.AmountReceive.IsZero())
}

func TestSetAmountDerivesReceiveSide(t *testing.T) {
	d := NewDraft()
	d.SetAmount(decimal.NewFromInt(100), DirectionSomToUga)

	assert.True(t, d.AmountReceive.Equal(decimal.NewFromInt(375000)))
	assert.Equal(t, "1.50", d.Fee().StringFixed(2))
	assert.Equal(t, "101.50", d.TotalToPay().StringFixed(2))
}

func TestSetAmountSwitchingDirectionClearsPhones(t *testing.T) {
	d := NewDraft()
	d.SetParties(Parties{
		Recipient:   Recipient{FullName: "Jane", Phone: "0772123456", WithdrawalMethod: WithdrawalMobileMoney, Network: NetworkAirtelUganda},
		SenderName:  "Ali",
		SenderPhone: "+252 771 234 567",
	})
	require.Equal(t, "771234567", d.SenderPhone)
	require.Equal(t, "772123456", d.Recipient.Phone)

	d.SetAmount(decimal.NewFromInt(10000), DirectionUgaToSom)

	assert.Empty(t, d.SenderPhone)
	assert.Empty(t, d.Recipient.Phone)
	assert.Equal(t, NetworkEVCPlus, d.Recipient.Network)
	assert.Equal(t, CurrencyUGX, d.CurrencySend)
	assert.Equal(t, CurrencyUSD, d.CurrencyReceive)
	assert.Equal(t, "2.60", d.AmountReceive.StringFixed(2))
}

func TestSanitizeResultOverridesExternalFee(t *testing.T) {
	external := TransactionResult{TransactionID: "TX-1", Status: TransactionStatusPending, Fees: decimal.NewFromInt(99)}

	got := SanitizeResult(external, decimal.NewFromInt(100))

	assert.Equal(t, "1.50", got.Fees.StringFixed(2))
	assert.Equal(t, "TX-1", got.TransactionID)
}

func TestRecordJSONUsesFlatFieldNames(t *testing.T) {
	d := NewDraft()
	d.SetAmount(decimal.NewFromInt(100), DirectionSomToUga)
	record := NewTransactionRecord(d, TransactionResult{TransactionID: "LOC-123456", Status: TransactionStatusWaitingVerification}, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	raw, err := json.Marshal(record)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "LOC-123456", fields["transactionId"])
	assert.Equal(t, "SOM_TO_UGA", fields["direction"])
	assert.Equal(t, "2026-01-02T03:04:05Z", fields["timestamp"])
	assert.Contains(t, fields, "amountSend")
	assert.Contains(t, fields, "fees")
	assert.Contains(t, fields["recipient"], "fullName")
}

func TestRecordDecodesNumericAmounts(t *testing.T) {
	raw := `{"transactionId":"LOC-1","status":"PENDING","amountSend":50,"fees":0.75,"currencySend":"USD","direction":"SOM_TO_UGA","recipient":{"fullName":"Jane","phone":"771234567","withdrawalMethod":"MOBILE_MONEY"},"timestamp":"2026-01-02T03:04:05.000Z"}`

	var record TransactionRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &record))

	assert.Equal(t, "50", record.AmountSend.String())
	assert.Equal(t, "0.75", record.Fees.StringFixed(2))
	assert.Equal(t, "Jane", record.Recipient.FullName)
}

func TestMatchesIsCaseInsensitive(t *testing.T) {
	record := TransactionRecord{
		TransactionDraft:  TransactionDraft{SenderName: "Abdi Hassan", Recipient: Recipient{FullName: "Grace Namukasa"}},
		TransactionResult: TransactionResult{TransactionID: "LOC-482913"},
	}

	assert.True(t, record.Matches("abdi"))
	assert.True(t, record.Matches("NAMUKASA"))
	assert.True(t, record.Matches("loc-48"))
	assert.False(t, record.Matches("zaad"))
}

func TestRateDisplayAndFormatting(t *testing.T) {
	assert.Equal(t, "1 USD = 3,750 UGX", RateDisplay(DirectionSomToUga))
	assert.Equal(t, "10,000 UGX = 2.60 USD", RateDisplay(DirectionUgaToSom))
	assert.Equal(t, "1,234,567.89", FormatThousands(decimal.RequireFromString("1234567.891"), 2))
	assert.Equal(t, "-375", FormatThousands(decimal.NewFromInt(-375), 0))
}

func TestToUSDForDisplay(t *testing.T) {
	assert.Equal(t, "100", ToUSDForDisplay(decimal.NewFromInt(100), CurrencyUSD).String())
	assert.Equal(t, "2", ToUSDForDisplay(decimal.NewFromInt(7500), CurrencyUGX).String())
}
