package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocalPhone(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		country Country
		want    string
	}{
		{name: "somali with country code", raw: "+252 771 234 567", country: CountrySomalia, want: "771234567"},
		{name: "somali leading zero", raw: "0771234567", country: CountrySomalia, want: "771234567"},
		{name: "ugandan with code and zero", raw: "2560772123456", country: CountryUganda, want: "772123456"},
		{name: "truncates to nine digits", raw: "77123456789", country: CountryUganda, want: "771234567"},
		{name: "bare code kept", raw: "256", country: CountryUganda, want: "256"},
		{name: "single zero kept", raw: "0", country: CountrySomalia, want: "0"},
		{name: "other country code untouched", raw: "256771234567", country: CountrySomalia, want: "256771234"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeLocalPhone(tc.raw, tc.country))
		})
	}
}

func TestPhoneValidationError(t *testing.T) {
	assert.Equal(t, "", PhoneValidationError("771234567", CountrySomalia))
	assert.Equal(t, "", PhoneValidationError("612345678", CountrySomalia))
	assert.Equal(t, "Invalid prefix. Use 61, 62, 63, 68...", PhoneValidationError("712345678", CountrySomalia))
	assert.Equal(t, "Must be 9 digits (Current: 5)", PhoneValidationError("77123", CountrySomalia))
	assert.Equal(t, "", PhoneValidationError("", CountrySomalia))

	assert.Equal(t, "", PhoneValidationError("701234567", CountryUganda))
	assert.Equal(t, "Must start with 7 (e.g., 77, 70, 75)", PhoneValidationError("612345678", CountryUganda))
	assert.Equal(t, "Must be 9 digits (Current: 6)", PhoneValidationError("0701-234", CountryUganda))
}

func TestPhoneValidationErrorAcceptsRawInput(t *testing.T) {
	assert.Equal(t, "", PhoneValidationError("0772123456", CountryUganda))
	assert.Equal(t, "", PhoneValidationError("+256 772 123 456", CountryUganda))
	assert.Equal(t, "", PhoneValidationError("+252 77 123 4567", CountrySomalia))
	assert.Equal(t, "", PhoneValidationError("0615 123 456", CountrySomalia))
	assert.Equal(t, "Invalid prefix. Use 61, 62, 63, 68...", PhoneValidationError("+252 71 234 5678", CountrySomalia))
}

func TestValidationFlipsWithDirection(t *testing.T) {
	somali := "771234567"
	ugandan := "701234567"

	assert.Equal(t, "", PhoneValidationError(somali, SenderCountry(DirectionSomToUga)))
	assert.Equal(t, "", PhoneValidationError(ugandan, RecipientCountry(DirectionSomToUga)))
	assert.Equal(t, "", PhoneValidationError(ugandan, SenderCountry(DirectionUgaToSom)))
	assert.NotEqual(t, "", PhoneValidationError("612345678", SenderCountry(DirectionUgaToSom)))
}

func TestFormatInternational(t *testing.T) {
	assert.Equal(t, "252771234567", FormatInternational("771234567", "252"))
	assert.Equal(t, "256772123456", FormatInternational("0772 123 456", "256"))
	assert.Equal(t, "256772123456", FormatInternational("+256772123456", "256"))
}
