package domain

import (
	"fmt"
	"strings"
)

const localPhoneDigits = 9

var somaliPrefixes = map[string]struct{}{
	"61": {}, "62": {}, "63": {}, "64": {}, "65": {},
	"66": {}, "67": {}, "68": {}, "69": {}, "77": {},
}

func digitsOnly(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeLocalPhone reduces user input to the 9-digit local form for the
// given country. The result may be shorter than 9 digits; validation reports that.
func NormalizeLocalPhone(raw string, country Country) string {
	val := digitsOnly(raw)
	code := country.DialCode()

	if strings.HasPrefix(val, code) && len(val) > len(code) {
		val = val[len(code):]
	}
	if strings.HasPrefix(val, "0") && len(val) > 1 {
		val = val[1:]
	}
	if len(val) > localPhoneDigits {
		val = val[:localPhoneDigits]
	}
	return val
}

// PhoneValidationError normalizes raw input and returns an inline hint, or ""
// when the number is acceptable. Empty input is a required-field concern and yields "".
func PhoneValidationError(raw string, country Country) string {
	cleaned := NormalizeLocalPhone(raw, country)
	if cleaned == "" {
		return ""
	}

	if len(cleaned) != localPhoneDigits {
		return fmt.Sprintf("Must be 9 digits (Current: %d)", len(cleaned))
	}

	if country == CountrySomalia {
		if _, ok := somaliPrefixes[cleaned[:2]]; !ok {
			return "Invalid prefix. Use 61, 62, 63, 68..."
		}
		return ""
	}

	if !strings.HasPrefix(cleaned, "7") {
		return "Must start with 7 (e.g., 77, 70, 75)"
	}
	return ""
}

// FormatInternational prepares a number for the messaging gateway.
func FormatInternational(phone, countryCode string) string {
	clean := digitsOnly(phone)
	if strings.HasPrefix(clean, countryCode) {
		return clean
	}
	clean = strings.TrimPrefix(clean, "0")
	return countryCode + clean
}
