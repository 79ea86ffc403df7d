package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyUGX Currency = "UGX"
	CurrencySOS Currency = "SOS"
)

func ParseCurrency(raw string) (Currency, error) {
	switch c := Currency(strings.ToUpper(strings.TrimSpace(raw))); c {
	case CurrencyUSD, CurrencyUGX, CurrencySOS:
		return c, nil
	default:
		return "", fmt.Errorf("currency must be one of USD, UGX, SOS")
	}
}

type Direction string

const (
	DirectionSomToUga Direction = "SOM_TO_UGA"
	DirectionUgaToSom Direction = "UGA_TO_SOM"
)

func ParseDirection(raw string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(raw))); d {
	case DirectionSomToUga, DirectionUgaToSom:
		return d, nil
	default:
		return "", fmt.Errorf("direction must be SOM_TO_UGA or UGA_TO_SOM")
	}
}

func (d Direction) SendCurrency() Currency {
	if d == DirectionSomToUga {
		return CurrencyUSD
	}
	return CurrencyUGX
}

func (d Direction) ReceiveCurrency() Currency {
	if d == DirectionSomToUga {
		return CurrencyUGX
	}
	return CurrencyUSD
}

func (d Direction) Label() string {
	if d == DirectionSomToUga {
		return "Somalia to Uganda"
	}
	return "Uganda to Somalia"
}

// The two legs are not inverses: the return leg
// prices UGX at roughly 3850 per USD.
var (
	RateUSDToUGX  = decimal.NewFromInt(3750)
	RateUGXToUSD  = decimal.RequireFromString("0.00026")
	FeePercentage = decimal.RequireFromString("0.015")

	// USDDisplayDivisor normalizes non-USD amounts on admin charts. Display only.
	USDDisplayDivisor = decimal.NewFromInt(3750)
)

func Rate(d Direction) decimal.Decimal {
	if d == DirectionSomToUga {
		return RateUSDToUGX
	}
	return RateUGXToUSD
}

func ReceiveAmount(send decimal.Decimal, d Direction) decimal.Decimal {
	return send.Mul(Rate(d))
}

// Fee is always computed locally from the send amount.
func Fee(send decimal.Decimal) decimal.Decimal {
	return send.Mul(FeePercentage)
}

func RateDisplay(d Direction) string {
	if d == DirectionSomToUga {
		return fmt.Sprintf("1 USD = %s UGX", FormatThousands(RateUSDToUGX, 0))
	}
	return fmt.Sprintf("10,000 UGX = %s USD", decimal.NewFromInt(10000).Mul(RateUGXToUSD).StringFixed(2))
}

// FormatThousands renders an amount with comma grouping, e.g. 375000 -> "375,000".
func FormatThousands(amount decimal.Decimal, places int32) string {
	fixed := amount.StringFixed(places)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return sign + b.String()
}

// ToUSDForDisplay converts a send-side amount for dashboard charts only.
func ToUSDForDisplay(amount decimal.Decimal, currency Currency) decimal.Decimal {
	if currency == CurrencyUSD {
		return amount
	}
	return amount.Div(USDDisplayDivisor)
}
