package domain

type Country string

const (
	CountrySomalia Country = "SOMALIA"
	CountryUganda  Country = "UGANDA"
)

func (c Country) DialCode() string {
	if c == CountrySomalia {
		return "252"
	}
	return "256"
}

func (c Country) Name() string {
	if c == CountrySomalia {
		return "Somalia"
	}
	return "Uganda"
}

func SenderCountry(d Direction) Country {
	if d == DirectionSomToUga {
		return CountrySomalia
	}
	return CountryUganda
}

func RecipientCountry(d Direction) Country {
	if d == DirectionSomToUga {
		return CountryUganda
	}
	return CountrySomalia
}

type Network string

const (
	NetworkMTNUganda    Network = "MTN_UGANDA"
	NetworkAirtelUganda Network = "AIRTEL_UGANDA"
	NetworkEVCPlus      Network = "EVC_PLUS"
	NetworkZaad         Network = "ZAAD"
	NetworkSahal        Network = "SAHAL"
)

func NetworksFor(c Country) []Network {
	if c == CountryUganda {
		return []Network{NetworkMTNUganda, NetworkAirtelUganda}
	}
	return []Network{NetworkEVCPlus, NetworkZaad, NetworkSahal}
}

func DefaultNetwork(c Country) Network {
	return NetworksFor(c)[0]
}

func (n Network) BelongsTo(c Country) bool {
	for _, candidate := range NetworksFor(c) {
		if candidate == n {
			return true
		}
	}
	return false
}

type WithdrawalMethod string

const (
	WithdrawalMobileMoney  WithdrawalMethod = "MOBILE_MONEY"
	WithdrawalBankTransfer WithdrawalMethod = "BANK_TRANSFER"
)
