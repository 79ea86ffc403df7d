package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionDraft is the in-progress transfer. Receive amount and both
// currencies are derived from amount and direction; use the setters.
type TransactionDraft struct {
	AmountSend           decimal.Decimal `json:"amountSend"`
	CurrencySend         Currency        `json:"currencySend"`
	AmountReceive        decimal.Decimal `json:"amountReceive"`
	CurrencyReceive      Currency        `json:"currencyReceive"`
	Direction            Direction       `json:"direction"`
	Recipient            Recipient       `json:"recipient"`
	SenderName           string          `json:"senderName"`
	SenderPhone          string          `json:"senderPhone"`
	SenderEmail          string          `json:"senderEmail,omitempty"`
	NotifyOnWhatsapp     bool            `json:"notifyOnWhatsapp"`
	SenderTransactionRef string          `json:"senderTransactionRef,omitempty"`
}

func NewDraft() TransactionDraft {
	d := TransactionDraft{
		AmountSend: decimal.Zero,
		Direction:  DirectionSomToUga,
		Recipient: Recipient{
			WithdrawalMethod: WithdrawalMobileMoney,
			Network:          NetworkMTNUganda,
		},
	}
	d.recalculate()
	return d
}

// SetAmount applies amount and direction. Switching corridors clears both
// phones and resets the network to the new destination default.
func (d *TransactionDraft) SetAmount(amount decimal.Decimal, direction Direction) {
	if direction != d.Direction {
		d.Direction = direction
		d.SenderPhone = ""
		d.Recipient.Phone = ""
		d.Recipient.Network = DefaultNetwork(RecipientCountry(direction))
		d.Recipient.BankName = ""
	}
	d.AmountSend = amount
	d.recalculate()
}

type Parties struct {
	Recipient        Recipient
	SenderName       string
	SenderPhone      string
	SenderEmail      string
	NotifyOnWhatsapp bool
}

// SetParties stores sender and recipient with phones reduced to local form.
func (d *TransactionDraft) SetParties(p Parties) {
	recipient := p.Recipient
	recipient.FullName = strings.TrimSpace(recipient.FullName)
	recipient.Phone = NormalizeLocalPhone(recipient.Phone, RecipientCountry(d.Direction))
	recipient.BankName = strings.TrimSpace(recipient.BankName)
	recipient.AccountNumber = strings.TrimSpace(recipient.AccountNumber)
	if recipient.WithdrawalMethod == WithdrawalBankTransfer {
		recipient.Network = ""
	} else {
		if recipient.Network == "" {
			recipient.Network = DefaultNetwork(RecipientCountry(d.Direction))
		}
		recipient.BankName = ""
		recipient.AccountNumber = ""
	}

	d.Recipient = recipient
	d.SenderName = strings.TrimSpace(p.SenderName)
	d.SenderPhone = NormalizeLocalPhone(p.SenderPhone, SenderCountry(d.Direction))
	d.SenderEmail = strings.TrimSpace(p.SenderEmail)
	d.NotifyOnWhatsapp = p.NotifyOnWhatsapp
}

func (d *TransactionDraft) SetReference(ref string) {
	d.SenderTransactionRef = strings.TrimSpace(ref)
}

func (d TransactionDraft) Fee() decimal.Decimal {
	return Fee(d.AmountSend)
}

func (d TransactionDraft) TotalToPay() decimal.Decimal {
	return d.AmountSend.Add(d.Fee())
}

func (d *TransactionDraft) recalculate() {
	d.CurrencySend = d.Direction.SendCurrency()
	d.CurrencyReceive = d.Direction.ReceiveCurrency()
	d.AmountReceive = ReceiveAmount(d.AmountSend, d.Direction)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
