package models

import (
	"errors"
	"strings"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/shopspring/decimal"
)

type SetAmountRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Direction string          `json:"direction"`
}

// Validate checks shape only. A zero amount is accepted and simply keeps the
// session on the amount step.
func (r SetAmountRequest) Validate() error {
	var errs []string

	if r.Amount.IsNegative() {
		errs = append(errs, "amount cannot be negative")
	}
	if _, err := domain.ParseDirection(r.Direction); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type RecipientRequest struct {
	FullName         string `json:"fullName"`
	Phone            string `json:"phone"`
	WithdrawalMethod string `json:"withdrawalMethod"`
	Network          string `json:"network"`
	BankName         string `json:"bankName"`
	AccountNumber    string `json:"accountNumber"`
}

type SetPartiesRequest struct {
	SenderName       string           `json:"senderName"`
	SenderPhone      string           `json:"senderPhone"`
	SenderEmail      string           `json:"senderEmail"`
	NotifyOnWhatsapp bool             `json:"notifyOnWhatsapp"`
	Recipient        RecipientRequest `json:"recipient"`
}

// Validate applies the recipient-step rules for the given corridor.
func (r SetPartiesRequest) Validate(direction domain.Direction) error {
	var errs []string

	if strings.TrimSpace(r.SenderName) == "" {
		errs = append(errs, "senderName is required")
	}
	if strings.TrimSpace(r.Recipient.FullName) == "" {
		errs = append(errs, "recipient.fullName is required")
	}

	senderCountry := domain.SenderCountry(direction)
	senderPhone := domain.NormalizeLocalPhone(r.SenderPhone, senderCountry)
	if senderPhone == "" {
		errs = append(errs, "senderPhone is required")
	} else if msg := domain.PhoneValidationError(senderPhone, senderCountry); msg != "" {
		errs = append(errs, "senderPhone: "+msg)
	}

	recipientCountry := domain.RecipientCountry(direction)
	recipientPhone := domain.NormalizeLocalPhone(r.Recipient.Phone, recipientCountry)
	if recipientPhone == "" {
		errs = append(errs, "recipient.phone is required")
	} else if msg := domain.PhoneValidationError(recipientPhone, recipientCountry); msg != "" {
		errs = append(errs, "recipient.phone: "+msg)
	}

	if email := strings.TrimSpace(r.SenderEmail); email != "" && !strings.Contains(email, "@") {
		errs = append(errs, "senderEmail is not a valid email address")
	}

	switch domain.WithdrawalMethod(strings.ToUpper(strings.TrimSpace(r.Recipient.WithdrawalMethod))) {
	case domain.WithdrawalMobileMoney:
		network := domain.Network(strings.ToUpper(strings.TrimSpace(r.Recipient.Network)))
		if network != "" && !network.BelongsTo(recipientCountry) {
			errs = append(errs, "recipient.network is not available in "+recipientCountry.Name())
		}
	case domain.WithdrawalBankTransfer:
		if strings.TrimSpace(r.Recipient.BankName) == "" {
			errs = append(errs, "recipient.bankName is required")
		}
		if len(strings.TrimSpace(r.Recipient.AccountNumber)) <= 5 {
			errs = append(errs, "recipient.accountNumber must be longer than 5 characters")
		}
	default:
		errs = append(errs, "recipient.withdrawalMethod must be MOBILE_MONEY or BANK_TRANSFER")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (r SetPartiesRequest) ToParties() domain.Parties {
	return domain.Parties{
		Recipient: domain.Recipient{
			FullName:         r.Recipient.FullName,
			Phone:            r.Recipient.Phone,
			WithdrawalMethod: domain.WithdrawalMethod(strings.ToUpper(strings.TrimSpace(r.Recipient.WithdrawalMethod))),
			Network:          domain.Network(strings.ToUpper(strings.TrimSpace(r.Recipient.Network))),
			BankName:         r.Recipient.BankName,
			AccountNumber:    r.Recipient.AccountNumber,
		},
		SenderName:       r.SenderName,
		SenderPhone:      r.SenderPhone,
		SenderEmail:      r.SenderEmail,
		NotifyOnWhatsapp: r.NotifyOnWhatsapp,
	}
}

type ConfirmRequest struct {
	Reference string `json:"reference"`
}

func (r ConfirmRequest) Validate() error {
	if len([]rune(strings.TrimSpace(r.Reference))) < 4 {
		return errors.New("reference must be at least 4 characters")
	}
	return nil
}

type SessionResponse struct {
	SessionID  string                    `json:"sessionId"`
	Step       domain.WizardStep         `json:"step"`
	Draft      domain.TransactionDraft   `json:"draft"`
	Fee        string                    `json:"fee"`
	TotalToPay string                    `json:"totalToPay"`
	RateLabel  string                    `json:"rateLabel"`
	Result     *domain.TransactionResult `json:"result,omitempty"`
}

func NewSessionResponse(s domain.TransferSession) SessionResponse {
	return SessionResponse{
		SessionID:  s.ID,
		Step:       s.Step,
		Draft:      s.Draft,
		Fee:        s.Draft.Fee().StringFixed(2),
		TotalToPay: s.Draft.TotalToPay().StringFixed(2),
		RateLabel:  domain.RateDisplay(s.Draft.Direction),
		Result:     s.Result,
	}
}

type ReviewResponse struct {
	SessionResponse
	Instructions domain.PaymentInstructions `json:"instructions"`
}

type ReceiptResponse struct {
	SessionResponse
	Transaction domain.TransactionRecord `json:"transaction"`
}
