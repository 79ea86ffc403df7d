package domain

import "time"

type WizardStep string

const (
	StepAmount    WizardStep = "AMOUNT"
	StepRecipient WizardStep = "RECIPIENT"
	StepReview    WizardStep = "REVIEW"
	StepReceipt   WizardStep = "RECEIPT"
)

// Previous returns the step reached by back-navigation, if any.
func (s WizardStep) Previous() (WizardStep, bool) {
	switch s {
	case StepRecipient:
		return StepAmount, true
	case StepReview:
		return StepRecipient, true
	default:
		return s, false
	}
}

// TransferSession owns one draft as it moves through the wizard.
type TransferSession struct {
	ID         string             `json:"sessionId"`
	Step       WizardStep         `json:"step"`
	Draft      TransactionDraft   `json:"draft"`
	Result     *TransactionResult `json:"result,omitempty"`
	Submitting bool               `json:"-"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

func NewTransferSession(id string, now time.Time) TransferSession {
	return TransferSession{
		ID:        id,
		Step:      StepAmount,
		Draft:     NewDraft(),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}
