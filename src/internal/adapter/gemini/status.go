package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/shopspring/decimal"
)

type statusPayload struct {
	TransactionID    string          `json:"transactionId"`
	Status           string          `json:"status"`
	Message          string          `json:"message"`
	EstimatedArrival string          `json:"estimatedArrival"`
	Fees             decimal.Decimal `json:"fees"`
}

// GenerateStatus asks the model for a status message for a confirmed draft.
// The returned fee is whatever the model said; callers must sanitize it.
func (c *Client) GenerateStatus(ctx context.Context, draft domain.TransactionDraft) (domain.TransactionResult, error) {
	text, err := c.generate(ctx, statusPrompt(draft), jsonOutput(transactionSchema, 0.2))
	if err != nil {
		return domain.TransactionResult{}, err
	}

	var payload statusPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return domain.TransactionResult{}, fmt.Errorf("decode status payload: %w", err)
	}

	status := domain.TransactionStatus(strings.TrimSpace(payload.Status))
	if !status.Valid() {
		return domain.TransactionResult{}, fmt.Errorf("status payload has unknown status %q", payload.Status)
	}
	if strings.TrimSpace(payload.TransactionID) == "" {
		return domain.TransactionResult{}, fmt.Errorf("status payload has no transaction id")
	}

	return domain.TransactionResult{
		TransactionID:    strings.TrimSpace(payload.TransactionID),
		Status:           status,
		Message:          payload.Message,
		EstimatedArrival: payload.EstimatedArrival,
		Fees:             payload.Fees,
	}, nil
}

func statusPrompt(d domain.TransactionDraft) string {
	var destination string
	if d.Recipient.WithdrawalMethod == domain.WithdrawalBankTransfer {
		destination = fmt.Sprintf("Bank Transfer: %s - Account: %s", d.Recipient.BankName, d.Recipient.AccountNumber)
	} else {
		destination = fmt.Sprintf("Mobile Money: %s - %s", d.Recipient.Network, d.Recipient.Phone)
	}

	whatsapp := "No"
	if d.NotifyOnWhatsapp {
		whatsapp = "Yes"
	}

	fee := d.Fee().String()

	return fmt.Sprintf(`Process this MANUAL money transfer request.
Direction: %s

Sender: %s (Phone: +%s %s)
Amount Sent: %s %s
Manual Payment Reference Provided by User: %s

Recipient Name: %s
Recipient Destination: %s

User requested WhatsApp notification: %s

Act as the backend processor for 'SomalUganda Remit'.
Since this is a manual system where the user sends money to an Agent number first:
1. The Status MUST be "WAITING_VERIFICATION" or "PENDING".
2. The message must confirm that the Admin has received the request and is verifying the manual payment reference.
3. Estimated arrival should be "15-30 Minutes" (Manual verification time).

The fee should be exactly %s.

The message should be reassuring: "We have received your request. Admin is verifying your payment Ref: %s. Funds will be released shortly."`,
		d.Direction.Label(),
		d.SenderName, domain.SenderCountry(d.Direction).DialCode(), d.SenderPhone,
		d.AmountSend.String(), d.CurrencySend,
		d.SenderTransactionRef,
		d.Recipient.FullName,
		destination,
		whatsapp,
		fee,
		d.SenderTransactionRef,
	)
}
