package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
	"github.com/api-sage/somaluganda-remit/src/internal/usecase/service_interfaces"
)

type NotificationService struct {
	email      service_interfaces.EmailSender
	messaging  service_interfaces.MessageSender
	adminEmail string
}

func NewNotificationService(email service_interfaces.EmailSender, messaging service_interfaces.MessageSender, adminEmail string) *NotificationService {
	return &NotificationService{
		email:      email,
		messaging:  messaging,
		adminEmail: strings.TrimSpace(adminEmail),
	}
}

func (s *NotificationService) NotifyAdminOfNewRequest(ctx context.Context, r domain.TransactionRecord) error {
	subject := fmt.Sprintf("New Transfer Request: %s %s from %s", r.AmountSend.String(), r.CurrencySend, r.SenderName)
	email := r.SenderEmail
	if email == "" {
		email = "N/A"
	}

	body := fmt.Sprintf(`NEW MONEY TRANSFER REQUEST

Sender Details:
Name: %s
Phone: %s
Email: %s

Transaction Details:
Transaction ID: %s
Amount Sent: %s %s
Manual Ref Code: %s
Recipient: %s (%s)

Please verify this payment in your mobile money account and approve the transaction in the dashboard.`,
		r.SenderName, r.SenderPhone, email,
		r.TransactionID,
		r.AmountSend.String(), r.CurrencySend,
		r.SenderTransactionRef,
		r.Recipient.FullName, r.Recipient.WithdrawalMethod,
	)

	return s.email.SendEmail(ctx, s.adminEmail, subject, body)
}

// SendReceiptToSender is a no-op when the sender left no email.
func (s *NotificationService) SendReceiptToSender(ctx context.Context, r domain.TransactionRecord) error {
	if strings.TrimSpace(r.SenderEmail) == "" {
		return nil
	}

	body := fmt.Sprintf(`Dear %s,

We have received your request to send %s %s to %s.

Your Payment Reference: %s
Status: PENDING VERIFICATION

Our team is currently verifying your manual payment. Once confirmed, the funds will be released to the recipient.

Thank you for choosing SomalUganda Remit.`,
		r.SenderName, r.AmountSend.String(), r.CurrencySend, r.Recipient.FullName, r.SenderTransactionRef)

	return s.email.SendEmail(ctx, r.SenderEmail, "Request Received - SomalUganda Remit", body)
}

// NotifySenderOfCompletion tries WhatsApp when the sender opted in and falls
// back to SMS. A placeholder phone yields commons.ErrNoPhoneNumber.
func (s *NotificationService) NotifySenderOfCompletion(ctx context.Context, r domain.TransactionRecord) error {
	if !hasDialablePhone(r.SenderPhone) {
		return fmt.Errorf("sender phone %q: %w", r.SenderPhone, commons.ErrNoPhoneNumber)
	}
	phone := domain.FormatInternational(r.SenderPhone, domain.SenderCountry(r.Direction).DialCode())

	if r.NotifyOnWhatsapp {
		waText := fmt.Sprintf("✅ *Transfer Approved!*\n\n"+
			"Dear %s,\n"+
			"Your transfer of *%s %s* to *%s* has been successfully processed.\n\n"+
			"🆔 Ref: %s\n"+
			"🚀 Status: COMPLETED\n\n"+
			"Thank you for choosing SomalUganda Remit.",
			r.SenderName, r.AmountSend.String(), r.CurrencySend, r.Recipient.FullName, r.TransactionID)

		waErr := s.messaging.SendWhatsApp(ctx, phone, waText)
		if waErr == nil {
			return nil
		}
		logger.Warn("whatsapp completion notice failed, falling back to sms", logger.Fields{
			"transactionId": r.TransactionID,
			"error":         waErr.Error(),
		})
	}

	smsText := fmt.Sprintf("✅ Transfer Approved!\n"+
		"Ref: %s\n"+
		"Sent: %s %s\n"+
		"To: %s\n"+
		"Status: COMPLETED\n"+
		"Thank you for using SomalUganda Remit.",
		r.TransactionID, r.AmountSend.String(), r.CurrencySend, r.Recipient.FullName)

	return s.messaging.SendSMS(ctx, phone, smsText)
}

// NotifyRecipientOfFunds always uses SMS so feature phones get it.
func (s *NotificationService) NotifyRecipientOfFunds(ctx context.Context, r domain.TransactionRecord) error {
	if !hasDialablePhone(r.Recipient.Phone) {
		return fmt.Errorf("recipient phone %q: %w", r.Recipient.Phone, commons.ErrNoPhoneNumber)
	}
	phone := domain.FormatInternational(r.Recipient.Phone, domain.RecipientCountry(r.Direction).DialCode())

	places := int32(2)
	if r.CurrencyReceive == domain.CurrencyUGX {
		places = 0
	}
	text := fmt.Sprintf("💰 Money Received!\n"+
		"You received %s %s from %s.\n"+
		"Ref: %s\n"+
		"Funds should reflect shortly.",
		domain.FormatThousands(r.AmountReceive, places), r.CurrencyReceive, r.SenderName, r.TransactionID)

	return s.messaging.SendSMS(ctx, phone, text)
}

func (s *NotificationService) SendAdminDigest(ctx context.Context, subject, body string) error {
	if s.adminEmail == "" {
		return errors.New("admin email is not configured")
	}
	return s.email.SendEmail(ctx, s.adminEmail, subject, body)
}

// hasDialablePhone filters placeholders such as "N/A" on manual entries.
func hasDialablePhone(phone string) bool {
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
