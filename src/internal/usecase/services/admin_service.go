package services

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
	"github.com/api-sage/somaluganda-remit/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const (
	feedbackNotified    = "Transaction Approved! Notifications sent."
	feedbackNotifyError = "Approved locally, but notification API failed."
	feedbackSkipped     = "Transaction Approved! Nothing sent to %s: no phone number on record."
	analyticsDays       = 7
	csvHeader           = "ID,Date,Direction,Sender,Recipient,Amount Sent,Currency,Fee,Status,Ref"
)

type AdminOptions struct {
	Pin           string
	PinHash       string
	NotifyTimeout time.Duration
}

type AdminService struct {
	ledger        service_interfaces.LedgerService
	notifications service_interfaces.NotificationService
	pin           string
	pinHash       []byte
	notifyTimeout time.Duration
	now           func() time.Time
}

func NewAdminService(ledger service_interfaces.LedgerService, notifications service_interfaces.NotificationService, opts AdminOptions) *AdminService {
	timeout := opts.NotifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	s := &AdminService{
		ledger:        ledger,
		notifications: notifications,
		pin:           opts.Pin,
		notifyTimeout: timeout,
		now:           time.Now,
	}
	if hash := strings.TrimSpace(opts.PinHash); hash != "" {
		s.pinHash = []byte(hash)
	}
	return s
}

// VerifyPin checks pin against the bcrypt hash when one is configured and
// against the plain PIN otherwise.
func (s *AdminService) VerifyPin(pin string) bool {
	if len(s.pinHash) > 0 {
		return bcrypt.CompareHashAndPassword(s.pinHash, []byte(pin)) == nil
	}
	if s.pin == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(pin), []byte(s.pin)) == 1
}

func (s *AdminService) Unlock(ctx context.Context, req models.UnlockRequest) (commons.Response[models.UnlockResponse], error) {
	_ = ctx
	if !s.VerifyPin(req.Pin) {
		logger.Warn("admin service unlock rejected", nil)
		return commons.ErrorResponse[models.UnlockResponse](commons.MessageIncorrectPin), commons.ErrIncorrectPin
	}

	logger.Info("admin service unlock success", nil)
	return commons.SuccessResponse("dashboard unlocked", models.UnlockResponse{Unlocked: true}), nil
}

func (s *AdminService) ListTransactions(ctx context.Context, req models.ListTransactionsRequest) (commons.Response[models.TransactionListResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ValidationResponse[models.TransactionListResponse](err), err
	}

	records, err := s.ledger.List(ctx)
	if err != nil {
		logger.Error("admin service list transactions failed", err, nil)
		return commons.ErrorResponse[models.TransactionListResponse]("failed to fetch transactions", "Unable to read the ledger right now"), err
	}

	filtered := filterRecords(records, strings.TrimSpace(req.Query), domain.TransactionStatus(strings.ToUpper(strings.TrimSpace(req.Status))))
	sortRecords(filtered, strings.ToLower(strings.TrimSpace(req.SortBy)), strings.ToLower(strings.TrimSpace(req.SortOrder)) == "asc")

	return commons.SuccessResponse("transactions fetched successfully", models.TransactionListResponse{
		Transactions: filtered,
		Count:        len(filtered),
	}), nil
}

// ManualEntry records a cash order taken outside the wizard. It calls no
// external service and sends no notifications.
func (s *AdminService) ManualEntry(ctx context.Context, req models.ManualEntryRequest) (commons.Response[domain.TransactionRecord], error) {
	logger.Info("admin service manual entry request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ValidationResponse[domain.TransactionRecord](err), err
	}

	currency, _ := domain.ParseCurrency(req.Currency)
	direction := domain.DirectionUgaToSom
	if currency == domain.CurrencyUSD {
		direction = domain.DirectionSomToUga
	}

	draft := domain.TransactionDraft{
		AmountSend:      req.Amount,
		CurrencySend:    currency,
		AmountReceive:   domain.ReceiveAmount(req.Amount, direction),
		CurrencyReceive: direction.ReceiveCurrency(),
		Direction:       direction,
		Recipient: domain.Recipient{
			FullName:         "Unknown (Manual)",
			Phone:            "N/A",
			WithdrawalMethod: domain.WithdrawalMobileMoney,
		},
		SenderName:  strings.TrimSpace(req.SenderName),
		SenderPhone: "Manual Entry",
	}

	record, err := s.ledger.Record(ctx, func(int) domain.TransactionRecord {
		return domain.NewTransactionRecord(draft, domain.TransactionResult{
			TransactionID:    newTransactionID(prefixManual),
			Status:           domain.TransactionStatusSuccess,
			Message:          "Manually recorded by Admin",
			EstimatedArrival: "Instant",
			Fees:             domain.Fee(req.Amount),
		}, s.now())
	})
	if err != nil {
		return commons.ErrorResponse[domain.TransactionRecord]("failed to record transaction", "Unable to save the manual entry right now"), err
	}

	return commons.SuccessResponse("transaction recorded", record), nil
}

// Approve marks a record SUCCESS, then sends the sender and recipient notices
// concurrently and waits for both before reporting feedback.
func (s *AdminService) Approve(ctx context.Context, transactionID string) (commons.Response[models.ApproveResponse], error) {
	logger.Info("admin service approve request", logger.Fields{"transactionId": transactionID})

	record, err := s.ledger.Approve(ctx, transactionID)
	if err != nil {
		switch {
		case errors.Is(err, commons.ErrRecordNotFound):
			return commons.ErrorResponse[models.ApproveResponse](commons.MessageNotFound), err
		case errors.Is(err, commons.ErrInvalidStatus):
			return commons.ErrorResponse[models.ApproveResponse](commons.MessageAlreadyFinal, err.Error()), err
		default:
			logger.Error("admin service approve failed", err, logger.Fields{"transactionId": transactionID})
			return commons.ErrorResponse[models.ApproveResponse]("failed to approve transaction", "Unable to update the ledger right now"), err
		}
	}

	skipped, notifyErr := s.notifyApproval(ctx, record)
	response := models.ApproveResponse{
		Transaction:       record,
		NotificationsSent: notifyErr == nil && len(skipped) == 0,
		Skipped:           skipped,
		Feedback:          feedbackNotified,
	}
	switch {
	case notifyErr != nil:
		logger.Warn("admin service approval notifications failed", logger.Fields{
			"transactionId": transactionID,
			"error":         notifyErr.Error(),
		})
		response.Feedback = feedbackNotifyError
	case len(skipped) > 0:
		logger.Warn("admin service approval notifications skipped", logger.Fields{
			"transactionId": transactionID,
			"skipped":       skipped,
		})
		response.Feedback = fmt.Sprintf(feedbackSkipped, strings.Join(skipped, " or "))
	}

	return commons.SuccessResponse("transaction approved", response), nil
}

// notifyApproval returns the parties that had no phone to notify, and the
// first real delivery failure.
func (s *AdminService) notifyApproval(ctx context.Context, record domain.TransactionRecord) ([]string, error) {
	if s.notifications == nil {
		return nil, errors.New("notifications are not configured")
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	parties := []string{"sender", "recipient"}
	sends := []func(context.Context, domain.TransactionRecord) error{
		s.notifications.NotifySenderOfCompletion,
		s.notifications.NotifyRecipientOfFunds,
	}
	results := make([]error, len(sends))

	// A plain group so one failed channel does not cancel the other.
	var g errgroup.Group
	for i, send := range sends {
		g.Go(func() error {
			results[i] = send(notifyCtx, record)
			return nil
		})
	}
	_ = g.Wait()

	var skipped []string
	for i, err := range results {
		switch {
		case err == nil:
		case errors.Is(err, commons.ErrNoPhoneNumber):
			skipped = append(skipped, parties[i])
		default:
			return skipped, fmt.Errorf("%s notice: %w", parties[i], err)
		}
	}
	return skipped, nil
}

func (s *AdminService) ExportCSV(ctx context.Context) (commons.Response[models.ExportFile], error) {
	records, err := s.ledger.List(ctx)
	if err != nil {
		logger.Error("admin service export failed", err, nil)
		return commons.ErrorResponse[models.ExportFile]("failed to export ledger", "Unable to read the ledger right now"), err
	}
	if len(records) == 0 {
		return commons.ErrorResponse[models.ExportFile](commons.MessageNothingToExport), commons.ErrNothingToExport
	}

	file := models.ExportFile{
		Filename: fmt.Sprintf("ledger_backup_%s.csv", s.now().UTC().Format("2006-01-02")),
		Content:  renderCSV(records),
	}
	logger.Info("admin service export success", logger.Fields{
		"filename": file.Filename,
		"rows":     len(records),
	})
	return commons.SuccessResponse("ledger exported", file), nil
}

func (s *AdminService) Analytics(ctx context.Context) (commons.Response[models.AnalyticsResponse], error) {
	records, err := s.ledger.List(ctx)
	if err != nil {
		logger.Error("admin service analytics failed", err, nil)
		return commons.ErrorResponse[models.AnalyticsResponse]("failed to build analytics", "Unable to read the ledger right now"), err
	}
	return commons.SuccessResponse("analytics fetched successfully", Summarize(records, s.now())), nil
}

// Summarize builds the trailing seven-day chart (UTC, SUCCESS only) and the
// all-time totals. Non-USD amounts are divided into USD for display only.
func Summarize(records []domain.TransactionRecord, now time.Time) models.AnalyticsResponse {
	today := now.UTC().Truncate(24 * time.Hour)
	volume := make(map[string]decimal.Decimal, analyticsDays)
	revenue := make(map[string]decimal.Decimal, analyticsDays)

	totalVolume := decimal.Zero
	totalRevenue := decimal.Zero
	senders := make(map[string]struct{})
	pending := 0

	for _, r := range records {
		amountUSD := domain.ToUSDForDisplay(r.AmountSend, r.CurrencySend)
		feeUSD := domain.ToUSDForDisplay(r.Fees, r.CurrencySend)

		totalVolume = totalVolume.Add(amountUSD)
		totalRevenue = totalRevenue.Add(feeUSD)
		senders[strings.ToLower(strings.TrimSpace(r.SenderPhone))] = struct{}{}
		if r.Status.Approvable() {
			pending++
		}

		if r.Status != domain.TransactionStatusSuccess {
			continue
		}
		day := r.Timestamp.UTC().Format("2006-01-02")
		volume[day] = volume[day].Add(amountUSD)
		revenue[day] = revenue[day].Add(feeUSD)
	}

	days := make([]models.DailyAggregate, 0, analyticsDays)
	for i := analyticsDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		key := date.Format("2006-01-02")
		days = append(days, models.DailyAggregate{
			Date:    key,
			Label:   date.Format("Mon"),
			Volume:  volume[key].StringFixed(2),
			Revenue: revenue[key].StringFixed(2),
		})
	}

	return models.AnalyticsResponse{
		Days:              days,
		TotalVolume:       totalVolume.StringFixed(2),
		TotalRevenue:      totalRevenue.StringFixed(2),
		TotalTransactions: len(records),
		DistinctSenders:   len(senders),
		PendingCount:      pending,
	}
}

func filterRecords(records []domain.TransactionRecord, query string, status domain.TransactionStatus) []domain.TransactionRecord {
	out := make([]domain.TransactionRecord, 0, len(records))
	for _, r := range records {
		if status != "" && r.Status != status {
			continue
		}
		if !r.Matches(query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func sortRecords(records []domain.TransactionRecord, sortBy string, ascending bool) {
	less := func(a, b domain.TransactionRecord) bool {
		switch sortBy {
		case models.SortByAmount:
			return a.AmountSend.LessThan(b.AmountSend)
		case models.SortByFees:
			return a.Fees.LessThan(b.Fees)
		default:
			return a.Timestamp.Before(b.Timestamp)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if ascending {
			return less(records[i], records[j])
		}
		return less(records[j], records[i])
	})
}

// renderCSV always quotes the two name columns, doubling embedded quotes.
func renderCSV(records []domain.TransactionRecord) []byte {
	var buf bytes.Buffer
	buf.WriteString(csvHeader)
	for _, r := range records {
		ref := strings.TrimSpace(r.SenderTransactionRef)
		if ref == "" {
			ref = "N/A"
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Join([]string{
			escapeCSV(r.TransactionID),
			r.Timestamp.UTC().Format("2006-01-02"),
			escapeCSV(string(r.Direction)),
			quoteCSV(r.SenderName),
			quoteCSV(r.Recipient.FullName),
			r.AmountSend.String(),
			escapeCSV(string(r.CurrencySend)),
			r.Fees.StringFixed(2),
			escapeCSV(string(r.Status)),
			escapeCSV(ref),
		}, ","))
	}
	return buf.Bytes()
}

// quoteCSV always quotes; the name columns are quoted even when plain.
func quoteCSV(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// escapeCSV quotes only fields that would otherwise break the row.
func escapeCSV(v string) string {
	if strings.ContainsAny(v, ",\"\r\n") {
		return quoteCSV(v)
	}
	return v
}
