package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
	"github.com/lib/pq"
)

const transactionColumns = `
	transaction_id,
	status,
	message,
	estimated_arrival,
	fees,
	direction,
	amount_send,
	currency_send,
	amount_receive,
	currency_receive,
	sender_name,
	sender_phone,
	sender_email,
	notify_on_whatsapp,
	sender_transaction_ref,
	recipient_full_name,
	recipient_phone,
	withdrawal_method,
	network,
	bank_name,
	account_number,
	created_at`

type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Prepend(ctx context.Context, record domain.TransactionRecord) error {
	logger.Info("ledger repository prepend", logger.Fields{
		"transactionId": record.TransactionID,
		"status":        record.Status,
		"direction":     record.Direction,
	})

	const query = `
INSERT INTO transactions (` + transactionColumns + `
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
)`

	_, err := r.db.ExecContext(
		ctx,
		query,
		record.TransactionID,
		record.Status,
		record.Message,
		record.EstimatedArrival,
		record.Fees,
		record.Direction,
		record.AmountSend,
		record.CurrencySend,
		record.AmountReceive,
		record.CurrencyReceive,
		record.SenderName,
		record.SenderPhone,
		record.SenderEmail,
		record.NotifyOnWhatsapp,
		record.SenderTransactionRef,
		record.Recipient.FullName,
		record.Recipient.Phone,
		record.Recipient.WithdrawalMethod,
		record.Recipient.Network,
		record.Recipient.BankName,
		record.Recipient.AccountNumber,
		record.Timestamp,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("prepend transaction %q: %w", record.TransactionID, commons.ErrDuplicateRecord)
		}
		logger.Error("ledger repository prepend failed", err, logger.Fields{
			"transactionId": record.TransactionID,
		})
		return fmt.Errorf("prepend transaction: %w", err)
	}

	return nil
}

func (r *LedgerRepository) List(ctx context.Context) ([]domain.TransactionRecord, error) {
	query := `SELECT ` + transactionColumns + `
FROM transactions
ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	records := make([]domain.TransactionRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return records, nil
}

func (r *LedgerRepository) Get(ctx context.Context, transactionID string) (domain.TransactionRecord, error) {
	query := `SELECT ` + transactionColumns + `
FROM transactions
WHERE transaction_id = $1`

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TransactionRecord{}, commons.ErrRecordNotFound
	}
	if err != nil {
		return domain.TransactionRecord{}, err
	}
	return record, nil
}

func (r *LedgerRepository) UpdateStatus(ctx context.Context, transactionID string, status domain.TransactionStatus) (domain.TransactionRecord, error) {
	logger.Info("ledger repository update status", logger.Fields{
		"transactionId": transactionID,
		"status":        status,
	})

	query := `
UPDATE transactions
SET status = $2,
    updated_at = NOW()
WHERE transaction_id = $1
RETURNING ` + transactionColumns

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, transactionID, status))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TransactionRecord{}, commons.ErrRecordNotFound
	}
	if err != nil {
		logger.Error("ledger repository update status failed", err, logger.Fields{
			"transactionId": transactionID,
		})
		return domain.TransactionRecord{}, err
	}
	return record, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (domain.TransactionRecord, error) {
	var (
		record    domain.TransactionRecord
		createdAt time.Time
	)

	err := row.Scan(
		&record.TransactionID,
		&record.Status,
		&record.Message,
		&record.EstimatedArrival,
		&record.Fees,
		&record.Direction,
		&record.AmountSend,
		&record.CurrencySend,
		&record.AmountReceive,
		&record.CurrencyReceive,
		&record.SenderName,
		&record.SenderPhone,
		&record.SenderEmail,
		&record.NotifyOnWhatsapp,
		&record.SenderTransactionRef,
		&record.Recipient.FullName,
		&record.Recipient.Phone,
		&record.Recipient.WithdrawalMethod,
		&record.Recipient.Network,
		&record.Recipient.BankName,
		&record.Recipient.AccountNumber,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TransactionRecord{}, err
	}
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("scan transaction: %w", err)
	}

	record.Timestamp = createdAt.UTC()
	return record, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
