package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	transactionsCollection = "transactions"
	preferencesCollection  = "preferences"
	themeKey               = "theme"
)

// Amounts are stored as decimal strings so no precision is lost in BSON doubles.
type recipientDocument struct {
	FullName         string `bson:"full_name"`
	Phone            string `bson:"phone"`
	WithdrawalMethod string `bson:"withdrawal_method"`
	Network          string `bson:"network,omitempty"`
	BankName         string `bson:"bank_name,omitempty"`
	AccountNumber    string `bson:"account_number,omitempty"`
}

type transactionDocument struct {
	TransactionID        string            `bson:"transaction_id"`
	Status               string            `bson:"status"`
	Message              string            `bson:"message"`
	EstimatedArrival     string            `bson:"estimated_arrival"`
	Fees                 string            `bson:"fees"`
	Direction            string            `bson:"direction"`
	AmountSend           string            `bson:"amount_send"`
	CurrencySend         string            `bson:"currency_send"`
	AmountReceive        string            `bson:"amount_receive"`
	CurrencyReceive      string            `bson:"currency_receive"`
	SenderName           string            `bson:"sender_name"`
	SenderPhone          string            `bson:"sender_phone"`
	SenderEmail          string            `bson:"sender_email,omitempty"`
	NotifyOnWhatsapp     bool              `bson:"notify_on_whatsapp"`
	SenderTransactionRef string            `bson:"sender_transaction_ref,omitempty"`
	Recipient            recipientDocument `bson:"recipient"`
	CreatedAt            time.Time         `bson:"created_at"`
}

func toDocument(r domain.TransactionRecord) transactionDocument {
	return transactionDocument{
		TransactionID:        r.TransactionID,
		Status:               string(r.Status),
		Message:              r.Message,
		EstimatedArrival:     r.EstimatedArrival,
		Fees:                 r.Fees.String(),
		Direction:            string(r.Direction),
		AmountSend:           r.AmountSend.String(),
		CurrencySend:         string(r.CurrencySend),
		AmountReceive:        r.AmountReceive.String(),
		CurrencyReceive:      string(r.CurrencyReceive),
		SenderName:           r.SenderName,
		SenderPhone:          r.SenderPhone,
		SenderEmail:          r.SenderEmail,
		NotifyOnWhatsapp:     r.NotifyOnWhatsapp,
		SenderTransactionRef: r.SenderTransactionRef,
		Recipient: recipientDocument{
			FullName:         r.Recipient.FullName,
			Phone:            r.Recipient.Phone,
			WithdrawalMethod: string(r.Recipient.WithdrawalMethod),
			Network:          string(r.Recipient.Network),
			BankName:         r.Recipient.BankName,
			AccountNumber:    r.Recipient.AccountNumber,
		},
		CreatedAt: r.Timestamp.UTC(),
	}
}

func (d transactionDocument) toRecord() (domain.TransactionRecord, error) {
	amounts := map[string]decimal.Decimal{}
	for field, raw := range map[string]string{
		"fees":           d.Fees,
		"amount_send":    d.AmountSend,
		"amount_receive": d.AmountReceive,
	} {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.TransactionRecord{}, fmt.Errorf("decode %s of %q: %w", field, d.TransactionID, err)
		}
		amounts[field] = value
	}

	return domain.TransactionRecord{
		TransactionDraft: domain.TransactionDraft{
			AmountSend:      amounts["amount_send"],
			CurrencySend:    domain.Currency(d.CurrencySend),
			AmountReceive:   amounts["amount_receive"],
			CurrencyReceive: domain.Currency(d.CurrencyReceive),
			Direction:       domain.Direction(d.Direction),
			Recipient: domain.Recipient{
				FullName:         d.Recipient.FullName,
				Phone:            d.Recipient.Phone,
				WithdrawalMethod: domain.WithdrawalMethod(d.Recipient.WithdrawalMethod),
				Network:          domain.Network(d.Recipient.Network),
				BankName:         d.Recipient.BankName,
				AccountNumber:    d.Recipient.AccountNumber,
			},
			SenderName:           d.SenderName,
			SenderPhone:          d.SenderPhone,
			SenderEmail:          d.SenderEmail,
			NotifyOnWhatsapp:     d.NotifyOnWhatsapp,
			SenderTransactionRef: d.SenderTransactionRef,
		},
		TransactionResult: domain.TransactionResult{
			TransactionID:    d.TransactionID,
			Status:           domain.TransactionStatus(d.Status),
			Message:          d.Message,
			EstimatedArrival: d.EstimatedArrival,
			Fees:             amounts["fees"],
		},
		Timestamp: d.CreatedAt.UTC(),
	}, nil
}

type LedgerRepository struct {
	db *mongo.Database
}

func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// EnsureIndexes creates the unique transaction_id index the ledger relies on.
func (r *LedgerRepository) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "transaction_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.db.Collection(transactionsCollection).Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("create ledger indexes: %w", err)
	}
	return nil
}

func (r *LedgerRepository) Prepend(ctx context.Context, record domain.TransactionRecord) error {
	_, err := r.db.Collection(transactionsCollection).InsertOne(ctx, toDocument(record))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("prepend transaction %q: %w", record.TransactionID, commons.ErrDuplicateRecord)
		}
		logger.Error("mongo ledger prepend failed", err, logger.Fields{
			"transactionId": record.TransactionID,
		})
		return fmt.Errorf("prepend transaction: %w", err)
	}

	logger.Info("mongo ledger prepend success", logger.Fields{
		"transactionId": record.TransactionID,
		"status":        record.Status,
	})
	return nil
}

func (r *LedgerRepository) List(ctx context.Context) ([]domain.TransactionRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.db.Collection(transactionsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]domain.TransactionRecord, 0)
	for cursor.Next(ctx) {
		var doc transactionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		record, err := doc.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return records, nil
}

func (r *LedgerRepository) Get(ctx context.Context, transactionID string) (domain.TransactionRecord, error) {
	var doc transactionDocument
	err := r.db.Collection(transactionsCollection).FindOne(ctx, bson.M{"transaction_id": transactionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.TransactionRecord{}, commons.ErrRecordNotFound
	}
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("get transaction: %w", err)
	}
	return doc.toRecord()
}

func (r *LedgerRepository) UpdateStatus(ctx context.Context, transactionID string, status domain.TransactionStatus) (domain.TransactionRecord, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}}

	var doc transactionDocument
	err := r.db.Collection(transactionsCollection).
		FindOneAndUpdate(ctx, bson.M{"transaction_id": transactionID}, update, opts).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.TransactionRecord{}, commons.ErrRecordNotFound
	}
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("update transaction status: %w", err)
	}
	return doc.toRecord()
}

type PreferenceRepository struct {
	db *mongo.Database
}

func NewPreferenceRepository(db *mongo.Database) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

type preferenceDocument struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func (r *PreferenceRepository) GetTheme(ctx context.Context) (domain.Theme, error) {
	var doc preferenceDocument
	err := r.db.Collection(preferencesCollection).FindOne(ctx, bson.M{"_id": themeKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ThemeLight, nil
	}
	if err != nil {
		return "", fmt.Errorf("get theme: %w", err)
	}

	theme, err := domain.ParseTheme(doc.Value)
	if err != nil {
		return domain.ThemeLight, nil
	}
	return theme, nil
}

func (r *PreferenceRepository) SetTheme(ctx context.Context, theme domain.Theme) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.db.Collection(preferencesCollection).UpdateOne(ctx,
		bson.M{"_id": themeKey},
		bson.M{"$set": bson.M{"value": string(theme)}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	return nil
}
