package mongostore

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func sampleRecord() domain.TransactionRecord {
	draft := domain.NewDraft()
	draft.SetAmount(decimal.RequireFromString("100.10"), domain.DirectionSomToUga)
	draft.SenderName = "Abdi"
	draft.Recipient.FullName = "Grace"
	return domain.NewTransactionRecord(draft, domain.TransactionResult{
		TransactionID: "LOC-100200",
		Status:        domain.TransactionStatusWaitingVerification,
		Fees:          draft.Fee(),
	}, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
}

func TestDocumentRoundTripKeepsPrecision(t *testing.T) {
	record := sampleRecord()

	doc := toDocument(record)
	assert.Equal(t, "100.1", doc.AmountSend)
	assert.Equal(t, "1.5015", doc.Fees)

	back, err := doc.toRecord()
	require.NoError(t, err)
	assert.True(t, back.AmountSend.Equal(record.AmountSend))
	assert.True(t, back.Fees.Equal(record.Fees))
	assert.Equal(t, record.Recipient.Network, back.Recipient.Network)
	assert.Equal(t, record.Timestamp, back.Timestamp)
}

func TestDocumentRejectsBadAmount(t *testing.T) {
	doc := toDocument(sampleRecord())
	doc.Fees = "not-a-number"

	_, err := doc.toRecord()
	assert.Error(t, err)
}

func TestLedgerRepositoryWithMockDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("prepend duplicate", func(mt *mtest.T) {
		repo := NewLedgerRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Prepend(context.Background(), sampleRecord())
		assert.ErrorIs(t, err, commons.ErrDuplicateRecord)
	})

	mt.Run("get found", func(mt *mtest.T) {
		repo := NewLedgerRepository(mt.DB)
		doc := toDocument(sampleRecord())
		raw, err := bson.Marshal(doc)
		require.NoError(t, err)
		var fields bson.D
		require.NoError(t, bson.Unmarshal(raw, &fields))

		ns := mt.DB.Name() + "." + transactionsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, fields))

		record, err := repo.Get(context.Background(), "LOC-100200")
		require.NoError(t, err)
		assert.Equal(t, "Abdi", record.SenderName)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := NewLedgerRepository(mt.DB)
		ns := mt.DB.Name() + "." + transactionsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.Get(context.Background(), "LOC-000000")
		assert.ErrorIs(t, err, commons.ErrRecordNotFound)
	})
}
