package facades

//go:generate mockgen -source=events.go -destination=events_mock.go -package=facades

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// IDGenerator produces event ids.
type IDGenerator interface {
	NewString() string
}

// LedgerEventsKafkaFacade publishes ledger events after the ledger has committed them.
// Publishing is best effort: failures are logged and never undo a committed operation.
type LedgerEventsKafkaFacade struct {
	writer KafkaWriter
	ids    IDGenerator
	now    func() time.Time
}

// NewLedgerEventsKafkaFacade creates a new facade. writer may be nil, in which case events are dropped.
func NewLedgerEventsKafkaFacade(writer KafkaWriter, ids IDGenerator) *LedgerEventsKafkaFacade {
	return &LedgerEventsKafkaFacade{
		writer: writer,
		ids:    ids,
		now:    time.Now,
	}
}

// PublishTransaction publishes a transaction.completed event keyed by the wallet owner.
func (f *LedgerEventsKafkaFacade) PublishTransaction(ctx context.Context, txn *models.Transaction) {
	if txn == nil {
		return
	}
	event := models.LedgerEvent{
		Kind:         models.EventTransactionCompleted,
		Transactions: []models.Transaction{*txn},
	}
	if txn.CorrelationID != nil {
		event.CorrelationID = *txn.CorrelationID
	}
	f.publish(ctx, txn.UserID.String(), event)
}

// PublishTransfer publishes transfer.completed, or transfer.reversed when the
// debit leg was compensated.
func (f *LedgerEventsKafkaFacade) PublishTransfer(ctx context.Context, result *models.TransferResult) {
	if result == nil || result.Out == nil {
		return
	}

	event := models.LedgerEvent{
		Kind:          models.EventTransferCompleted,
		CorrelationID: result.CorrelationID,
		Transactions:  []models.Transaction{*result.Out},
	}
	switch {
	case result.Reversal != nil:
		event.Kind = models.EventTransferReversed
		event.Transactions = append(event.Transactions, *result.Reversal)
	case result.In != nil:
		event.Transactions = append(event.Transactions, *result.In)
	}
	f.publish(ctx, result.CorrelationID, event)
}

func (f *LedgerEventsKafkaFacade) publish(ctx context.Context, key string, event models.LedgerEvent) {
	if f.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "kind", event.Kind, "key", key)
		return
	}

	event.EventID = f.ids.NewString()
	event.Timestamp = f.now().Unix()

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal ledger event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(event.Kind)},
		},
	}

	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish ledger event", "event_id", event.EventID, "kind", event.Kind, "error", err)
		return
	}
	logger.Log.Infow("Ledger event published", "event_id", event.EventID, "kind", event.Kind, "key", key)
}
