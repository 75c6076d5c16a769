package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// TransactionInput is the data a caller supplies when creating or updating
// a transaction. Amount is a decimal string ("12.34"); Date is either a
// plain day ("2006-01-02") or a full RFC 3339 timestamp.
type TransactionInput struct {
	Type        string
	Amount      string
	Category    string
	Description string
	Date        string
}

// TransactionService orchestrates transaction writes across SQLite and AMQP.
// The AMQP client may be nil, in which case mutations are stored locally and
// no mirror events are published.
type TransactionService struct {
	storage         *storage.Repository
	amqpClient      *amqp.Client
	defaultCurrency string
}

func NewTransactionService(storage *storage.Repository, amqpClient *amqp.Client, defaultCurrency string) *TransactionService {
	return &TransactionService{
		storage:         storage,
		amqpClient:      amqpClient,
		defaultCurrency: defaultCurrency,
	}
}

// Create validates the input, saves the transaction and publishes a mirror
// event. Publishing is best effort: the record is already durable locally.
func (s *TransactionService) Create(ctx context.Context, owner string, in TransactionInput) (core.Transaction, error) {
	t, err := s.buildTransaction(owner, uuid.NewString(), in)
	if err != nil {
		return core.Transaction{}, err
	}

	if err := s.storage.CreateTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.publishEvent(ctx, amqp.NewTransactionEventMessage(t.ID, owner, amqp.EventCreated))
	return t, nil
}

// Get returns a single transaction scoped to its owner.
func (s *TransactionService) Get(ctx context.Context, owner, id string) (core.Transaction, error) {
	return s.storage.GetTransaction(ctx, owner, id)
}

// List returns all of the owner's transactions, newest first.
func (s *TransactionService) List(ctx context.Context, owner string) ([]core.Transaction, error) {
	return s.storage.ListTransactions(ctx, owner)
}

// Update replaces an existing transaction with the validated input.
func (s *TransactionService) Update(ctx context.Context, owner, id string, in TransactionInput) (core.Transaction, error) {
	t, err := s.buildTransaction(owner, id, in)
	if err != nil {
		return core.Transaction{}, err
	}

	if err := s.storage.UpdateTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	s.publishEvent(ctx, amqp.NewTransactionEventMessage(id, owner, amqp.EventUpdated))
	return t, nil
}

// Delete removes a transaction and publishes a delete event carrying a
// snapshot of the row, since the mirror worker can no longer look it up.
func (s *TransactionService) Delete(ctx context.Context, owner, id string) error {
	t, err := s.storage.GetTransaction(ctx, owner, id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteTransaction(ctx, owner, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	msg := amqp.NewTransactionEventMessage(id, owner, amqp.EventDeleted)
	msg.Type = string(t.Type)
	msg.AmountCents = t.Amount.Cents
	msg.Category = t.Category
	msg.Date = t.Date.Format(time.RFC3339)
	s.publishEvent(ctx, msg)
	return nil
}

// Settings returns the owner's preferences, falling back to the configured
// default currency when none have been saved yet.
func (s *TransactionService) Settings(ctx context.Context, owner string) (core.UserSettings, error) {
	return s.storage.GetSettings(ctx, owner, s.defaultCurrency)
}

// SaveSettings persists the owner's preferred display currency.
func (s *TransactionService) SaveSettings(ctx context.Context, owner, currency string) (core.UserSettings, error) {
	cur, err := core.LookupCurrency(currency)
	if err != nil {
		return core.UserSettings{}, err
	}

	settings := core.UserSettings{Owner: owner, Currency: cur.Code}
	if err := s.storage.SaveSettings(ctx, settings); err != nil {
		return core.UserSettings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

func (s *TransactionService) buildTransaction(owner, id string, in TransactionInput) (core.Transaction, error) {
	typ := core.TxType(strings.ToLower(strings.TrimSpace(in.Type)))
	if !typ.Valid() {
		return core.Transaction{}, core.ErrInvalidType
	}

	cents, err := core.ParseDecimalToCents(in.Amount)
	if err != nil {
		return core.Transaction{}, err
	}

	category := strings.TrimSpace(in.Category)
	if !core.IsValidCategory(typ, category) {
		return core.Transaction{}, fmt.Errorf("%w: %q is not a known %s category", core.ErrInvalidCategory, category, typ)
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
		ID:          id,
		Owner:       owner,
		Type:        typ,
		Amount:      core.Money{Cents: cents},
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		Date:        date,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// parseDate accepts a day or a full timestamp and normalizes to UTC so that
// month bucketing is stable regardless of the client's timezone.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, core.ErrInvalidDate
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d.UTC(), nil
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, s)
}

func (s *TransactionService) publishEvent(ctx context.Context, msg *amqp.TransactionEventMessage) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishTransactionEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"transaction_id", msg.TransactionID, "event", msg.Event, "error", err)
		// Don't fail the request - the transaction is saved locally
	}
}

// Close closes both storage and AMQP connections.
func (s *TransactionService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %v", errs)
	}

	return nil
}
