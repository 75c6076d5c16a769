// Package worker contains the mirror worker: it consumes transaction
// mutation events and copies them onto the Google Sheets ledger, recording
// every handled event in the audit trail.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/sheets"
	"fintrack/internal/storage"
)

type MirrorWorker struct {
	storage *storage.Repository
	ledger  sheets.Ledger // nil disables mirroring, audit still recorded
}

func NewMirrorWorker(repo *storage.Repository, ledger sheets.Ledger) *MirrorWorker {
	return &MirrorWorker{
		storage: repo,
		ledger:  ledger,
	}
}

// HandleEvent processes a single transaction event from the queue.
func (w *MirrorWorker) HandleEvent(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	switch msg.Event {
	case amqp.EventCreated, amqp.EventUpdated:
		return w.handleUpsert(ctx, msg)
	case amqp.EventDeleted:
		return w.handleDelete(ctx, msg)
	default:
		// Unknown events are dropped, not requeued: a newer producer may
		// emit kinds this worker version does not know yet.
		slog.WarnContext(ctx, "Dropping unknown transaction event",
			"event", msg.Event,
			"transaction_id", msg.TransactionID)
		return nil
	}
}

func (w *MirrorWorker) handleUpsert(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	t, err := w.storage.GetTransaction(ctx, msg.Owner, msg.TransactionID)
	if errors.Is(err, storage.ErrNotFound) {
		// Deleted between publish and consume; the delete event will follow.
		slog.InfoContext(ctx, "Transaction gone before mirroring, skipping",
			"transaction_id", msg.TransactionID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load transaction: %w", err)
	}

	if w.ledger != nil {
		if msg.Event == amqp.EventUpdated {
			// Replace rather than duplicate the ledger row.
			if err := w.ledger.RemoveTransaction(ctx, t.ID); err != nil {
				return fmt.Errorf("remove stale ledger row: %w", err)
			}
		}
		if err := w.ledger.AppendTransaction(ctx, t); err != nil {
			return fmt.Errorf("append ledger row: %w", err)
		}
		if err := w.storage.RecordAudit(ctx, msg.Owner, t.ID, storage.AuditMirrored); err != nil {
			return fmt.Errorf("record mirror audit: %w", err)
		}
	}

	action := storage.AuditCreated
	if msg.Event == amqp.EventUpdated {
		action = storage.AuditUpdated
	}
	if err := w.storage.RecordAudit(ctx, msg.Owner, t.ID, action); err != nil {
		return fmt.Errorf("record audit: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored transaction",
		"transaction_id", t.ID,
		"event", msg.Event,
		"mirrored", w.ledger != nil)
	return nil
}

func (w *MirrorWorker) handleDelete(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	if w.ledger != nil {
		if err := w.ledger.RemoveTransaction(ctx, msg.TransactionID); err != nil {
			return fmt.Errorf("remove ledger row: %w", err)
		}
	}
	if err := w.storage.RecordAudit(ctx, msg.Owner, msg.TransactionID, storage.AuditDeleted); err != nil {
		return fmt.Errorf("record audit: %w", err)
	}

	slog.InfoContext(ctx, "Removed mirrored transaction",
		"transaction_id", msg.TransactionID,
		"mirrored", w.ledger != nil)
	return nil
}
