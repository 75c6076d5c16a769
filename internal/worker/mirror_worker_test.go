package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type fakeLedger struct {
	appended []string
	removed  []string
	fail     bool
}

func (f *fakeLedger) AppendTransaction(_ context.Context, t core.Transaction) error {
	if f.fail {
		return errors.New("ledger unavailable")
	}
	f.appended = append(f.appended, t.ID)
	return nil
}

func (f *fakeLedger) RemoveTransaction(_ context.Context, id string) error {
	if f.fail {
		return errors.New("ledger unavailable")
	}
	f.removed = append(f.removed, id)
	return nil
}

func newWorker(t *testing.T, ledger *fakeLedger) (*MirrorWorker, *storage.Repository) {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "worker.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	if ledger == nil {
		return NewMirrorWorker(repo, nil), repo
	}
	return NewMirrorWorker(repo, ledger), repo
}

func seedTx(t *testing.T, repo *storage.Repository, id string) core.Transaction {
	t.Helper()
	tx := core.Transaction{
		ID:          id,
		Owner:       "alice",
		Type:        core.Expense,
		Amount:      core.Money{Cents: 1200},
		Category:    "Shopping",
		Description: "seed",
		Date:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.CreateTransaction(context.Background(), tx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return tx
}

func TestHandleCreatedMirrorsAndAudits(t *testing.T) {
	ledger := &fakeLedger{}
	w, repo := newWorker(t, ledger)
	ctx := context.Background()
	seedTx(t, repo, "t1")

	msg := amqp.NewTransactionEventMessage("t1", "alice", amqp.EventCreated)
	if err := w.HandleEvent(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(ledger.appended) != 1 || ledger.appended[0] != "t1" {
		t.Fatalf("ledger append wrong: %+v", ledger.appended)
	}
	entries, err := repo.ListAudit(ctx, "t1")
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected mirrored+created audit entries, got %+v", entries)
	}
}

func TestHandleDeletedRemovesRow(t *testing.T) {
	ledger := &fakeLedger{}
	w, repo := newWorker(t, ledger)
	ctx := context.Background()

	msg := amqp.NewTransactionEventMessage("t9", "alice", amqp.EventDeleted)
	if err := w.HandleEvent(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(ledger.removed) != 1 || ledger.removed[0] != "t9" {
		t.Fatalf("ledger remove wrong: %+v", ledger.removed)
	}
	entries, err := repo.ListAudit(ctx, "t9")
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != storage.AuditDeleted {
		t.Fatalf("audit wrong: %+v", entries)
	}
}

func TestHandleCreatedMissingRowIsNotAnError(t *testing.T) {
	w, _ := newWorker(t, &fakeLedger{})
	msg := amqp.NewTransactionEventMessage("ghost", "alice", amqp.EventCreated)
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("missing row should be skipped, got %v", err)
	}
}

func TestHandleEventLedgerFailureRequeues(t *testing.T) {
	ledger := &fakeLedger{fail: true}
	w, repo := newWorker(t, ledger)
	seedTx(t, repo, "t1")

	msg := amqp.NewTransactionEventMessage("t1", "alice", amqp.EventCreated)
	if err := w.HandleEvent(context.Background(), msg); err == nil {
		t.Fatal("ledger failure must propagate so the delivery is requeued")
	}
}

func TestHandleEventNilLedgerAuditsOnly(t *testing.T) {
	w, repo := newWorker(t, nil)
	ctx := context.Background()
	seedTx(t, repo, "t1")

	msg := amqp.NewTransactionEventMessage("t1", "alice", amqp.EventCreated)
	if err := w.HandleEvent(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	entries, err := repo.ListAudit(ctx, "t1")
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != storage.AuditCreated {
		t.Fatalf("expected single created entry, got %+v", entries)
	}
}

func TestHandleUnknownEventDropped(t *testing.T) {
	w, _ := newWorker(t, &fakeLedger{})
	msg := amqp.NewTransactionEventMessage("t1", "alice", amqp.TransactionEvent("archived"))
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("unknown events must be dropped without error, got %v", err)
	}
}
