// Package worker syncs locally stored transactions to the configured
// spreadsheet export.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/storage"
)

// TransactionAppender is the export target.
type TransactionAppender interface {
	Append(ctx context.Context, t core.Transaction) (string, error)
}

// SyncWorker drains transaction sync messages and sweeps records the queue
// may have missed.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	exporter  TransactionAppender
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, exporter TransactionAppender, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		exporter:  exporter,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single sync message from the queue.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"action", msg.Action)

	if msg.Action == amqp.ActionDelete {
		// Deletions do not propagate to the export; the sheet is an
		// append-only journal.
		return nil
	}

	t, ok, err := w.storage.GetTransaction(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}
	if !ok {
		slog.WarnContext(ctx, "Transaction gone before sync, skipping", "id", msg.ID)
		return nil
	}

	return w.exportTransaction(ctx, t)
}

// ProcessPending sweeps transactions the queue may have missed. Failures on
// individual records are logged and do not stop the batch.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, t := range pending {
		if err := w.exportTransaction(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction", "id", t.ID, "error", err)
		}
	}
	return nil
}

// StartupSyncCheck runs a larger sweep once at worker startup to recover
// from downtime or lost messages.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup", "count", len(pending))

	synced, failed := 0, 0
	for _, t := range pending {
		if err := w.exportTransaction(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction during startup",
				"id", t.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)
	return nil
}

func (w *SyncWorker) exportTransaction(ctx context.Context, t core.Transaction) error {
	ref, err := w.exporter.Append(ctx, t)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, t.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", t.ID, "error", markErr)
		}
		return fmt.Errorf("append to export: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, t.ID); err != nil {
		// The export already happened; log and move on.
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", t.ID, "error", err)
	}

	slog.InfoContext(ctx, "Synced transaction",
		"id", t.ID,
		"ref", ref,
		"description", t.Description,
		"amount", t.Amount)
	return nil
}
