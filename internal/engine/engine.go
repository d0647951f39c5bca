package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/transactions-engine/internal/csvio"
	interfaces "github.com/sheikh-saqib/transactions-engine/internal/interfaces"
	"github.com/sheikh-saqib/transactions-engine/internal/ledger"
	"github.com/sheikh-saqib/transactions-engine/internal/metrics"
	"github.com/sheikh-saqib/transactions-engine/internal/models"
	"github.com/sheikh-saqib/transactions-engine/internal/models/events"
)

// Report summarises one batch run
type Report struct {
	RunID    string
	Read     int
	Applied  int
	Rejected int
	Invalid  int
	Accounts int
}

// Engine runs a CSV batch through the ledger and exports the final account table
type Engine struct {
	processor interfaces.TransactionProcessor
	store     interfaces.SnapshotStore
	publisher interfaces.EventPublisher // optional
	recorder  *metrics.Recorder         // optional
	logger    *zap.Logger
	now       func() time.Time
}

func New(
	processor interfaces.TransactionProcessor,
	store interfaces.SnapshotStore,
	publisher interfaces.EventPublisher,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		processor: processor,
		store:     store,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// pendingQueueSize bounds how far parsing may run ahead of result collection
const pendingQueueSize = 64

type pending struct {
	tx     models.Transaction
	result <-chan error
}

type outcome struct {
	applied  int
	rejected int
	err      error
}

// Run reads every record from input, applies them in order and writes the
// snapshot to output. Invalid records and rejected transactions are logged and
// skipped; only unreadable input or a failed export aborts the run.
func (e *Engine) Run(ctx context.Context, input io.Reader, output io.Writer) (Report, error) {
	report := Report{RunID: uuid.NewString()}
	logger := e.logger.With(zap.String("run_id", report.RunID))

	queue := make(chan pending, pendingQueueSize)
	done := make(chan outcome, 1)
	go func() {
		done <- e.collect(ctx, report.RunID, logger, queue)
	}()

	readErr := e.submitAll(ctx, csvio.NewReader(input), logger, queue, &report)
	close(queue)
	result := <-done

	report.Applied = result.applied
	report.Rejected = result.rejected
	if readErr != nil {
		return report, readErr
	}
	if result.err != nil {
		return report, result.err
	}

	rows, err := e.processor.Snapshot(ctx)
	if err != nil {
		return report, fmt.Errorf("snapshot accounts: %w", err)
	}
	report.Accounts = len(rows)

	if err := csvio.WriteSnapshot(output, rows); err != nil {
		return report, fmt.Errorf("write snapshot: %w", err)
	}

	if e.store != nil {
		if err := e.store.SaveSnapshot(ctx, report.RunID, rows); err != nil {
			logger.Error("failed to persist snapshot", zap.Error(err))
		}
	}

	logger.Info("batch complete",
		zap.Int("read", report.Read),
		zap.Int("applied", report.Applied),
		zap.Int("rejected", report.Rejected),
		zap.Int("invalid", report.Invalid),
		zap.Int("accounts", report.Accounts),
	)
	return report, nil
}

// submitAll parses records and queues them on the processor in input order
func (e *Engine) submitAll(ctx context.Context, reader *csvio.Reader, logger *zap.Logger, queue chan<- pending, report *Report) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tx, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var vErr *csvio.ValidationError
			if errors.As(err, &vErr) {
				report.Invalid++
				e.recorder.Invalid(ctx, vErr.Kind.String())
				logger.Warn("skipping invalid record", zap.Error(err))
				continue
			}
			return fmt.Errorf("read input: %w", err)
		}
		report.Read++

		result, err := e.processor.Submit(ctx, tx)
		if err != nil {
			return fmt.Errorf("submit transaction %d: %w", tx.TxID, err)
		}
		queue <- pending{tx: tx, result: result}
	}
}

// collect waits for each submitted transaction's result in order
func (e *Engine) collect(ctx context.Context, runID string, logger *zap.Logger, queue <-chan pending) outcome {
	var out outcome
	for p := range queue {
		var err error
		select {
		case err = <-p.result:
		case <-ctx.Done():
			if out.err == nil {
				out.err = ctx.Err()
			}
			continue
		}

		if err == nil {
			out.applied++
			e.recorder.Applied(ctx, p.tx.Kind.String())
			if p.tx.Kind == models.Chargeback {
				e.publishLocked(ctx, runID, logger, p.tx)
			}
			continue
		}

		out.rejected++
		e.recorder.Rejected(ctx, p.tx.Kind.String(), err.Error())
		logger.Warn("transaction rejected",
			zap.Uint32("client", uint32(p.tx.ClientID)),
			zap.Uint32("tx", uint32(p.tx.TxID)),
			zap.Stringer("kind", p.tx.Kind),
			zap.Error(err),
		)
		if _, ok := ledger.AsTransactionError(err); ok {
			e.publishRejected(ctx, runID, logger, p.tx, err)
		}
	}
	return out
}

func (e *Engine) publish(ctx context.Context, logger *zap.Logger, client models.ClientID, event any) {
	if e.publisher == nil {
		return
	}
	key := strconv.FormatUint(uint64(client), 10)
	if err := e.publisher.Publish(ctx, key, event); err != nil {
		logger.Error("failed to publish event", zap.Uint32("client", uint32(client)), zap.Error(err))
	}
}

func (e *Engine) publishRejected(ctx context.Context, runID string, logger *zap.Logger, tx models.Transaction, reason error) {
	e.publish(ctx, logger, tx.ClientID, events.TransactionRejected{
		Type:          events.TypeTransactionRejected,
		EventID:       uuid.NewString(),
		RunID:         runID,
		ClientID:      uint32(tx.ClientID),
		TransactionID: uint32(tx.TxID),
		Kind:          tx.Kind.String(),
		Amount:        tx.Amount,
		Reason:        reason.Error(),
		OccurredAt:    e.now().UTC(),
	})
}

func (e *Engine) publishLocked(ctx context.Context, runID string, logger *zap.Logger, tx models.Transaction) {
	e.publish(ctx, logger, tx.ClientID, events.AccountLocked{
		Type:          events.TypeAccountLocked,
		EventID:       uuid.NewString(),
		RunID:         runID,
		ClientID:      uint32(tx.ClientID),
		TransactionID: uint32(tx.TxID),
		OccurredAt:    e.now().UTC(),
	})
}
