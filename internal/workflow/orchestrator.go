package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"subfix/internal/correction"
	"subfix/internal/logging"
	"subfix/internal/services"
	"subfix/internal/subtitles"
)

// DefaultBatchSize is the number of records sent per correction request.
const DefaultBatchSize = 15

const stageAnalyzing = "analyzing"

// Corrector returns the corrections for one batch of records.
type Corrector interface {
	Correct(ctx context.Context, batch []subtitles.Record) ([]correction.Item, error)
}

// Progress describes the state after a batch has been merged.
type Progress struct {
	// Completed and Total count batches.
	Completed int
	Total     int
	// Applied and Unmatched count the items of the latest batch.
	Applied   int
	Unmatched int
	// Records is a snapshot of the document after the merge.
	Records []subtitles.Record
}

// Fraction returns Completed/Total in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// Percent returns the fraction scaled to 0..100.
func (p Progress) Percent() float64 {
	return p.Fraction() * 100
}

// Orchestrator runs batches through a Corrector.
type Orchestrator struct {
	corrector Corrector
	batchSize int
	logger    *slog.Logger
}

// NewOrchestrator builds an orchestrator. A non-positive batchSize means
// DefaultBatchSize.
func NewOrchestrator(corrector Corrector, batchSize int, logger *slog.Logger) *Orchestrator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Orchestrator{
		corrector: corrector,
		batchSize: batchSize,
		logger:    logging.NewComponentLogger(logger, "workflow"),
	}
}

// BatchSize reports the configured batch size.
func (o *Orchestrator) BatchSize() int {
	return o.batchSize
}

// BatchCount returns how many batches a document of n records needs.
func (o *Orchestrator) BatchCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + o.batchSize - 1) / o.batchSize
}

// Run corrects doc batch by batch. After each merged batch the document is
// replaced and onProgress (if set) receives a snapshot. The first failure
// stops the run and is returned wrapped in services.ErrPipeline; batches
// merged before it stay in doc. Cancellation is checked between batches and
// is also seen by the in-flight request.
func (o *Orchestrator) Run(ctx context.Context, doc *subtitles.Document, onProgress func(Progress)) error {
	working := doc.Records()
	total := o.BatchCount(len(working))
	if total == 0 {
		return nil
	}

	ctx = services.WithStage(services.WithRunID(ctx, uuid.NewString()), stageAnalyzing)
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("correction run started",
		logging.String(logging.FieldEventType, "run_started"),
		logging.Int("records", len(working)),
		logging.Int("batch_count", total),
		logging.Int("batch_size", o.batchSize),
	)
	started := time.Now()

	for i := 0; i < total; i++ {
		batchNumber := i + 1
		if err := ctx.Err(); err != nil {
			return o.halt(logger, batchNumber, total, err)
		}

		start := i * o.batchSize
		end := min(start+o.batchSize, len(working))
		batch := append([]subtitles.Record(nil), working[start:end]...)

		batchCtx := services.WithBatch(ctx, batchNumber)
		items, err := o.corrector.Correct(batchCtx, batch)
		if err != nil {
			return o.halt(logger, batchNumber, total, err)
		}

		var applied, unmatched int
		working, applied, unmatched = MergeCorrections(working, items)
		doc.Replace(working)

		batchLogger := logging.WithContext(batchCtx, o.logger)
		batchLogger.Debug("batch merged",
			logging.Int("records", len(batch)),
			logging.Int("corrections", applied),
		)
		if unmatched > 0 {
			logging.WarnWithContext(batchLogger, "corrections referenced unknown blocks", "unmatched_corrections",
				logging.Int("unmatched", unmatched),
				logging.String(logging.FieldErrorHint, "the model returned sequence numbers not present in the file"),
				logging.String(logging.FieldImpact, "those corrections were dropped"),
			)
		}

		if onProgress != nil {
			onProgress(Progress{
				Completed: batchNumber,
				Total:     total,
				Applied:   applied,
				Unmatched: unmatched,
				Records:   doc.Records(),
			})
		}
	}

	logger.Info("correction run completed",
		logging.String(logging.FieldEventType, "run_completed"),
		logging.Int("corrected_total", doc.CorrectedCount()),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	)
	return nil
}

func (o *Orchestrator) halt(logger *slog.Logger, batchNumber, total int, cause error) error {
	err := services.Wrap(services.ErrPipeline, stageAnalyzing, fmt.Sprintf("batch %d of %d", batchNumber, total), "", cause)
	logging.ErrorWithContext(logger, "correction run halted", "run_halted",
		logging.Int(logging.FieldBatch, batchNumber),
		logging.String(logging.FieldErrorKind, string(services.KindOf(err))),
		logging.String(logging.FieldErrorHint, "corrections from earlier batches are kept; run again to retry"),
		logging.Error(cause),
	)
	return err
}
