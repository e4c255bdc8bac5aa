package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subfix/internal/correction"
	"subfix/internal/logging"
	"subfix/internal/services"
	"subfix/internal/subtitles"
)

func TestOrchestratorRunsContiguousBatches(t *testing.T) {
	doc := subtitles.NewDocument(parsedRecords(t, 32))
	corrector := &scriptedCorrector{}
	orch := NewOrchestrator(corrector, 15, logging.NewNop())

	var fractions []float64
	err := orch.Run(context.Background(), doc, func(p Progress) {
		fractions = append(fractions, p.Fraction())
		assert.Equal(t, 3, p.Total)
		assert.Len(t, p.Records, 32)
	})

	require.NoError(t, err)
	assert.Equal(t, []int{15, 15, 2}, corrector.batchSizes())
	assert.InDeltaSlice(t, []float64{1.0 / 3, 2.0 / 3, 1}, fractions, 1e-9)

	// Batches cover the document in order.
	assert.True(t, corrector.batches[0][0].Sequence.Matches(1))
	assert.True(t, corrector.batches[1][0].Sequence.Matches(16))
	assert.True(t, corrector.batches[2][1].Sequence.Matches(32))
}

func TestOrchestratorMergesIntoDocument(t *testing.T) {
	doc := subtitles.NewDocument(parsedRecords(t, 20))
	corrector := &scriptedCorrector{replies: map[int][]correction.Item{
		0: {{SequenceNumber: 7, FixedText: "X", Reason: "R"}},
		1: {{SequenceNumber: 3, FixedText: "cross-batch", Reason: "late"}, {SequenceNumber: 500, FixedText: "none", Reason: "none"}},
	}}
	orch := NewOrchestrator(corrector, 15, logging.NewNop())

	var last Progress
	require.NoError(t, orch.Run(context.Background(), doc, func(p Progress) { last = p }))

	records := doc.Records()
	require.Len(t, records, 20)
	assert.Equal(t, "X", records[6].Text)
	assert.Equal(t, "R", records[6].CorrectionReason)
	assert.Equal(t, "cross-batch", records[2].Text)
	assert.Equal(t, 2, doc.CorrectedCount())
	assert.Equal(t, 1, last.Applied)
	assert.Equal(t, 1, last.Unmatched)
	for _, record := range records {
		assert.Equal(t, "line "+record.Sequence.String(), record.OriginalText)
	}
}

func TestOrchestratorSendsCurrentText(t *testing.T) {
	records := parsedRecords(t, 2)
	records[1] = records[1].WithCorrection("already fixed", "before")
	doc := subtitles.NewDocument(records)
	corrector := &scriptedCorrector{}

	require.NoError(t, NewOrchestrator(corrector, 15, logging.NewNop()).Run(context.Background(), doc, nil))

	require.Len(t, corrector.batches, 1)
	assert.Equal(t, "already fixed", corrector.batches[0][1].Text)
}

func TestOrchestratorHaltsOnFirstFailure(t *testing.T) {
	doc := subtitles.NewDocument(parsedRecords(t, 45))
	cause := services.Wrap(services.ErrCorrectionService, "analyzing", "correct batch", "request failed", errors.New("boom"))
	corrector := &scriptedCorrector{
		replies: map[int][]correction.Item{0: {{SequenceNumber: 2, FixedText: "kept", Reason: "ok"}}},
		fail:    map[int]error{1: cause},
	}
	orch := NewOrchestrator(corrector, 15, logging.NewNop())

	var progressCalls int
	err := orch.Run(context.Background(), doc, func(Progress) { progressCalls++ })

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrPipeline)
	assert.ErrorIs(t, err, services.ErrCorrectionService)
	assert.Equal(t, services.KindService, services.KindOf(err))
	assert.Contains(t, err.Error(), "batch 2 of 3")
	assert.Equal(t, 1, progressCalls)
	assert.Equal(t, []int{15, 15}, corrector.batchSizes(), "no batch after the failure")

	records := doc.Records()
	assert.Equal(t, "kept", records[1].Text)
	assert.Equal(t, 1, doc.CorrectedCount())
}

func TestOrchestratorStopsWhenCanceledBetweenBatches(t *testing.T) {
	doc := subtitles.NewDocument(parsedRecords(t, 40))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	corrector := &scriptedCorrector{}
	orch := NewOrchestrator(corrector, 15, logging.NewNop())
	err := orch.Run(ctx, doc, func(p Progress) {
		if p.Completed == 1 {
			cancel()
		}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, services.ErrPipeline)
	assert.Equal(t, services.KindCanceled, services.KindOf(err))
	assert.Len(t, corrector.batches, 1)
}

func TestOrchestratorEmptyDocumentIsNoop(t *testing.T) {
	corrector := &scriptedCorrector{}
	called := false

	err := NewOrchestrator(corrector, 15, logging.NewNop()).Run(context.Background(), subtitles.NewDocument(nil), func(Progress) { called = true })

	require.NoError(t, err)
	assert.Empty(t, corrector.batches)
	assert.False(t, called)
}

func TestOrchestratorBatchSizing(t *testing.T) {
	orch := NewOrchestrator(&scriptedCorrector{}, 0, nil)
	assert.Equal(t, DefaultBatchSize, orch.BatchSize())

	tests := map[int]int{0: 0, 1: 1, 15: 1, 16: 2, 30: 2, 31: 3}
	for n, want := range tests {
		assert.Equal(t, want, orch.BatchCount(n), "records=%d", n)
	}
}

func TestProgressPercent(t *testing.T) {
	assert.Zero(t, Progress{}.Percent())
	assert.InDelta(t, 50.0, Progress{Completed: 1, Total: 2}.Percent(), 1e-9)
}
