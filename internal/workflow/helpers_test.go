package workflow

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"subfix/internal/correction"
	"subfix/internal/subtitles"
	"subfix/internal/testsupport"
)

// scriptedCorrector answers batch i (zero-based) with replies[i] and records
// every batch it sees.
type scriptedCorrector struct {
	mu      sync.Mutex
	batches [][]subtitles.Record
	replies map[int][]correction.Item
	fail    map[int]error
	onCall  func(call int)
}

func (s *scriptedCorrector) Correct(ctx context.Context, batch []subtitles.Record) ([]correction.Item, error) {
	s.mu.Lock()
	call := len(s.batches)
	s.batches = append(s.batches, batch)
	s.mu.Unlock()
	if s.onCall != nil {
		s.onCall(call)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.fail[call]; err != nil {
		return nil, err
	}
	return s.replies[call], nil
}

func (s *scriptedCorrector) batchSizes() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	sizes := make([]int, len(s.batches))
	for i, batch := range s.batches {
		sizes[i] = len(batch)
	}
	return sizes
}

func parsedRecords(t *testing.T, n int) []subtitles.Record {
	t.Helper()
	records, err := subtitles.Parse(testsupport.SRT(n))
	require.NoError(t, err)
	require.Len(t, records, n)
	return records
}
