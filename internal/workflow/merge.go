package workflow

import (
	"subfix/internal/correction"
	"subfix/internal/subtitles"
)

// MergeCorrections applies items to a copy of records. Each item goes to the
// first record whose sequence number equals the item's; the whole document is
// searched, not just the batch the item came from. Items that match nothing
// are dropped and counted as unmatched.
func MergeCorrections(records []subtitles.Record, items []correction.Item) ([]subtitles.Record, int, int) {
	merged := append([]subtitles.Record(nil), records...)
	applied, unmatched := 0, 0
	for _, item := range items {
		idx := indexOfSequence(merged, item.SequenceNumber)
		if idx < 0 {
			unmatched++
			continue
		}
		merged[idx] = merged[idx].WithCorrection(item.FixedText, item.Reason)
		applied++
	}
	return merged, applied, unmatched
}

func indexOfSequence(records []subtitles.Record, n int) int {
	for i, record := range records {
		if record.Sequence.Matches(n) {
			return i
		}
	}
	return -1
}
