package subtitles

import "sync"

// Document is the authoritative record sequence for one loaded file. Callers
// only ever see copies; updates replace the whole sequence.
type Document struct {
	mu      sync.RWMutex
	records []Record
}

// NewDocument returns a document holding a copy of records.
func NewDocument(records []Record) *Document {
	doc := &Document{}
	doc.Replace(records)
	return doc
}

// Records returns a snapshot of the current records.
func (d *Document) Records() []Record {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Record(nil), d.records...)
}

// Replace swaps in a copy of records.
func (d *Document) Replace(records []Record) {
	cp := append([]Record(nil), records...)
	d.mu.Lock()
	d.records = cp
	d.mu.Unlock()
}

// Reset empties the document.
func (d *Document) Reset() {
	d.mu.Lock()
	d.records = nil
	d.mu.Unlock()
}

// Len returns the number of records.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.records)
}

// CorrectedCount returns how many records carry a correction.
func (d *Document) CorrectedCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	count := 0
	for _, record := range d.records {
		if record.Corrected {
			count++
		}
	}
	return count
}
