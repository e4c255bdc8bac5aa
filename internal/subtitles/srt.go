package subtitles

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"subfix/internal/services"
)

// ErrNoBlocks reports non-empty input in which no subtitle block was recognized.
var ErrNoBlocks = fmt.Errorf("%w: no subtitle blocks recognized", services.ErrParse)

var (
	blockSeparator = regexp.MustCompile(`\n\s*\n`)
	timingPattern  = regexp.MustCompile(`(\d{2}:\d{2}:\d{2},\d{3}) --> (\d{2}:\d{2}:\d{2},\d{3})`)
	lineEndings    = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Parse converts SRT text into records in file order. Blocks with fewer than
// three lines or without a timing line are skipped. Empty input yields no
// records and no error; other input without any valid block yields ErrNoBlocks.
func Parse(raw string) ([]Record, error) {
	content := strings.TrimSpace(lineEndings.Replace(raw))
	if content == "" {
		return []Record{}, nil
	}

	chunks := blockSeparator.Split(content, -1)
	records := make([]Record, 0, len(chunks))
	for _, chunk := range chunks {
		lines := strings.Split(chunk, "\n")
		if len(lines) < 3 {
			continue
		}
		timing := timingPattern.FindStringSubmatch(strings.TrimSpace(lines[1]))
		if timing == nil {
			continue
		}
		text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
		records = append(records, Record{
			ID:           len(records),
			Sequence:     ParseSequenceNumber(lines[0]),
			StartTime:    timing[1],
			EndTime:      timing[2],
			Text:         text,
			OriginalText: text,
		})
	}
	if len(records) == 0 {
		return nil, ErrNoBlocks
	}
	return records, nil
}

// IsNoBlocks reports whether err is the soft "nothing recognized" parse result.
func IsNoBlocks(err error) bool {
	return errors.Is(err, ErrNoBlocks)
}

// Serialize renders records as SRT using their current text.
func Serialize(records []Record) string {
	blocks := make([]string, len(records))
	for i, record := range records {
		blocks[i] = fmt.Sprintf("%s\n%s --> %s\n%s\n", record.Sequence, record.StartTime, record.EndTime, record.Text)
	}
	return strings.Join(blocks, "\n")
}
