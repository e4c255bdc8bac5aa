package subtitles

import (
	"strconv"
	"strings"
)

// SequenceNumber is the numeric header of an SRT block. Headers are read
// leniently: an optional sign followed by leading digits ("12abc" is 12).
// A header without leading digits is invalid; it prints as "NaN" and never
// equals any number.
type SequenceNumber struct {
	n     int
	valid bool
}

// Seq returns a valid sequence number.
func Seq(n int) SequenceNumber {
	return SequenceNumber{n: n, valid: true}
}

// ParseSequenceNumber reads a block header.
func ParseSequenceNumber(raw string) SequenceNumber {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return SequenceNumber{}
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return SequenceNumber{}
	}
	return Seq(n)
}

// Int returns the number and whether it is valid.
func (s SequenceNumber) Int() (int, bool) {
	return s.n, s.valid
}

// Valid reports whether the header held a number.
func (s SequenceNumber) Valid() bool {
	return s.valid
}

// Matches reports whether s is valid and equal to n.
func (s SequenceNumber) Matches(n int) bool {
	return s.valid && s.n == n
}

func (s SequenceNumber) String() string {
	if !s.valid {
		return "NaN"
	}
	return strconv.Itoa(s.n)
}

// Record is one subtitle block. OriginalText is fixed at parse time; Text is
// the current (possibly corrected) text.
type Record struct {
	// ID is the zero-based position in the parsed sequence.
	ID               int
	Sequence         SequenceNumber
	StartTime        string
	EndTime          string
	Text             string
	OriginalText     string
	Corrected        bool
	CorrectionReason string
}

// WithCorrection returns a copy of r carrying the corrected text and reason.
// Blank lines inside text are collapsed so the block still serializes as one
// SRT block.
func (r Record) WithCorrection(text, reason string) Record {
	r.Text = NormalizeText(text)
	r.Corrected = true
	r.CorrectionReason = reason
	return r
}

// NormalizeText converts line endings to LF, collapses runs of blank lines to a
// single line break, and trims surrounding whitespace.
func NormalizeText(text string) string {
	text = lineEndings.Replace(text)
	return strings.TrimSpace(blockSeparator.ReplaceAllString(text, "\n"))
}
