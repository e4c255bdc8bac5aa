package main

import (
	"strings"

	"subfix/internal/subtitles"
)

const textColumnWidth = 40

func timingLabel(record subtitles.Record) string {
	return record.StartTime + " → " + record.EndTime
}

// renderRecords lists every record with its current text.
func renderRecords(records []subtitles.Record) string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Sequence.String(),
			timingLabel(record),
			record.Text,
		})
	}
	return renderTable([]column{
		{header: "#", align: alignRight},
		{header: "Time"},
		{header: "Text", width: textColumnWidth * 2},
	}, rows)
}

// renderCorrections lists only corrected records, original next to fixed text.
func renderCorrections(records []subtitles.Record) string {
	rows := make([][]string, 0)
	for _, record := range records {
		if !record.Corrected {
			continue
		}
		rows = append(rows, []string{
			record.Sequence.String(),
			timingLabel(record),
			record.OriginalText,
			record.Text,
			strings.TrimSpace(record.CorrectionReason),
		})
	}
	if len(rows) == 0 {
		return ""
	}
	return renderTable([]column{
		{header: "#", align: alignRight},
		{header: "Time"},
		{header: "Original", width: textColumnWidth},
		{header: "Corrected", width: textColumnWidth},
		{header: "Reason", width: textColumnWidth},
	}, rows)
}

// recordView is the JSON shape of a record.
type recordView struct {
	Sequence     string `json:"sequence"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Text         string `json:"text"`
	OriginalText string `json:"original_text"`
	Corrected    bool   `json:"corrected"`
	Reason       string `json:"reason,omitempty"`
}

func recordViews(records []subtitles.Record) []recordView {
	views := make([]recordView, 0, len(records))
	for _, record := range records {
		views = append(views, recordView{
			Sequence:     record.Sequence.String(),
			StartTime:    record.StartTime,
			EndTime:      record.EndTime,
			Text:         record.Text,
			OriginalText: record.OriginalText,
			Corrected:    record.Corrected,
			Reason:       record.CorrectionReason,
		})
	}
	return views
}
