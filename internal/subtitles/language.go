package subtitles

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DetectLanguage returns the most common language across record texts, or
// language.Und when nothing is recognized. Ties go to the lexically smaller code.
func DetectLanguage(records []Record) language.Tag {
	counts := make(map[string]int)
	for _, record := range records {
		text := strings.TrimSpace(record.Text)
		if text == "" {
			continue
		}
		code := whatlanggo.DetectLang(text).Iso6391()
		if code == "" {
			continue
		}
		counts[code]++
	}

	var top string
	var topCount int
	for code, count := range counts {
		if count > topCount || (count == topCount && code < top) {
			top = code
			topCount = count
		}
	}
	if top == "" {
		return language.Und
	}
	tag, err := language.Parse(top)
	if err != nil {
		return language.Und
	}
	return tag
}

// LanguageName returns the English name of tag, or "" for an undetermined tag.
func LanguageName(tag language.Tag) string {
	if tag == language.Und {
		return ""
	}
	return display.English.Tags().Name(tag)
}
