package subtitles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestDetectLanguageMajority(t *testing.T) {
	records := []Record{
		{Text: "The quick brown fox jumps over the lazy dog near the river bank."},
		{Text: "She said that they would come back home before the evening started."},
		{Text: "我们今天晚上一起去吃饭吧，好久没有见面了。"},
	}
	tag := DetectLanguage(records)
	assert.Equal(t, language.English, tag)
	assert.Equal(t, "English", LanguageName(tag))
}

func TestDetectLanguageEmpty(t *testing.T) {
	assert.Equal(t, language.Und, DetectLanguage(nil))
	assert.Equal(t, language.Und, DetectLanguage([]Record{{Text: "  "}}))
	assert.Equal(t, "", LanguageName(language.Und))
}
