package correction

import (
	"fmt"
	"strings"

	"subfix/internal/subtitles"
)

const defaultReasonLanguage = "Chinese"

const systemPromptTemplate = `You are an expert subtitle editor. You will receive a batch of SRT subtitle blocks produced by automatic speech recognition (ASR).
Check the text for common ASR errors:
1. Homophone errors (for example 的/得/地 in Chinese, there/their in English).
2. Missing or wrong punctuation that changes the meaning.
3. Words that do not make sense in the surrounding context.
4. Wrong capitalization or spelling of proper nouns.

Return only the blocks that need correction. If a block is already correct, do not include it.
Keep the original language and style of each block.
Explain each correction briefly in %s.

Respond with JSON only: an array of objects with the fields
"sequenceNumber" (the number in brackets), "fixedText" (the corrected block text), and "reason".
Return [] when nothing needs correction.`

// SystemPrompt returns the instruction text with reasons requested in reasonLanguage.
func SystemPrompt(reasonLanguage string) string {
	reasonLanguage = strings.TrimSpace(reasonLanguage)
	if reasonLanguage == "" {
		reasonLanguage = defaultReasonLanguage
	}
	return fmt.Sprintf(systemPromptTemplate, reasonLanguage)
}

// UserPrompt lists the batch as "[sequence] text" lines using current text.
func UserPrompt(batch []subtitles.Record, sourceLanguage string) string {
	var b strings.Builder
	if lang := strings.TrimSpace(sourceLanguage); lang != "" {
		b.WriteString("Subtitle language: ")
		b.WriteString(lang)
		b.WriteString("\n\n")
	}
	b.WriteString("Subtitle blocks to analyze:\n")
	for _, record := range batch {
		fmt.Fprintf(&b, "[%s] %s\n", record.Sequence, record.Text)
	}
	return b.String()
}
