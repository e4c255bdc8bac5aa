package subtitles

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"subfix/internal/services"
)

const (
	// Extension is the only accepted input suffix. The check is case-sensitive.
	Extension = ".srt"
	// DefaultOutputPrefix is prepended to the input name on export.
	DefaultOutputPrefix = "fixed_"
)

// ValidateInputName rejects names that do not end in ".srt".
func ValidateInputName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return services.Wrap(services.ErrInput, "loading", "validate name", "no file given", nil)
	}
	base := filepath.Base(name)
	if !strings.HasSuffix(base, Extension) {
		return services.Wrap(services.ErrInput, "loading", "validate name", fmt.Sprintf("%q is not an %s file", base, Extension), nil)
	}
	return nil
}

// ReadFile validates the name of path, reads it, and decodes its text.
func ReadFile(path string) (string, error) {
	if err := ValidateInputName(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrInput, "loading", "read file", "file not found", err)
		}
		return "", services.Wrap(services.ErrInput, "loading", "read file", "", err)
	}
	return Decode(data)
}

var (
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// Decode converts file bytes to text. A leading byte order mark is honored
// (UTF-8 or UTF-16) and removed; content without a UTF-16 BOM must be valid UTF-8.
func Decode(data []byte) (string, error) {
	utf16 := bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM)
	if !utf16 && !utf8.Valid(data) {
		return "", services.Wrap(services.ErrParse, "parsing", "decode", "input is not UTF-8 text", nil)
	}
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", services.Wrap(services.ErrParse, "parsing", "decode", "", err)
	}
	return string(decoded), nil
}

// OutputName returns the export file name for an input name: prefix plus the
// base name. An empty prefix means DefaultOutputPrefix.
func OutputName(name, prefix string) string {
	if prefix == "" {
		prefix = DefaultOutputPrefix
	}
	return prefix + filepath.Base(name)
}

// ExportPath places OutputName(inputPath) in outDir, or next to the input when
// outDir is empty.
func ExportPath(inputPath, outDir, prefix string) string {
	if strings.TrimSpace(outDir) == "" {
		outDir = filepath.Dir(inputPath)
	}
	return filepath.Join(outDir, OutputName(inputPath, prefix))
}
