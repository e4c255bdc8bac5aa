package workflow

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/text/language"

	"subfix/internal/fileutil"
	"subfix/internal/logging"
	"subfix/internal/services"
	"subfix/internal/subtitles"
)

// Status is the lifecycle state of a Session.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusParsing   Status = "parsing"
	StatusAnalyzing Status = "analyzing"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

var (
	// ErrNotCompleted is returned when exporting before a run has completed.
	ErrNotCompleted = errors.New("correction run has not completed")
	// ErrRunInProgress is returned when Run is called while a run is active.
	ErrRunInProgress = errors.New("a correction run is already in progress")
)

// Session holds one loaded file and its correction state.
type Session struct {
	orchestrator *Orchestrator
	doc          *subtitles.Document
	outputPrefix string
	logger       *slog.Logger

	mu       sync.RWMutex
	status   Status
	percent  float64
	path     string
	language language.Tag
	lastErr  error
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithOutputPrefix sets the prefix of exported file names.
func WithOutputPrefix(prefix string) SessionOption {
	return func(s *Session) {
		s.outputPrefix = prefix
	}
}

// WithSessionLogger sets the session logger.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession returns an idle session with an empty document.
func NewSession(orchestrator *Orchestrator, opts ...SessionOption) *Session {
	s := &Session{
		orchestrator: orchestrator,
		doc:          subtitles.NewDocument(nil),
		outputPrefix: subtitles.DefaultOutputPrefix,
		status:       StatusIdle,
		language:     language.Und,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "session")
	return s
}

// Load reads and parses path, replacing any previously loaded file. A name
// that is not an .srt file is rejected without changing the session; a
// parse failure leaves the session in StatusError.
func (s *Session) Load(path string) error {
	if err := subtitles.ValidateInputName(path); err != nil {
		s.setErr(err)
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		err = services.Wrap(services.ErrInput, "loading", "read file", "", err)
		s.setErr(err)
		return err
	}
	return s.LoadBytes(path, data)
}

// LoadBytes parses data as the contents of the file called name.
func (s *Session) LoadBytes(name string, data []byte) error {
	if err := subtitles.ValidateInputName(name); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	if s.status == StatusAnalyzing {
		s.mu.Unlock()
		return ErrRunInProgress
	}
	s.path = name
	s.lastErr = nil
	s.status = StatusParsing
	s.mu.Unlock()

	records, err := parseBytes(data)
	if err != nil {
		s.doc.Reset()
		s.mu.Lock()
		s.status = StatusError
		s.lastErr = err
		s.mu.Unlock()
		logging.ErrorWithContext(s.logger, "subtitle file could not be parsed", "parse_failed",
			logging.String("file", filepath.Base(name)),
			logging.String(logging.FieldErrorKind, string(services.KindOf(err))),
			logging.String(logging.FieldErrorHint, "check that the file is a text SRT file"),
			logging.Error(err),
		)
		return err
	}

	s.doc.Replace(records)
	tag := subtitles.DetectLanguage(records)

	s.mu.Lock()
	s.status = StatusIdle
	s.percent = 0
	s.language = tag
	s.mu.Unlock()

	s.logger.Info("subtitle file loaded",
		logging.String(logging.FieldEventType, "file_loaded"),
		logging.String("file", filepath.Base(name)),
		logging.Int("records", len(records)),
		logging.String("language", tag.String()),
	)
	return nil
}

func parseBytes(data []byte) ([]subtitles.Record, error) {
	text, err := subtitles.Decode(data)
	if err != nil {
		return nil, err
	}
	return subtitles.Parse(text)
}

// Run corrects the loaded document. Progress is reset to zero first; onProgress
// (if set) is called after each batch. Every run processes all batches from the
// current document state.
func (s *Session) Run(ctx context.Context, onProgress func(Progress)) error {
	if s.doc.Len() == 0 {
		return services.Wrap(services.ErrInput, "analyzing", "start run", "no subtitles loaded", nil)
	}

	s.mu.Lock()
	if s.status == StatusAnalyzing {
		s.mu.Unlock()
		return ErrRunInProgress
	}
	s.status = StatusAnalyzing
	s.percent = 0
	s.lastErr = nil
	s.mu.Unlock()

	err := s.orchestrator.Run(ctx, s.doc, func(p Progress) {
		s.mu.Lock()
		s.percent = p.Percent()
		s.mu.Unlock()
		if onProgress != nil {
			onProgress(p)
		}
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusError
		s.lastErr = err
		return err
	}
	s.status = StatusCompleted
	return nil
}

// Export writes the corrected file next to the input, or into outDir when it
// is set, and returns the written path. It is only available after a
// completed run.
func (s *Session) Export(outDir string) (string, error) {
	content, err := s.Output()
	if err != nil {
		return "", err
	}
	target := subtitles.ExportPath(s.FilePath(), outDir, s.outputPrefix)
	if err := fileutil.WriteFileAtomic(target, []byte(content), 0o644); err != nil {
		return "", services.Wrap(services.ErrOutput, "exporting", "write file", "", err)
	}
	s.logger.Info("corrected file exported",
		logging.String(logging.FieldEventType, "file_exported"),
		logging.String("output", target),
		logging.Int("corrected_total", s.doc.CorrectedCount()),
	)
	return target, nil
}

// Output returns the corrected document as SRT text. It is only available
// after a completed run.
func (s *Session) Output() (string, error) {
	if s.Status() != StatusCompleted {
		return "", ErrNotCompleted
	}
	return subtitles.Serialize(s.doc.Records()), nil
}

// OutputName returns the export file name for the loaded file.
func (s *Session) OutputName() string {
	return subtitles.OutputName(s.FilePath(), s.outputPrefix)
}

// Reset returns the session to its initial state. It fails with
// ErrRunInProgress while a run is active; otherwise calling it repeatedly has
// no further effect.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusAnalyzing {
		return ErrRunInProgress
	}
	s.doc.Reset()
	s.status = StatusIdle
	s.percent = 0
	s.path = ""
	s.language = language.Und
	s.lastErr = nil
	return nil
}

func (s *Session) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Progress returns the share of batches completed in the current or last run, 0..100.
func (s *Session) Progress() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.percent
}

// Err returns the last error, or nil.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// FilePath returns the path of the loaded file, or "".
func (s *Session) FilePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// FileName returns the base name of the loaded file, or "".
func (s *Session) FileName() string {
	path := s.FilePath()
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

// Language returns the detected subtitle language.
func (s *Session) Language() language.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// Records returns a snapshot of the document.
func (s *Session) Records() []subtitles.Record {
	return s.doc.Records()
}

// CorrectedCount returns how many records carry a correction.
func (s *Session) CorrectedCount() int {
	return s.doc.CorrectedCount()
}
