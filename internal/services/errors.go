package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInput             = errors.New("invalid input")
	ErrParse             = errors.New("parse error")
	ErrCorrectionService = errors.New("correction service error")
	ErrPipeline          = errors.New("correction run halted")
	ErrConfiguration     = errors.New("configuration error")
	ErrOutput            = errors.New("output error")
)

// Kind is the coarse category of a failure, used for logging and exit codes.
type Kind string

const (
	KindNone          Kind = ""
	KindInput         Kind = "input"
	KindParse         Kind = "parse"
	KindService       Kind = "correction_service"
	KindConfiguration Kind = "configuration"
	KindOutput        Kind = "output"
	KindCanceled      Kind = "canceled"
	KindUnknown       Kind = "unknown"
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrPipeline
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// KindOf classifies err. A halted run reports the kind of its cause, so a
// pipeline error caused by a service failure is KindService.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInput):
		return KindInput
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrOutput):
		return KindOutput
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, ErrCorrectionService):
		return KindService
	case errors.Is(err, ErrPipeline):
		return KindService
	default:
		return KindUnknown
	}
}

// UserMessage maps err to the single message shown to the person running the
// tool. Details stay in the logs.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindNone:
		return ""
	case KindInput:
		return "Please select a valid .srt file."
	case KindParse:
		return "Failed to parse the SRT file."
	case KindService:
		return "Error during AI analysis. Please try again."
	case KindCanceled:
		return "Analysis canceled."
	case KindConfiguration:
		return err.Error()
	case KindOutput:
		return "Failed to write the corrected file: " + err.Error()
	default:
		return err.Error()
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
