package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"subfix/internal/logging"
	"subfix/internal/subtitles"
	"subfix/internal/workflow"
)

func newCorrectCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var batchSize int
	var dryRun bool
	var quiet bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "correct <file.srt>",
		Short: "Send subtitles to the model and write a corrected copy",
		Long: "Loads an SRT file, asks the configured model to fix speech-recognition\n" +
			"errors batch by batch, prints every change with its reason, and writes\n" +
			"fixed_<name> next to the input (or into --out-dir).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if batchSize < 0 {
				return errors.New("--batch-size must not be negative (0 uses correction.batch_size)")
			}
			p, err := ctx.newPipeline(batchSize)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			session := p.session

			if err := session.Load(args[0]); err != nil {
				return err
			}
			if name := subtitles.LanguageName(session.Language()); name != "" {
				p.client.SetSourceLanguage(name)
			}

			stderr := cmd.ErrOrStderr()
			reporter := newProgressReporter(stderr, logger, quiet)
			runErr := session.Run(cmd.Context(), reporter.update)
			reporter.finish()

			out := cmd.OutOrStdout()
			records := session.Records()
			if jsonOut {
				if err := writeJSON(cmd, recordViews(records)); err != nil {
					return err
				}
			} else if !quiet {
				if table := renderCorrections(records); table != "" {
					fmt.Fprintln(out, table)
				}
			}
			if runErr != nil {
				return runErr
			}

			colorize := shouldColorize(stderr)
			fmt.Fprintln(stderr, renderStatusLine("Corrected", statusOK,
				fmt.Sprintf("%d of %d blocks (%s)", session.CorrectedCount(), len(records), p.model), colorize))
			if dryRun {
				fmt.Fprintln(stderr, renderStatusLine("Output", statusInfo, "dry run, nothing written", colorize))
				return nil
			}
			written, err := session.Export(outDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(stderr, renderStatusLine("Output", statusOK, written, colorize))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Directory for the corrected file (default: next to the input)")
	cmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0, "Blocks per request (default: correction.batch_size)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show corrections without writing a file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the progress bar and corrections table")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print all blocks as JSON instead of the corrections table")
	return cmd
}

// progressReporter draws a progress bar on terminals and falls back to
// sampled log lines elsewhere.
type progressReporter struct {
	bar     *progressbar.ProgressBar
	logger  *slog.Logger
	sampler *logging.ProgressSampler
	writer  io.Writer
	quiet   bool
}

func newProgressReporter(writer io.Writer, logger *slog.Logger, quiet bool) *progressReporter {
	return &progressReporter{
		logger:  logging.NewComponentLogger(logger, "cli"),
		sampler: logging.NewProgressSampler(0),
		writer:  writer,
		quiet:   quiet,
	}
}

func (r *progressReporter) update(p workflow.Progress) {
	if r.quiet {
		return
	}
	if isTerminal(r.writer) {
		if r.bar == nil {
			r.bar = progressbar.NewOptions(p.Total,
				progressbar.OptionSetWriter(r.writer),
				progressbar.OptionSetDescription("Analyzing"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetPredictTime(false),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = r.bar.Set(p.Completed)
		return
	}
	if r.sampler.ShouldLog(p.Percent(), "analyzing") {
		r.logger.Info("analysis progress",
			logging.String(logging.FieldEventType, "progress"),
			logging.Int("batches_done", p.Completed),
			logging.Int("batches_total", p.Total),
			logging.Float64(logging.FieldProgressPercent, p.Percent()),
		)
	}
}

func (r *progressReporter) finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}
