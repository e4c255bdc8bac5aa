package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const healthTimeout = 30 * time.Second

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the configured model is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Correction Service", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Provider", statusInfo, cfg.LLM.Provider, colorize))
			fmt.Fprintln(out, renderStatusLine("Model", statusInfo, cfg.LLM.Model, colorize))

			completer, err := newCompleter(cfg)
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("API key", statusError, "missing", colorize))
				return err
			}
			fmt.Fprintln(out, renderStatusLine("API key", statusOK, "", colorize))

			checkCtx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
			defer cancel()
			started := time.Now()
			if err := completer.HealthCheck(checkCtx); err != nil {
				fmt.Fprintln(out, renderStatusLine("Reachable", statusError, err.Error(), colorize))
				return fmt.Errorf("health check failed: %w", err)
			}
			elapsed := time.Since(started).Round(time.Millisecond)
			fmt.Fprintln(out, renderStatusLine("Reachable", statusOK, elapsed.String(), colorize))
			return nil
		},
	}
}
