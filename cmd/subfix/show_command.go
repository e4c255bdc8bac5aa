package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"subfix/internal/subtitles"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "show <file.srt>",
		Short:       "Parse a subtitle file and list its blocks",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := subtitles.ReadFile(args[0])
			if err != nil {
				return err
			}
			records, err := subtitles.Parse(raw)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, recordViews(records))
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No subtitle blocks found")
				return nil
			}
			fmt.Fprintln(out, renderRecords(records))
			summary := fmt.Sprintf("%d blocks", len(records))
			if name := subtitles.LanguageName(subtitles.DetectLanguage(records)); name != "" {
				summary += ", language: " + name
			}
			fmt.Fprintln(out, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output blocks as JSON")
	return cmd
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
