// Package main hosts the SubFix CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into subtitle sessions:
// load an SRT file, send it batch by batch to the configured language model,
// show what changed and why, and write the corrected copy. Configuration
// resolution and logging setup live in commandContext so subcommands only deal
// with their own flags and output.
//
// Keep this package lean: behavior belongs in internal/workflow and the
// packages beneath it; commands here only wire and render.
package main
