// Package workflow runs the correction pipeline over a loaded subtitle file.
//
// Orchestrator splits a Document into fixed-size batches, sends them to the
// correction service strictly one after another, merges each reply into the
// document, and reports progress after every batch. The first failing batch
// halts the run; corrections merged before it are kept.
//
// Session wraps the orchestrator with the lifecycle a user sees: load a file,
// run, watch status and progress, export the corrected file, reset.
package workflow
