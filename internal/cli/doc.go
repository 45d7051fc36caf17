// Package cli implements the command-line interface for event-pipeline.
//
// It provides the Cobra-based CLI with the merge command (the full
// consolidation pipeline), parse (free-text announcement to candidate
// event), and validate (time validation over an events file), with text and
// JSON output formats.
package cli
