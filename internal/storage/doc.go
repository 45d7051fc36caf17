// Package storage loads raw per-source JSON files and persists the pipeline
// outputs (events.json, events-to-review.json, merge-report.json). Loading
// is tolerant of malformed files and records; output writes are atomic so a
// crash never leaves a truncated file behind.
package storage
