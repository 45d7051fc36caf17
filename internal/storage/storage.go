package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sandpointevents/event-pipeline/internal/event"
	"github.com/sandpointevents/event-pipeline/internal/logger"
)

// Store handles loading raw source files and persisting pipeline outputs.
type Store struct {
	sourcesDir string
	legacyDirs []string
	outputDir  string
}

// New creates a Store. The output directory is created if missing.
func New(sourcesDir string, legacyDirs []string, outputDir string) (*Store, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Store{
		sourcesDir: sourcesDir,
		legacyDirs: legacyDirs,
		outputDir:  outputDir,
	}, nil
}

// LoadAll reads every raw source file from the active sources directory,
// falling back to the legacy scattered layouts when the active directory
// yields nothing. Loading is tolerant: a malformed file or record is logged
// and skipped, never fatal.
func (s *Store) LoadAll() ([]*event.Event, error) {
	events, err := s.loadDir(s.sourcesDir)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		return events, nil
	}
	for _, dir := range s.legacyDirs {
		legacy, err := s.loadDir(dir)
		if err != nil {
			return nil, err
		}
		if len(legacy) > 0 {
			logger.Info("loaded events from legacy layout", logger.Fields{"dir": dir, "count": len(legacy)})
			return legacy, nil
		}
	}
	return events, nil
}

// loadDir reads every *.json file in dir, each an array of loose records.
func (s *Store) loadDir(dir string) ([]*event.Event, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading sources directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	// Deterministic load order keeps re-runs byte-identical.
	sort.Strings(names)

	var events []*event.Event
	for _, name := range names {
		path := filepath.Join(dir, name)
		loaded, err := loadFile(path)
		if err != nil {
			logger.Warn("skipping malformed source file", logger.Fields{"file": path, "error": err.Error()})
			continue
		}
		logger.Info("loaded source file", logger.Fields{"file": name, "count": len(loaded)})
		events = append(events, loaded...)
	}
	return events, nil
}

func loadFile(path string) ([]*event.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing JSON array: %w", err)
	}

	events := make([]*event.Event, 0, len(raws))
	for i, raw := range raws {
		e, err := DecodeLoose(raw)
		if err != nil {
			logger.Warn("skipping malformed record", logger.Fields{"file": path, "index": i, "error": err.Error()})
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// WriteOutputs persists the production and review sets. Writes go through a
// temp file and rename so a crash mid-write never leaves a truncated output
// in place of the previous successful run's file.
func (s *Store) WriteOutputs(production, review []*event.Event) error {
	if err := s.writeJSON("events.json", nonNil(production)); err != nil {
		return err
	}
	return s.writeJSON("events-to-review.json", nonNil(review))
}

// WriteReport persists the merge report.
func (s *Store) WriteReport(report interface{}) error {
	return s.writeJSON("merge-report.json", report)
}

// WriteErrorLog records a fatal pipeline error next to the outputs so a
// partial state is always explained.
func (s *Store) WriteErrorLog(runErr error) error {
	path := filepath.Join(s.outputDir, "merge-error.log")
	msg := fmt.Sprintf("merge failed: %v\n", runErr)
	if err := os.WriteFile(path, []byte(msg), 0644); err != nil {
		return fmt.Errorf("writing error log: %w", err)
	}
	return nil
}

func (s *Store) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	data = append(data, '\n')

	path := filepath.Join(s.outputDir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

// nonNil keeps empty output files as [] rather than null.
func nonNil(events []*event.Event) []*event.Event {
	if events == nil {
		return []*event.Event{}
	}
	return events
}
