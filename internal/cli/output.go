package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/sandpointevents/event-pipeline/internal/merge"
	"github.com/sandpointevents/event-pipeline/internal/timecheck"
)

// OutputFormat specifies the run-summary format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteRunSummary writes a human-readable (or JSON) summary of a merge run,
// mirroring the persisted report fields.
func WriteRunSummary(w io.Writer, result *merge.Result, format OutputFormat) error {
	if format == FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result.Report)
	}

	r := result.Report
	fmt.Fprintf(w, "Merge complete at %s\n", r.Timestamp)
	fmt.Fprintf(w, "  Loaded:             %d\n", r.OriginalCount)
	fmt.Fprintf(w, "  Duplicates removed: %d\n", r.DuplicatesRemoved)
	fmt.Fprintf(w, "  Production events:  %d\n", r.ProductionCount)
	fmt.Fprintf(w, "  Needs review:       %d\n", r.ReviewCount)
	if r.DateRange.Earliest != "" {
		fmt.Fprintf(w, "  Date range:         %s to %s\n", r.DateRange.Earliest, r.DateRange.Latest)
	}

	if len(r.Sources) > 0 {
		fmt.Fprintln(w, "\nBy source:")
		writeHistogram(w, r.Sources)
	}
	if len(r.Tags) > 0 {
		fmt.Fprintln(w, "\nBy tag:")
		writeHistogram(w, r.Tags)
	}

	if len(result.Discards) > 0 {
		fmt.Fprintln(w, "\nDuplicates resolved:")
		for _, d := range result.Discards {
			fmt.Fprintf(w, "  %q (%s, score %d) lost to %s (score %d)\n",
				d.LoserTitle, d.LoserSource, d.LoserScore, d.WinnerID, d.WinnerScore)
		}
	}

	return nil
}

// WriteValidationReport writes the time-validator batch report.
func WriteValidationReport(w io.Writer, report *timecheck.BatchReport, format OutputFormat) error {
	if format == FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summarizeValidation(report))
	}

	for _, r := range report.Results {
		for _, issue := range r.Issues {
			marker := "warn"
			if r.HasErrors {
				marker = "ERROR"
			}
			fmt.Fprintf(w, "  [%s] %s: %s\n", marker, r.Event.ID, issue)
		}
	}
	fmt.Fprintf(w, "\nValidated %d events: %d clean, %d with warnings, %d with errors\n",
		len(report.Results), report.CleanEvents, report.EventsWithWarnings, report.EventsWithErrors)
	return nil
}

type validationSummary struct {
	Total              int                 `json:"total"`
	CleanEvents        int                 `json:"cleanEvents"`
	EventsWithWarnings int                 `json:"eventsWithWarnings"`
	EventsWithErrors   int                 `json:"eventsWithErrors"`
	Issues             map[string][]string `json:"issues,omitempty"`
}

func summarizeValidation(report *timecheck.BatchReport) validationSummary {
	s := validationSummary{
		Total:              len(report.Results),
		CleanEvents:        report.CleanEvents,
		EventsWithWarnings: report.EventsWithWarnings,
		EventsWithErrors:   report.EventsWithErrors,
		Issues:             make(map[string][]string),
	}
	for _, r := range report.Results {
		if len(r.Issues) > 0 {
			s.Issues[r.Event.ID] = r.Issues
		}
	}
	return s
}

// writeHistogram prints a name→count map in descending count order, names
// sorted on ties for stable output.
func writeHistogram(w io.Writer, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Fprintf(w, "  %-40s %d\n", name, counts[name])
	}
}
