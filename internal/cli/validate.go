package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandpointevents/event-pipeline/internal/event"
	"github.com/sandpointevents/event-pipeline/internal/storage"
	"github.com/sandpointevents/event-pipeline/internal/timecheck"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <events.json>",
		Short: "Run the time validator over an events file",
		Long: `Validates time formats and date/time consistency for every event in the
given JSON array and prints the batch report. Advisory only: no file is
modified.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagFormat)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading events file: %w", err)
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("parsing events file: %w", err)
	}

	events := make([]*event.Event, 0, len(raws))
	for i, raw := range raws {
		e, err := storage.DecodeLoose(raw)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		events = append(events, e)
	}

	report := timecheck.ValidateBatch(events)
	return WriteValidationReport(cmd.OutOrStdout(), &report, format)
}
