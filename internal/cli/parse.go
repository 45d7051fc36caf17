package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandpointevents/event-pipeline/internal/textparse"
)

var (
	flagParseSource string
	flagParseRefURL string
	flagParseIndex  int
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a free-text event announcement into a candidate event",
		Long: `Reads an announcement paragraph from the given file (or stdin when no
file is given) and prints the extracted candidate event as JSON. This is the
entry point for sources that only publish prose.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}

	cmd.Flags().StringVar(&flagParseSource, "source", "", "Source label for the announcement")
	cmd.Flags().StringVar(&flagParseRefURL, "reference-url", "", "Reference URL for the announcement")
	cmd.Flags().IntVar(&flagParseIndex, "index", 0, "Index of this record within its scrape batch")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	_, tables, err := loadRuntime()
	if err != nil {
		return err
	}

	var raw []byte
	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	evt, err := textparse.New(tables).Parse(string(raw), textparse.Options{
		Source:       flagParseSource,
		ReferenceURL: flagParseRefURL,
		GlobalIndex:  flagParseIndex,
	})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(evt)
}
