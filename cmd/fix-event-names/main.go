// Fix event JSON files by giving every event without a name a default one
// derived from its date, so historical data can be imported.
//
// Usage: go run ./cmd/fix-event-names input.json [output.json]
// Without an output path the input file is rewritten in place.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"event-name-fixer/internal/repair"
	"event-name-fixer/internal/store"

	"github.com/spf13/cobra"
)

const usageLine = "Usage: fix-event-names input_file.json [output_file.json]"

var errUsage = errors.New("missing input file")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix-event-names <input.json> [output.json]",
		Short: "Add default names to events that are missing one",
		Long: `Reads a JSON document with an "events" list and names every event
that has no usable name "Event on <date>", then writes the document back.
Entries in the list that are not objects are dropped.
Arguments after the output path are ignored.`,
		Args: cobra.ArbitraryArgs,
		// Paths may start with a dash, so arguments are never read as flags.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && (args[0] == "-h" || args[0] == "--help") {
				return cmd.Help()
			}
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), usageLine)
				return errUsage
			}

			input := args[0]
			output := input
			if len(args) > 1 {
				output = args[1]
			}

			logger := log.New(cmd.OutOrStdout(), "", 0)
			return run(input, output, logger)
		},
	}
	return cmd
}

func run(input, output string, logger *log.Logger) error {
	logger.Printf("Reading %s...", input)
	doc, err := store.Load(input)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("input file '%s': %w", input, store.ErrNotFound)
		}
		return err
	}

	logger.Printf("Fixing event names...")
	fixed, report, err := repair.Events(doc, logger)
	if err != nil {
		return fmt.Errorf("fixing events in %s: %w", input, err)
	}
	if report.Total() > 0 {
		logger.Printf("Processed %d events: %d kept, %d named, %d skipped",
			report.Total(), report.Kept, report.Named, report.Skipped)
	}

	logger.Printf("Writing to %s...", output)
	if err := store.Save(output, fixed); err != nil {
		return err
	}

	logger.Printf("Successfully fixed event names in %s", output)
	return nil
}
