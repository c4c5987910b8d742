package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"idverify/internal/consistency"
	"idverify/internal/document"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "compare RECORDS.json",
		Short: "Cross-check previously extracted records",
		Long: "Read a JSON array of records (as printed by `idverify extract --format json`)\n" +
			"and compare every record against the first. Use - to read from stdin.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(formatFlag, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			records, err := readRecords(cmd, args[0])
			if err != nil {
				return err
			}
			summary := consistency.Compare(records)
			if format == formatJSON {
				return writeJSON(cmd, summary)
			}
			writeSummaryText(cmd.OutOrStdout(), format, summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(formatAuto), formatFlagUsage)
	return cmd
}

func readRecords(cmd *cobra.Command, path string) ([]document.Record, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open records: %w", err)
		}
		defer f.Close()
		r = f
	}

	var records []document.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records from %s: %w", path, err)
	}
	for i := range records {
		if records[i].Kind == "" {
			records[i].Kind = document.KindUnknown
		}
	}
	return records, nil
}
