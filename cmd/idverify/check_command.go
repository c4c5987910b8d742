package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"idverify/internal/consistency"
	"idverify/internal/document"
	"idverify/internal/history"
	"idverify/internal/logging"
	"idverify/internal/pipeline"
)

var errMismatch = errors.New("documents are inconsistent")

type checkOutput struct {
	RunID   string              `json:"run_id,omitempty"`
	Records []document.Record   `json:"records"`
	Summary consistency.Summary `json:"summary"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string
	var formatFlag string
	var noHistory bool
	var failOnMismatch bool

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Extract fields and cross-check documents against the first",
		Long: "Extract every document, then compare each one against the first (the\n" +
			"reference) on name, date of birth, and identification number. Runs are saved\n" +
			"to the history database unless --no-history is given.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(formatFlag, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			kind, err := ctx.resolveKind(kindFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runner, err := ctx.runner(cmd)
			if err != nil {
				return err
			}

			result, err := runner.Check(cmd.Context(), pipeline.Sources(args, kind))
			if err != nil {
				return err
			}

			output := checkOutput{Records: result.Records, Summary: result.Summary}
			if cfg.History.Enabled && !noHistory {
				err := ctx.withHistory(func(store *history.Store) error {
					run, err := store.Save(cmd.Context(), result.Records, result.Summary)
					if err != nil {
						return err
					}
					output.RunID = run.ID
					return nil
				})
				if err != nil {
					return fmt.Errorf("save run: %w", err)
				}
				if logger, lerr := ctx.logger(cmd); lerr == nil {
					logging.WithContext(logging.WithRunID(cmd.Context(), output.RunID), logger).
						Info("check saved", logging.Int("total_records", result.Summary.TotalRecords))
				}
			}

			if err := writeCheckOutput(cmd, format, output); err != nil {
				return err
			}
			if failOnMismatch && result.Summary.Flagged() {
				return errMismatch
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Document kind hint applied to every file: pan, aadhaar, or auto")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(formatAuto), formatFlagUsage)
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history database")
	cmd.Flags().BoolVar(&failOnMismatch, "fail-on-mismatch", false, "Exit non-zero when any document disagrees with the reference")
	return cmd
}

func writeCheckOutput(cmd *cobra.Command, format outputFormat, output checkOutput) error {
	if format == formatJSON {
		if output.Records == nil {
			output.Records = []document.Record{}
		}
		if output.Summary.Mismatches == nil {
			output.Summary.Mismatches = []consistency.Mismatch{}
		}
		return writeJSON(cmd, output)
	}
	if err := writeRecords(cmd, format, output.Records); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	writeSummaryText(out, format, output.Summary)
	if output.RunID != "" {
		fmt.Fprintf(out, "\nRun ID: %s\n", output.RunID)
	}
	return nil
}
