package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"idverify/internal/history"
	"idverify/internal/textutil"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect saved check runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryDeleteCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent check runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(formatFlag, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.History.ListLimit
			}

			var entries []history.Entry
			err = ctx.withHistory(func(store *history.Store) error {
				var err error
				entries, err = store.List(cmd.Context(), limit)
				return err
			})
			if err != nil {
				return err
			}

			if format == formatJSON {
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			headers := []string{"ID", "Created", "Records", "Mismatches", "Sources"}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.ID,
					entry.CreatedAt.Local().Format(time.DateTime),
					strconv.Itoa(entry.TotalRecords),
					strconv.Itoa(entry.MismatchCount),
					textutil.SanitizeCell(strings.Join(entry.Sources, ", ")),
				})
			}
			if format == formatMarkdown {
				fmt.Fprintln(out, renderMarkdown(headers, rows))
				return nil
			}
			fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignRight}))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of runs to show (0 for all; defaults to history.list_limit)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(formatAuto), formatFlagUsage)
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show the records and summary of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(formatFlag, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			var run *history.Run
			err = ctx.withHistory(func(store *history.Store) error {
				var err error
				run, err = store.Get(cmd.Context(), args[0])
				return err
			})
			if errors.Is(err, history.ErrNotFound) {
				return fmt.Errorf("run %s not found", args[0])
			}
			if err != nil {
				return err
			}
			if format != formatJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "Run %s (%s)\n", run.ID, run.CreatedAt.Local().Format(time.DateTime))
			}
			return writeCheckOutput(cmd, format, checkOutput{RunID: run.ID, Records: run.Records, Summary: run.Summary})
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(formatAuto), formatFlagUsage)
	return cmd
}

func newHistoryDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := ctx.withHistory(func(store *history.Store) error {
				return store.Delete(cmd.Context(), args[0])
			})
			if errors.Is(err, history.ErrNotFound) {
				return fmt.Errorf("run %s not found", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
			return nil
		},
	}
}
