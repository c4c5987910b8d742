package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"idverify/internal/consistency"
	"idverify/internal/document"
	"idverify/internal/textutil"
)

type outputFormat string

const (
	formatAuto     outputFormat = "auto"
	formatTable    outputFormat = "table"
	formatJSON     outputFormat = "json"
	formatMarkdown outputFormat = "markdown"
)

const formatFlagUsage = "Output format: auto, table, json, or markdown"

// resolveFormat turns the --format flag into a concrete format. auto picks a
// table for terminals and JSON otherwise.
func resolveFormat(value string, w io.Writer) (outputFormat, error) {
	switch outputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", formatAuto:
		if isTerminal(w) {
			return formatTable, nil
		}
		return formatJSON, nil
	case formatTable:
		return formatTable, nil
	case formatJSON:
		return formatJSON, nil
	case formatMarkdown, "md":
		return formatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want auto, table, json, or markdown)", value)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var recordHeaders = []string{"#", "Source", "Type", "Name", "DOB", "ID Number"}

func recordRows(records []document.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		rows = append(rows, []string{
			strconv.Itoa(i),
			textutil.SanitizeCell(rec.Source),
			rec.Kind.String(),
			textutil.OptionalCell(rec.Name),
			textutil.OptionalCell(rec.DateOfBirth),
			textutil.OptionalCell(rec.IDNumber),
		})
	}
	return rows
}

// markdownRows mirrors the four column layout used for Markdown reports.
func markdownRows(records []document.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			textutil.SanitizeCell(rec.Kind.String()),
			textutil.OptionalCell(rec.Name),
			textutil.OptionalCell(rec.DateOfBirth),
			textutil.OptionalCell(rec.IDNumber),
		})
	}
	return rows
}

var markdownHeaders = []string{"doc_type", "name", "dob", "id_number"}

func writeRecords(cmd *cobra.Command, format outputFormat, records []document.Record) error {
	out := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		if records == nil {
			records = []document.Record{}
		}
		return writeJSON(cmd, records)
	case formatMarkdown:
		fmt.Fprintln(out, renderMarkdown(markdownHeaders, markdownRows(records)))
	default:
		if len(records) == 0 {
			fmt.Fprintln(out, "No documents")
			return nil
		}
		fmt.Fprintln(out, renderTable(recordHeaders, recordRows(records), []columnAlignment{alignRight}))
	}
	return nil
}

var mismatchHeaders = []string{"Index", "Source", "Name", "DOB", "ID Number"}

func mismatchRows(summary consistency.Summary) [][]string {
	rows := make([][]string, 0, len(summary.Mismatches))
	for _, mm := range summary.Mismatches {
		rows = append(rows, []string{
			strconv.Itoa(mm.Index),
			textutil.SanitizeCell(mm.Record.Source),
			okMismatch(mm.NameOK),
			okMismatch(mm.DOBOK),
			okMismatch(mm.IDOK),
		})
	}
	return rows
}

// writeSummaryText renders the human readable consistency summary.
func writeSummaryText(out io.Writer, format outputFormat, summary consistency.Summary) {
	if format == formatMarkdown {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "## Consistency summary")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Total records: %d\n", summary.TotalRecords)
		if !summary.Flagged() {
			fmt.Fprintln(out, "\nNo mismatches")
			return
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderMarkdown(mismatchHeaders, mismatchRows(summary)))
		return
	}

	fmt.Fprintf(out, "\nConsistency summary: %d record(s) compared against #0\n", summary.TotalRecords)
	if !summary.Flagged() {
		fmt.Fprintln(out, "No mismatches")
		return
	}
	fmt.Fprintf(out, "%d record(s) disagree with the reference\n", len(summary.Mismatches))
	fmt.Fprintln(out, renderTable(mismatchHeaders, mismatchRows(summary), []columnAlignment{alignRight}))
}
