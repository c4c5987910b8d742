package main

import (
	"github.com/spf13/cobra"

	"idverify/internal/pipeline"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "extract FILE...",
		Short: "Extract identity fields from documents",
		Long: "Read each document (text, PDF, or image), extract the document type, name,\n" +
			"date of birth, and identification number, and print one record per file.",
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
			runner, err := ctx.runner(cmd)
			if err != nil {
				return err
			}
			records, err := runner.Extract(cmd.Context(), pipeline.Sources(args, kind))
			if err != nil {
				return err
			}
			return writeRecords(cmd, format, records)
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Document kind hint: pan, aadhaar, or auto")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(formatAuto), formatFlagUsage)
	return cmd
}
