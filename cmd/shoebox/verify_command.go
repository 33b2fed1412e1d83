package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shoebox/internal/logging"
	"shoebox/internal/verify"
)

func newVerifyCommand(cmdCtx *commandContext) *cobra.Command {
	var checksums bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Audit the catalog against the destination tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := cmdCtx.logger()
			if err != nil {
				return err
			}
			store, _, err := cmdCtx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			destRoot, err := store.Destination(ctx)
			if err != nil {
				return err
			}

			verifier := verify.New(store, destRoot, logging.NewComponentLogger(logger, "verify"))
			report, err := verifier.Run(ctx, checksums)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checked %d entries\n", report.Checked)
			if report.Clean() {
				fmt.Fprintln(out, "Catalog and destination tree are consistent.")
				return nil
			}
			if len(report.Pruned) > 0 {
				rows := make([][]string, 0, len(report.Pruned))
				for _, path := range report.Pruned {
					rows = append(rows, []string{path})
				}
				fmt.Fprintln(out, "Pruned rows (destination file missing):")
				fmt.Fprintln(out, renderTable([]string{"Canonical Path"}, rows, nil))
			}
			if len(report.Mismatches) > 0 {
				rows := make([][]string, 0, len(report.Mismatches))
				for _, m := range report.Mismatches {
					rows = append(rows, []string{m.CanonicalPath, m.WantFingerprint, m.GotFingerprint})
				}
				fmt.Fprintln(out, "Fingerprint drift (rows kept):")
				fmt.Fprintln(out, renderTable([]string{"Canonical Path", "Cataloged", "On Disk"}, rows, nil))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&checksums, "checksums", "C", false, "Re-hash destination files and compare fingerprints")
	return cmd
}
