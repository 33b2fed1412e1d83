package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <canonical-path>",
		Short: "Show the catalog entry at a canonical path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := cmdCtx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.EntryForPath(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Canonical path", entry.CanonicalPath},
				{"Original filename", entry.OriginalFilename},
				{"Fingerprint", entry.Fingerprint},
				{"Size (bytes)", fmt.Sprintf("%d", entry.SizeBytes)},
				{"Captured", entry.CaptureTimestamp.Format("2006-01-02 15:04:05")},
				{"Device", fmt.Sprintf("%s (%s %s)", entry.Device.ShortName, entry.Device.Make, entry.Device.Model)},
				{"Cataloged", entry.Entry.CreatedAt.Format("2006-01-02 15:04:05")},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}
