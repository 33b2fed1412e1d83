package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDevicesCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List registered capture devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := cmdCtx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			devices, err := store.ListDevices(cmd.Context())
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No devices registered yet.")
				return nil
			}

			rows := make([][]string, 0, len(devices))
			for _, device := range devices {
				rows = append(rows, []string{
					device.ShortName,
					device.Model,
					device.Make,
					device.Description,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"Short Name", "Model", "Make", "Description"}, rows, nil))
			return nil
		},
	}
}
