package main

import (
	"github.com/spf13/cobra"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <design.json> <network>",
		Short: "Print a network's nodes and wires as JSON",
		Args:  requireArgs(2, "view <design.json> <network>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBridge(args[0])
			if err != nil {
				return err
			}
			view, err := b.GetNetworkView(args[1])
			if err != nil {
				return err
			}
			return printJSON(view)
		},
	}
}
