package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomcore/atomcore/layout"
	"github.com/atomcore/atomcore/node"
)

func newLayoutCmd() *cobra.Command {
	var algorithm string
	cmd := &cobra.Command{
		Use:   "layout <design.json> <network>",
		Short: "Print automatic node positions for a network as JSON",
		Args:  requireArgs(2, "layout <design.json> <network> [--algorithm grid|sugiyama]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBridge(args[0])
			if err != nil {
				return err
			}
			net, err := b.Network(args[1])
			if err != nil {
				return err
			}

			var positions map[node.NodeId]layout.Position
			switch algorithm {
			case "grid":
				positions, err = layout.TopologicalGridLayout(net)
			case "sugiyama", "":
				positions, err = layout.SugiyamaLayout(net)
			default:
				return fmt.Errorf("unknown layout algorithm %q (want grid or sugiyama)", algorithm)
			}
			if err != nil {
				return err
			}
			return printJSON(positions)
		},
	}
	cmd.Flags().StringVar(&algorithm, "algorithm", "sugiyama", "layout algorithm: grid or sugiyama")
	return cmd
}
