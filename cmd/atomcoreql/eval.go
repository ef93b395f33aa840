package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/atomcore/atomcore/node"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <design.json> <network> <node-id>",
		Short: "Evaluate a node and print its result as JSON",
		Args:  requireArgs(3, "eval <design.json> <network> <node-id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBridge(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return err
			}
			result, err := b.EvaluateNode(args[1], node.NodeId(id))
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}
