package main

import (
	"github.com/spf13/cobra"

	"github.com/atomcore/atomcore/bridge"
	"github.com/atomcore/atomcore/catalog"
	"github.com/atomcore/atomcore/eval"
	"github.com/atomcore/atomcore/node"
)

func newImportCmd() *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "import <library.cnnd> <design.json> <network>...",
		Short: "Import networks from a .cnnd library into a design file",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 3 {
				return requireArgs(3, "import <library.cnnd> <design.json> <network>...")(cmd, args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			libraryPath, designPath, names := args[0], args[1], args[2:]

			reg := node.NewRegistry()
			ev := eval.NewEvaluator()
			if err := catalog.RegisterAll(reg, ev); err != nil {
				return err
			}
			b := bridge.NewBridge(reg, ev)
			if err := b.LoadDesign(designPath); err != nil {
				return err
			}
			if err := b.LoadLibrary(libraryPath, reg); err != nil {
				return err
			}
			imported, err := b.ImportNetworks(names, prefix)
			if err != nil {
				return err
			}
			if err := b.SaveDesign(designPath); err != nil {
				return err
			}
			return printJSON(imported)
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "prefix applied to every imported network's final name")
	return cmd
}
