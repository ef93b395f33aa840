// Command atomcoreql is a CLI front end over the bridge package: it
// loads a design file, runs a query or mutation against one of its
// networks, and reports the result as JSON on stdout.
//
// Usage:
//
//	atomcoreql view design.json main
//	atomcoreql eval design.json main 3
//	atomcoreql layout design.json main --algorithm sugiyama
//	atomcoreql import library.cnnd design.json gear_assembly --prefix lib_
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "atomcoreql:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "atomcoreql",
		Short:         "Query and manipulate atomCAD node-network design files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newViewCmd())
	root.AddCommand(newEvalCmd())
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newImportCmd())
	return root
}
