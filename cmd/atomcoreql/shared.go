package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomcore/atomcore/bridge"
	"github.com/atomcore/atomcore/catalog"
	"github.com/atomcore/atomcore/eval"
	"github.com/atomcore/atomcore/node"
)

// loadBridge builds a Bridge with every catalog builtin registered and
// loads designPath into it.
func loadBridge(designPath string) (*bridge.Bridge, error) {
	reg := node.NewRegistry()
	ev := eval.NewEvaluator()
	if err := catalog.RegisterAll(reg, ev); err != nil {
		return nil, fmt.Errorf("register builtins: %w", err)
	}
	b := bridge.NewBridge(reg, ev)
	if err := b.LoadDesign(designPath); err != nil {
		return nil, fmt.Errorf("load %s: %w", designPath, err)
	}
	return b, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(out, '\n'))
	return err
}

// requireArgs wraps cobra.ExactArgs with a friendlier usage-aware error.
func requireArgs(n int, use string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("usage: atomcoreql %s", use)
		}
		return nil
	}
}
