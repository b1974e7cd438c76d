// Package main provides the CLI entrypoint for inspectorctl.
//
// inspectorctl runs the member resolution engine against object graphs
// decoded from YAML:
//   - resolve prints the owner and value at a path
//   - source resolves a named source for a shape
//   - check evaluates a decoration manifest and reports what would not draw
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "inspectorctl",
		Short:         "Resolve inspector paths and sources against YAML object graphs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringP("graph", "g", "", "YAML file holding the object graph")
	root.PersistentFlags().BoolP("verbose", "v", false, "log resolution details to stderr")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	root.AddCommand(newResolveCmd(), newSourceCmd(), newCheckCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
