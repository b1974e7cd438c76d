package main

import (
	"fmt"
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"inspector-binding/binding"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve PATH",
		Short: "Print the owner and the value at a path",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolve,
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	graph, err := graphFlag(cmd)
	if err != nil {
		return err
	}

	e := newEngine(cmd, binding.DefaultConfig())

	owner, err := e.Owner(graph, args[0])
	if err != nil {
		return err
	}
	value, err := e.Value(graph, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "owner: %s", dump(owner))
	_, _ = fmt.Fprintf(out, "value: %s", dump(value))

	return nil
}

func dump(v reflect.Value) string {
	if !v.IsValid() || !v.CanInterface() {
		return "<invalid>\n"
	}

	return dumper.Sdump(v.Interface())
}
