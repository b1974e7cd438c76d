package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"inspector-binding/binding"
	"inspector-binding/options"
)

func newSourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source NAME",
		Short: "Resolve a named source for a shape",
		Long: `Resolve a named source the way a decoration would: a field or map
entry first, then a property, then a zero-parameter method.`,
		Args: cobra.ExactArgs(1),
		RunE: runSource,
	}

	cmd.Flags().StringP("shape", "s", options.ShapeNumber.String(), "wanted shape (number|enumerable|action)")
	cmd.Flags().StringP("owner", "o", "", "path of the instance owning the source, the root if empty")

	return cmd
}

func runSource(cmd *cobra.Command, args []string) error {
	if err := applyColor(cmd); err != nil {
		return err
	}

	shapeName, _ := cmd.Flags().GetString("shape")
	shape, err := options.ParseShape(shapeName)
	if err != nil {
		return err
	}

	graph, err := graphFlag(cmd)
	if err != nil {
		return err
	}

	e := newEngine(cmd, binding.DefaultConfig())

	var inst any = graph
	if path, _ := cmd.Flags().GetString("owner"); path != "" {
		v, err := e.Value(graph, path)
		if err != nil {
			return err
		}
		inst = v
	}

	rs, err := e.Source(inst, args[0], shape)
	if err != nil {
		return err
	}

	binding.Visit(rs, &printer{w: cmd.OutOrStdout()})

	if err := rs.Err(); err != nil {
		return fmt.Errorf("source %q: %w", args[0], err)
	}

	return nil
}

// printer writes one resolved source.
type printer struct {
	w io.Writer
}

func (p *printer) VisitNumber(n binding.Number) {
	kind := "float"
	if n.Integer {
		kind = "integer"
	}
	_, _ = fmt.Fprintf(p.w, "%s %s = %v (%s, %s)\n", okFmt("number"), n.Source, n.Value, kind, n.Member.Kind)
}

func (p *printer) VisitEnumerable(e binding.Enumerable) {
	_, _ = fmt.Fprintf(p.w, "%s %s: %d options\n", okFmt("enumerable"), e.Source, len(e.Options))
	for i, label := range e.Labels() {
		_, _ = fmt.Fprintf(p.w, "  [%d] %s\n", i, label)
	}
}

func (p *printer) VisitAction(a binding.Action) {
	_, _ = fmt.Fprintf(p.w, "%s %s -> %s\n", okFmt("action"), a.Source, a.Member)
}

func (p *printer) VisitNotFound(n binding.NotFound) {
	_, _ = fmt.Fprintf(p.w, "%s %s source %q\n", warnFmt("not found:"), n.Want, n.Source)
	if len(n.Suggestions) > 0 {
		_, _ = fmt.Fprintf(p.w, "  did you mean %s?\n", strings.Join(n.Suggestions, ", "))
	}
}

func (p *printer) VisitWrongShape(w binding.WrongShape) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", warnFmt("wrong shape:"), w.Reason)
}
