package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"inspector-binding/decor"
	"inspector-binding/internal/diagnostic"
	"inspector-binding/internal/manifest"
)

var errCheckFailed = errors.New("check failed")

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate every decoration of a manifest against the graph",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}

	cmd.Flags().StringP("manifest", "m", "", "decoration manifest (YAML)")
	cmd.Flags().Bool("playing", false, "evaluate as if the simulation were running")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if err := applyColor(cmd); err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("manifest")
	f, err := manifest.LoadFile(path)
	if err != nil {
		return err
	}

	graph, err := graphFlag(cmd)
	if err != nil {
		return err
	}

	playing, _ := cmd.Flags().GetBool("playing")
	host := decor.Host{Playing: playing}

	diags := manifest.Validate(f)
	ev := decor.NewEvaluator(newEngine(cmd, f.Engine))
	out := cmd.OutOrStdout()

	var count int
	for _, field := range f.Fields() {
		for _, d := range field.Decorations {
			count++

			m := ev.Evaluate(graph, field.Path, d, host)
			if w, ok := m.(decor.WarningModel); ok {
				diags.Add(w.Diagnostic)
				continue
			}
			_, _ = fmt.Fprintf(out, "%s %s %s\n", okFmt("ok"), field.Path, d.Kind)
		}
	}

	for d := range diags.All() {
		label := warnFmt(d.Severity.String())
		if d.Severity == diagnostic.DiagnosticError {
			label = errorFmt(d.Severity.String())
		}
		_, _ = fmt.Fprintf(out, "%s %s\n", label, d)
	}

	_, _ = fmt.Fprintf(out, "%d decorations, %d warnings, %d errors\n", count, len(diags.Warnings), len(diags.Errors))

	if diags.HasErrors() {
		return fmt.Errorf("%w: %s", errCheckFailed, summary(diags))
	}

	return nil
}

func summary(diags diagnostic.Diagnostics) string {
	first := diags.Errors[0]
	if n := len(diags.Errors); n > 1 {
		return fmt.Sprintf("%s (and %d more)", first.Code, n-1)
	}

	return first.Code
}
