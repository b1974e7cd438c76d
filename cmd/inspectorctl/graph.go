package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"inspector-binding/binding"
)

var errNoGraph = errors.New("no object graph given, use --graph")

// loadGraph decodes the YAML file at path into maps, slices and scalars.
func loadGraph(path string) (any, error) {
	if path == "" {
		return nil, errNoGraph
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph %s: %w", path, err)
	}

	var graph any
	if err := yaml.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("failed to parse graph %s: %w", path, err)
	}
	if graph == nil {
		return nil, fmt.Errorf("graph %s is empty", path)
	}

	return graph, nil
}

// graphFlag loads the graph named by the --graph flag.
func graphFlag(cmd *cobra.Command) (any, error) {
	path, _ := cmd.Flags().GetString("graph")
	return loadGraph(path)
}

// newLogger logs to stderr; --verbose lowers the level to debug.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// newEngine builds an engine for cmd with the given rules.
func newEngine(cmd *cobra.Command, cfg binding.Config) *binding.Engine {
	return binding.New(
		binding.WithConfig(cfg),
		binding.WithLogger(newLogger(cmd)),
	)
}

// applyColor honours the --color flag.
func applyColor(cmd *cobra.Command) error {
	mode, _ := cmd.Flags().GetString("color")

	switch mode {
	case "auto":
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("unknown color mode %q (want auto, on or off)", mode)
	}

	return nil
}

var (
	warnFmt  = color.New(color.FgYellow).SprintFunc()
	errorFmt = color.New(color.FgRed, color.Bold).SprintFunc()
	okFmt    = color.New(color.FgGreen).SprintFunc()
)
