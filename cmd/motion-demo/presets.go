package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

func newPresetsCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List scroll reveal presets from the active config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(cmd, rootOpts)
		},
	}
}

func runPresets(cmd *cobra.Command, opts *rootOptions) error {
	out := cmd.OutOrStdout()
	for _, name := range opts.cfg.PresetNames() {
		p := opts.cfg.Reveal.Presets[name]
		fmt.Fprintf(out, "%-12s %5dms %-12s %s -> %s\n", name, p.DurationMs, p.Easing, formatProps(p.Initial), formatProps(p.Goals))
	}
	return nil
}

func formatProps(props map[string]float64) string {
	if len(props) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(props))
	for _, k := range slices.Sorted(maps.Keys(props)) {
		parts = append(parts, fmt.Sprintf("%s=%g", k, props[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
