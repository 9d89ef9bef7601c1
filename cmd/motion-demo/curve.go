package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/motion/vmath"
)

type curveOptions struct {
	Steps int
	Plot  bool
}

func newCurveCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &curveOptions{}

	cmd := &cobra.Command{
		Use:       "curve <easing>",
		Short:     "Print sampled values of an easing curve",
		Long:      "Print t and eased(t) for evenly spaced t in [0,1]. Known curves: " + strings.Join(vmath.EasingNames(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: vmath.EasingNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCurve(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.Steps, "steps", "n", 10, "number of intervals")
	cmd.Flags().BoolVar(&opts.Plot, "plot", false, "append a bar per sample")

	return cmd
}

func runCurve(cmd *cobra.Command, opts *curveOptions, name string) error {
	easing, err := vmath.ParseEasing(name)
	if err != nil {
		return err
	}
	if opts.Steps < 1 {
		return fmt.Errorf("steps must be >= 1, got %d", opts.Steps)
	}

	out := cmd.OutOrStdout()
	for i := 0; i <= opts.Steps; i++ {
		t := float64(i) / float64(opts.Steps)
		v := easing.Apply(t)
		if opts.Plot {
			fmt.Fprintf(out, "%.3f %9.6f %s\n", t, v, strings.Repeat("#", max(vmath.Round(v*40), 0)))
			continue
		}
		fmt.Fprintf(out, "%.3f %.6f\n", t, v)
	}
	return nil
}
