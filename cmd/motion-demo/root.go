package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/motion/config"
)

// rootOptions holds flags shared by every command
type rootOptions struct {
	ConfigPath string
	LogPath    string
	Verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "motion-demo",
		Short: "Terminal playground for the motion tween engine",
		Long: `motion-demo renders a scrolling page in the terminal: cards revealed as they
scroll into view, skill bars filled on sight and parallax background layers,
all driven by one shared frame loop.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "TOML config file (built-in defaults when empty)")
	cmd.PersistentFlags().StringVar(&opts.LogPath, "log", "", "write logs to this file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug level logging")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newCurveCommand(opts))
	cmd.AddCommand(newPresetsCommand(opts))

	return cmd
}

// init loads the config and opens the logger
func (o *rootOptions) init() error {
	logger, err := setupLogger(o.LogPath, o.Verbose)
	if err != nil {
		return err
	}
	o.logger = logger

	if o.ConfigPath == "" {
		o.cfg = config.Default()
		return nil
	}
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logger.Info("config loaded", zap.String("path", o.ConfigPath))
	return nil
}
