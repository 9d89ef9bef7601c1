package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/motion/audio"
	"github.com/lixenwraith/motion/config"
	"github.com/lixenwraith/motion/core"
	"github.com/lixenwraith/motion/engine"
	"github.com/lixenwraith/motion/status"
)

type runOptions struct {
	Watch bool
	Sound bool
}

func newRunCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the scrolling demo page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), rootOpts, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "reload --config on change")
	cmd.Flags().BoolVar(&opts.Sound, "sound", false, "chime on reveals and fills")

	return cmd
}

func runDemo(parent context.Context, rootOpts *rootOptions, opts *runOptions) error {
	logger := rootOpts.logger
	cfg := rootOpts.cfg

	if opts.Watch && rootOpts.ConfigPath == "" {
		return errors.New("--watch needs --config")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(screen.Fini) }
	defer fini()
	core.SetCrashHook(fini)
	defer core.SetCrashHook(nil)

	reg := status.NewRegistry()
	source := "defaults"
	if rootOpts.ConfigPath != "" {
		source = rootOpts.ConfigPath
	}
	reg.Strings.Get(status.ConfigSource).Store(source)

	var chime *audio.Chime
	if opts.Sound {
		audioCfg := cfg.Audio
		audioCfg.Enabled = true
		chime = audio.NewChime(audioCfg, nil, logger.Named("audio"))
		if err := chime.Initialize(); err != nil {
			// Non-fatal, the page runs silent
			logger.Warn("audio unavailable", zap.Error(err))
		}
		defer chime.Close()
	}

	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	loop := engine.NewFrameLoop()

	d, err := newDemo(sceneDeps{
		screen: screen,
		clock:  clock,
		frames: loop,
		cfg:    cfg,
		reg:    reg,
		chime:  chime,
		logger: logger,
	})
	if err != nil {
		return err
	}

	sched := engine.NewClockScheduler(loop, clock, cfg.FrameInterval(),
		engine.WithAfterFrame(d.frame),
		engine.WithSchedulerStatus(reg),
		engine.WithSchedulerLogger(logger.Named("scheduler")),
	)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if opts.Watch {
		w, err := config.NewWatcher(rootOpts.ConfigPath, func(next *config.Config) {
			sched.Post(func() { d.applyConfig(next) })
		}, config.WithWatcherLogger(logger.Named("config")))
		if err != nil {
			return err
		}
		if err := w.Start(gctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	sched.Start()
	logger.Info("demo started", zap.Duration("interval", cfg.FrameInterval()), zap.Bool("sound", chime != nil && chime.Enabled()))

	// PollEvent returns nil once the screen is finalized
	g.Go(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				sched.Post(func() {
					if !d.handleKey(ev) {
						cancel()
					}
				})
			case *tcell.EventResize:
				sched.Post(screen.Sync)
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		sched.Stop()
		fini()
		return nil
	})

	err = g.Wait()
	logger.Info("demo stopped", zap.Uint64("ticks", sched.TickCount()), zap.Int64("completed", reg.Int(status.TweenCompleted)))
	return err
}
