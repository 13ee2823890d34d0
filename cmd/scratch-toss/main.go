package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/scratch-toss/audio"
	"github.com/lixenwraith/scratch-toss/config"
	"github.com/lixenwraith/scratch-toss/constants"
	"github.com/lixenwraith/scratch-toss/core"
	"github.com/lixenwraith/scratch-toss/engine"
	"github.com/lixenwraith/scratch-toss/game"
	"github.com/lixenwraith/scratch-toss/input"
	"github.com/lixenwraith/scratch-toss/render"
	"github.com/lixenwraith/scratch-toss/reveal"
	"github.com/lixenwraith/scratch-toss/scratch"
	"github.com/lixenwraith/scratch-toss/status"
)

var (
	configPath = flag.String("config", "", "Path to a YAML config file")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to logs/"+logFileName)
	statusAddr = flag.String("status-addr", "", "Serve status JSON on this address, overrides the config")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "scratch-toss: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	keys, err := cfg.KeyTable()
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(*debugFlag)
	if err != nil {
		return err
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	core.SetTerminalReset(screen.Fini)
	// Normal exit terminal cleanup
	defer func() {
		core.SetTerminalReset(nil)
		screen.Fini()
	}()
	screen.EnableMouse()
	screen.SetStyle(render.StyleBackground)
	screen.Clear()

	// Audio is optional: the game continues silently without a device
	sound := audio.NewSoundManager(cfg.AudioOutput(), logger)
	if err := sound.Initialize(); err != nil {
		if errors.Is(err, audio.ErrDisabled) {
			logger.Info("audio disabled by config")
		} else {
			logger.Warn("continuing without audio", zap.Error(err))
		}
	}
	defer sound.Cleanup()

	reg := status.NewRegistry()
	sched := engine.NewLoopScheduler(constants.CallbackQueueSize)
	defer sched.Close()

	machine, err := reveal.NewMachine(reveal.Options{
		Tracker:             scratch.NewTracker(cfg.Tracker()),
		Scheduler:           sched,
		Cues:                reveal.MultiCues{sound, render.NewBellCues(screen, logger)},
		Logger:              logger,
		Status:              reg,
		FlipDuration:        cfg.Timing.Flip.Std(),
		CelebrationDuration: cfg.Timing.Celebration.Std(),
		TickInterval:        cfg.Timing.Tick.Std(),
	})
	if err != nil {
		return err
	}
	defer machine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Status.Addr
	if *statusAddr != "" {
		addr = *statusAddr
	}
	if addr != "" {
		srv, err := status.Listen(addr, reg, logger)
		if err != nil {
			logger.Warn("status server disabled", zap.Error(err))
		} else {
			core.Go(func() {
				if err := srv.Serve(ctx); err != nil {
					logger.Warn("status server stopped", zap.Error(err))
				}
			})
		}
	}

	view := render.NewView(render.Labels{
		Title: cfg.Labels.Title,
		Heads: cfg.Labels.Heads,
		Tails: cfg.Labels.Tails,
	}, cfg.Scratch.StrokePx, cfg.Timing.Toast.Std())

	app, err := game.NewApp(game.Options{
		Screen:     screen,
		Machine:    machine,
		View:       view,
		Translator: input.NewTranslator(keys),
		Callbacks:  sched.C(),
		Now:        sched.Now,
		Logger:     logger,
		Status:     reg,
		CellPxW:    cfg.Scratch.CellPxW,
		CellPxH:    cfg.Scratch.CellPxH,
	})
	if err != nil {
		return err
	}

	logger.Info("scratch-toss started", zap.String("config", *configPath), zap.String("status_addr", addr))
	return app.Run(ctx)
}
