package game

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/scratch-toss/constants"
	"github.com/lixenwraith/scratch-toss/core"
	"github.com/lixenwraith/scratch-toss/input"
	"github.com/lixenwraith/scratch-toss/render"
	"github.com/lixenwraith/scratch-toss/reveal"
	"github.com/lixenwraith/scratch-toss/status"
)

var (
	ErrNoScreen     = errors.New("game: screen is required")
	ErrNoMachine    = errors.New("game: reveal machine is required")
	ErrScreenClosed = errors.New("game: screen closed")
)

// Options wires an App; zero optional fields get defaults
type Options struct {
	Screen     tcell.Screen
	Machine    *reveal.Machine
	View       *render.View
	Translator *input.Translator

	// Callbacks carries scheduler callbacks that must run on the loop
	Callbacks <-chan func()
	// Now is the presentation clock, normally the scheduler's
	Now func() time.Time

	Logger *zap.Logger
	Status *status.Registry

	CellPxW, CellPxH float64
	FrameInterval    time.Duration
}

// App drives one terminal session
// Input handling, scheduler callbacks and frame rendering all run on the Run goroutine
type App struct {
	screen     tcell.Screen
	machine    *reveal.Machine
	view       *render.View
	translator *input.Translator
	callbacks  <-chan func()
	now        func() time.Time
	logger     *zap.Logger

	buf    *render.RenderBuffer
	canvas *render.BufferScreen

	cellPxW, cellPxH float64
	frameInterval    time.Duration

	statFrames  *atomic.Int64
	statCells   *atomic.Int64
	statEvents  *atomic.Int64
	statResizes *atomic.Int64
}

// NewApp validates options and creates an App sized to the screen
func NewApp(opts Options) (*App, error) {
	if opts.Screen == nil {
		return nil, ErrNoScreen
	}
	if opts.Machine == nil {
		return nil, ErrNoMachine
	}
	if opts.View == nil {
		opts.View = render.NewView(render.Labels{
			Title: constants.DefaultTitle,
			Heads: constants.DefaultHeadsLabel,
			Tails: constants.DefaultTailsLabel,
		}, constants.StrokeWidth, constants.ToastDuration)
	}
	if opts.Translator == nil {
		opts.Translator = input.NewTranslator(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}
	if opts.CellPxW <= 0 {
		opts.CellPxW = constants.CellPixelWidth
	}
	if opts.CellPxH <= 0 {
		opts.CellPxH = constants.CellPixelHeight
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = constants.FrameUpdateInterval
	}

	buf := render.NewRenderBuffer(opts.Screen.Size())
	return &App{
		screen:        opts.Screen,
		machine:       opts.Machine,
		view:          opts.View,
		translator:    opts.Translator,
		callbacks:     opts.Callbacks,
		now:           opts.Now,
		logger:        opts.Logger.Named("game"),
		buf:           buf,
		canvas:        render.NewBufferScreen(buf),
		cellPxW:       opts.CellPxW,
		cellPxH:       opts.CellPxH,
		frameInterval: opts.FrameInterval,
		statFrames:    opts.Status.Counters.Get("ui.frames"),
		statCells:     opts.Status.Counters.Get("ui.cells_flushed"),
		statEvents:    opts.Status.Counters.Get("ui.events"),
		statResizes:   opts.Status.Counters.Get("ui.resizes"),
	}, nil
}

// Run owns the loop until ctx is cancelled, the user quits or the screen closes
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, constants.EventQueueSize)
	core.Go(func() {
		a.poll(ctx, events)
	})

	a.Resize(a.screen.Size())
	a.Draw()

	frames := time.NewTicker(a.frameInterval)
	defer frames.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return ErrScreenClosed
			}
			a.statEvents.Add(1)
			if !a.Handle(a.translator.Translate(ev)) {
				a.logger.Info("quit requested")
				return nil
			}

		case fn := <-a.callbacks:
			fn()

		case <-frames.C:
			a.Draw()
		}
	}
}

// poll forwards terminal events until the screen is finalized
func (a *App) poll(ctx context.Context, out chan<- tcell.Event) {
	defer close(out)
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Handle applies one action; returns false when the app should exit
func (a *App) Handle(act input.Action) bool {
	switch act.Type {
	case input.ActionQuit:
		return false

	case input.ActionResize:
		a.Resize(act.Width, act.Height)

	case input.ActionToss:
		a.machine.StartToss()

	case input.ActionReset:
		a.machine.Reset()

	case input.ActionPress:
		// The on-screen button tosses from idle and goes back from the card
		switch a.machine.Stage() {
		case reveal.StageIdle:
			a.machine.StartToss()
		case reveal.StageScratch, reveal.StageCelebrating:
			a.machine.Reset()
		}

	case input.ActionSample:
		// Stroke first: the sample may reveal and leave the scratch stage
		a.view.Stroke(a.machine.Snapshot(), act.Col, act.Row)
		a.machine.Sample(act.X, act.Y)
	}
	return true
}

// Resize lays out a width x height terminal and re-measures the scratch surface
func (a *App) Resize(width, height int) {
	layout := render.NewLayout(width, height, a.cellPxW, a.cellPxH)

	a.translator.SetSurface(layout.Surface())
	a.view.SetLayout(layout)
	a.machine.Measure(layout.SurfacePixels())
	a.buf.Resize(width, height)
	a.screen.Sync()

	a.statResizes.Add(1)
	a.logger.Debug("resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("too_small", layout.TooSmall()),
	)
}

// Draw renders one frame and pushes changed cells to the screen
func (a *App) Draw() {
	a.buf.Clear()
	a.view.Draw(a.canvas, a.machine.Snapshot(), a.now())
	n := a.buf.Flush(a.screen)
	a.screen.Show()

	a.statFrames.Add(1)
	a.statCells.Add(int64(n))
}
