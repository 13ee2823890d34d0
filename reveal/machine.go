package reveal

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/lixenwraith/scratch-toss/constants"
	"github.com/lixenwraith/scratch-toss/engine"
	"github.com/lixenwraith/scratch-toss/scratch"
	"github.com/lixenwraith/scratch-toss/status"
)

// Lifecycle triggers
const (
	eventToss    = "toss"
	eventFlipped = "flipped"
	eventReveal  = "reveal"
	eventExpire  = "expire"
	eventReset   = "reset"
)

// Options wires the machine's collaborators; zero fields get defaults
type Options struct {
	Tracker   *scratch.Tracker
	Scheduler engine.Scheduler
	Animator  Animator
	Cues      Cues
	Logger    *zap.Logger
	Status    *status.Registry

	FlipDuration        time.Duration
	CelebrationDuration time.Duration
	TickInterval        time.Duration

	// Coin picks the outcome of a toss; defaults to a fair coin
	Coin func() Outcome
}

// Machine owns the reveal lifecycle, the toss outcome and the session timers
// All methods must be called from the scheduler's loop
type Machine struct {
	fsm      *fsm.FSM
	tracker  *scratch.Tracker
	sched    engine.Scheduler
	animator Animator
	cues     Cues
	logger   *zap.Logger
	coin     func() Outcome

	flipDuration time.Duration
	celebration  time.Duration
	tick         time.Duration

	// Session state, cleared on return to idle
	session   uuid.UUID
	outcome   Outcome
	countdown engine.Timer
	ticker    engine.Timer
	remaining int

	// Cached metric pointers
	statSessions *atomic.Int64
	statIgnored  *atomic.Int64
	statSamples  *atomic.Int64
	statDropped  *atomic.Int64
	statStale    *atomic.Int64
	statCoverage *status.AtomicFloat
	statStage    *status.AtomicString
	statOutcome  *status.AtomicString
}

// ErrNoScheduler is returned when Options carries no scheduler
var ErrNoScheduler = errors.New("reveal: scheduler is required")

// NewMachine creates a machine in the idle stage
func NewMachine(opts Options) (*Machine, error) {
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if opts.Tracker == nil {
		opts.Tracker = scratch.NewTracker(scratch.DefaultConfig())
	}
	if opts.Animator == nil {
		opts.Animator = engine.NewTween(opts.Scheduler)
	}
	if opts.Cues == nil {
		opts.Cues = NopCues{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}
	if opts.FlipDuration <= 0 {
		opts.FlipDuration = constants.FlipDuration
	}
	if opts.CelebrationDuration <= 0 {
		opts.CelebrationDuration = constants.CelebrationDuration
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = constants.CountdownTick
	}
	if opts.Coin == nil {
		opts.Coin = FairCoin
	}

	m := &Machine{
		tracker:      opts.Tracker,
		sched:        opts.Scheduler,
		animator:     opts.Animator,
		cues:         opts.Cues,
		logger:       opts.Logger.Named("reveal"),
		coin:         opts.Coin,
		flipDuration: opts.FlipDuration,
		celebration:  opts.CelebrationDuration,
		tick:         opts.TickInterval,

		statSessions: opts.Status.Counters.Get("reveal.sessions"),
		statIgnored:  opts.Status.Counters.Get("reveal.ignored"),
		statSamples:  opts.Status.Counters.Get("scratch.samples"),
		statDropped:  opts.Status.Counters.Get("scratch.dropped"),
		statStale:    opts.Status.Counters.Get("reveal.stale_callbacks"),
		statCoverage: opts.Status.Gauges.Get("scratch.coverage"),
		statStage:    opts.Status.Labels.Get("reveal.stage"),
		statOutcome:  opts.Status.Labels.Get("reveal.outcome"),
	}

	m.fsm = fsm.NewFSM(
		string(StageIdle),
		fsm.Events{
			{Name: eventToss, Src: []string{string(StageIdle)}, Dst: string(StageFlipping)},
			{Name: eventFlipped, Src: []string{string(StageFlipping)}, Dst: string(StageScratch)},
			{Name: eventReveal, Src: []string{string(StageScratch)}, Dst: string(StageCelebrating)},
			{Name: eventExpire, Src: []string{string(StageCelebrating)}, Dst: string(StageIdle)},
			{Name: eventReset, Src: []string{string(StageScratch), string(StageCelebrating)}, Dst: string(StageIdle)},
		},
		fsm.Callbacks{
			"enter_" + string(StageFlipping): func(_ context.Context, _ *fsm.Event) {
				m.beginSession()
			},
			"enter_" + string(StageCelebrating): func(_ context.Context, _ *fsm.Event) {
				m.startCelebration()
			},
			"enter_" + string(StageIdle): func(_ context.Context, _ *fsm.Event) {
				m.endSession()
			},
			"enter_state": func(_ context.Context, e *fsm.Event) {
				m.statStage.Store(e.Dst)
				m.logger.Debug("stage transition",
					zap.String("event", e.Event),
					zap.String("from", e.Src),
					zap.String("to", e.Dst),
					zap.Stringer("session", m.session),
				)
			},
		},
	)

	m.statStage.Store(string(StageIdle))
	m.statOutcome.Store(OutcomeNone.String())
	return m, nil
}

// FairCoin returns heads or tails with equal probability
func FairCoin() Outcome {
	if rand.Intn(2) == 1 {
		return Tails
	}
	return Heads
}

// Stage returns the active stage
func (m *Machine) Stage() Stage {
	return Stage(m.fsm.Current())
}

// Outcome returns the current toss outcome, OutcomeNone outside a session
func (m *Machine) Outcome() Outcome {
	return m.outcome
}

// Session returns the current session id, uuid.Nil when idle
func (m *Machine) Session() uuid.UUID {
	return m.session
}

// Snapshot returns the presentation view of the machine
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Stage:     m.Stage(),
		Outcome:   m.outcome,
		Coverage:  m.tracker.Published(),
		Threshold: m.tracker.Threshold(),
		Remaining: m.remaining,
		Session:   m.session,
	}
	if snap.Stage == StageFlipping {
		snap.FlipProgress = m.animator.Progress()
	}
	return snap
}

// Measure records the scratch surface size in pixels; safe in any stage
func (m *Machine) Measure(width, height float64) {
	m.tracker.Configure(width, height)
	m.logger.Debug("surface measured", zap.Float64("width", width), zap.Float64("height", height))
}

// StartToss begins a toss from idle; returns false when a toss is already in progress
func (m *Machine) StartToss() bool {
	return m.fire(eventToss)
}

// FlipComplete advances to scratch if session is still the current one
func (m *Machine) FlipComplete(session uuid.UUID) bool {
	if !m.current(session) {
		return false
	}
	return m.fire(eventFlipped)
}

// Sample feeds one gesture sample to the tracker while scratching
func (m *Machine) Sample(x, y float64) scratch.Result {
	if m.Stage() != StageScratch {
		m.statDropped.Add(1)
		return scratch.Result{Ratio: m.tracker.Ratio(), Published: m.tracker.Published()}
	}

	res := m.tracker.Sample(x, y)
	if !res.Accepted {
		m.statDropped.Add(1)
		return res
	}
	m.statSamples.Add(1)
	if res.Changed {
		m.statCoverage.Set(res.Published)
	}
	if res.Revealed {
		m.Reveal(m.session)
	}
	return res
}

// Reveal handles the tracker's one-shot threshold notification for session
// Notifications from a reset session are ignored: the latch was cleared and the id no longer matches
func (m *Machine) Reveal(session uuid.UUID) bool {
	if !m.current(session) || !m.tracker.Revealed() {
		return false
	}
	return m.fire(eventReveal)
}

// Reset returns to idle from scratch or celebrating, cancelling the countdown
func (m *Machine) Reset() bool {
	return m.fire(eventReset)
}

// Close cancels timers and animation without a transition
func (m *Machine) Close() {
	m.stopTimers()
	m.animator.Cancel()
	m.cues.Silence()
}

// fire dispatches a trigger; rejected triggers are counted and logged, never returned
func (m *Machine) fire(event string) bool {
	err := m.fsm.Event(context.Background(), event)
	if err == nil {
		return true
	}

	var invalid fsm.InvalidEventError
	if errors.As(err, &invalid) {
		m.statIgnored.Add(1)
		m.logger.Debug("trigger ignored", zap.String("event", event), zap.String("stage", invalid.State))
		return false
	}
	m.logger.Warn("trigger failed", zap.String("event", event), zap.Error(err))
	return false
}

func (m *Machine) current(session uuid.UUID) bool {
	if session == uuid.Nil || session != m.session {
		m.statStale.Add(1)
		return false
	}
	return true
}

// beginSession runs on entering flipping
func (m *Machine) beginSession() {
	// Pre-emptive: nothing from a previous session may survive into this one
	m.stopTimers()
	m.tracker.Reset()
	m.statCoverage.Set(0)

	m.session = uuid.New()
	m.outcome = m.coin()
	m.remaining = 0
	m.statSessions.Add(1)
	m.statOutcome.Store(m.outcome.String())

	m.cues.Flip()

	session := m.session
	m.animator.Start(m.flipDuration, func() {
		m.FlipComplete(session)
	})

	m.logger.Info("toss started", zap.Stringer("session", session), zap.Stringer("outcome", m.outcome))
}

// startCelebration runs on entering celebrating
func (m *Machine) startCelebration() {
	m.stopTimers()

	session := m.session
	m.remaining = int(math.Ceil(float64(m.celebration) / float64(m.tick)))
	m.countdown = m.sched.AfterFunc(m.celebration, func() {
		m.expire(session)
	})
	m.ticker = m.sched.Every(m.tick, func() {
		m.countdownTick(session)
	})

	m.cues.Celebrate()
	m.logger.Info("outcome revealed",
		zap.Stringer("session", session),
		zap.Stringer("outcome", m.outcome),
		zap.Float64("coverage", m.tracker.Ratio()),
	)
}

// endSession runs on every return to idle
func (m *Machine) endSession() {
	m.stopTimers()
	m.animator.Cancel()
	m.tracker.Reset()
	m.cues.Silence()

	m.logger.Info("session ended", zap.Stringer("session", m.session))

	m.session = uuid.Nil
	m.outcome = OutcomeNone
	m.remaining = 0
	m.statCoverage.Set(0)
	m.statOutcome.Store(OutcomeNone.String())
}

func (m *Machine) expire(session uuid.UUID) {
	if !m.current(session) {
		return
	}
	m.fire(eventExpire)
}

func (m *Machine) countdownTick(session uuid.UUID) {
	if !m.current(session) || m.Stage() != StageCelebrating {
		return
	}
	if m.remaining <= 1 {
		m.remaining = 0
		if m.ticker != nil {
			m.ticker.Stop()
			m.ticker = nil
		}
		return
	}
	m.remaining--
}

// stopTimers clears both countdown handles before any new one is created
func (m *Machine) stopTimers() {
	if m.countdown != nil {
		m.countdown.Stop()
		m.countdown = nil
	}
	if m.ticker != nil {
		m.ticker.Stop()
		m.ticker = nil
	}
}
