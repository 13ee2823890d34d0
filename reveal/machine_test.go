package reveal

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/scratch-toss/engine"
	"github.com/lixenwraith/scratch-toss/status"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

const (
	testFlip        = 1300 * time.Millisecond
	testCelebration = 7 * time.Second
)

// recordCues counts cue invocations
type recordCues struct {
	flips, celebrations, silences int
}

func (c *recordCues) Flip()      { c.flips++ }
func (c *recordCues) Celebrate() { c.celebrations++ }
func (c *recordCues) Silence()   { c.silences++ }

type fixture struct {
	m     *Machine
	sched *engine.MockScheduler
	cues  *recordCues
	reg   *status.Registry
}

func newFixture(t *testing.T, coin Outcome) *fixture {
	t.Helper()

	sched := engine.NewMockScheduler(epoch)
	cues := &recordCues{}
	reg := status.NewRegistry()

	m, err := NewMachine(Options{
		Scheduler:           sched,
		Cues:                cues,
		Status:              reg,
		FlipDuration:        testFlip,
		CelebrationDuration: testCelebration,
		TickInterval:        time.Second,
		Coin:                func() Outcome { return coin },
	})
	if err != nil {
		t.Fatalf("NewMachine failed: %v", err)
	}
	m.Measure(300, 300)

	return &fixture{m: m, sched: sched, cues: cues, reg: reg}
}

// toScratch tosses and lets the flip animation finish
func (f *fixture) toScratch(t *testing.T) {
	t.Helper()
	if !f.m.StartToss() {
		t.Fatal("Expected toss to start from idle")
	}
	f.sched.Advance(testFlip)
	if f.m.Stage() != StageScratch {
		t.Fatalf("Expected scratch after flip, got %s", f.m.Stage())
	}
}

// scratchAll rasters the card until the stage leaves scratch
func (f *fixture) scratchAll(t *testing.T) {
	t.Helper()
	for y := 5.0; y < 300; y += 10 {
		for x := 5.0; x < 300; x += 10 {
			f.m.Sample(x, y)
		}
	}
	if f.m.Stage() != StageCelebrating {
		t.Fatalf("Expected celebrating after scratching, got %s", f.m.Stage())
	}
}

// TestNewMachineRequiresScheduler verifies the scheduler is mandatory
func TestNewMachineRequiresScheduler(t *testing.T) {
	_, err := NewMachine(Options{})
	if !errors.Is(err, ErrNoScheduler) {
		t.Errorf("Expected ErrNoScheduler, got %v", err)
	}
}

// TestInitialState verifies the machine starts idle with no session
func TestInitialState(t *testing.T) {
	f := newFixture(t, Heads)

	snap := f.m.Snapshot()
	if snap.Stage != StageIdle || snap.Outcome != OutcomeNone || snap.Session != uuid.Nil {
		t.Errorf("Unexpected initial snapshot: %+v", snap)
	}
	if f.reg.Labels.Get("reveal.stage").Load() != "idle" {
		t.Error("Expected stage label idle")
	}
}

// TestStartTossBeginsSession verifies the idle -> flipping side effects
func TestStartTossBeginsSession(t *testing.T) {
	f := newFixture(t, Tails)

	if !f.m.StartToss() {
		t.Fatal("Expected toss to start")
	}

	if f.m.Stage() != StageFlipping {
		t.Errorf("Expected flipping, got %s", f.m.Stage())
	}
	if f.m.Outcome() != Tails {
		t.Errorf("Expected tails, got %s", f.m.Outcome())
	}
	if f.m.Session() == uuid.Nil {
		t.Error("Expected a session id")
	}
	if f.cues.flips != 1 {
		t.Errorf("Expected one flip cue, got %d", f.cues.flips)
	}

	f.sched.Advance(testFlip / 2)
	if p := f.m.Snapshot().FlipProgress; p < 0.49 || p > 0.51 {
		t.Errorf("Expected flip progress ~0.5, got %f", p)
	}

	f.sched.Advance(testFlip / 2)
	if f.m.Stage() != StageScratch {
		t.Errorf("Expected scratch after flip, got %s", f.m.Stage())
	}
	if f.m.Snapshot().FlipProgress != 0 {
		t.Error("Expected flip progress to be hidden outside flipping")
	}
}

// TestStartTossIgnoredWhileInProgress verifies a new toss cannot begin mid-session
func TestStartTossIgnoredWhileInProgress(t *testing.T) {
	f := newFixture(t, Heads)

	f.m.StartToss()
	session := f.m.Session()
	if f.m.StartToss() {
		t.Error("Expected toss to be ignored while flipping")
	}

	f.sched.Advance(testFlip)
	if f.m.StartToss() {
		t.Error("Expected toss to be ignored while scratching")
	}
	if f.m.Stage() != StageScratch || f.m.Outcome() != Heads || f.m.Session() != session {
		t.Errorf("Expected scratch session untouched, got stage=%s outcome=%s", f.m.Stage(), f.m.Outcome())
	}

	f.scratchAll(t)
	if f.m.StartToss() {
		t.Error("Expected toss to be ignored while celebrating")
	}
	if f.m.Stage() != StageCelebrating {
		t.Errorf("Expected celebrating, got %s", f.m.Stage())
	}

	if got := f.reg.Counters.Get("reveal.ignored").Load(); got != 3 {
		t.Errorf("Expected 3 ignored triggers, got %d", got)
	}
	if f.cues.flips != 1 {
		t.Errorf("Expected single flip cue, got %d", f.cues.flips)
	}
}

// TestSamplesOutsideScratchDropped verifies samples only count while scratching
func TestSamplesOutsideScratchDropped(t *testing.T) {
	f := newFixture(t, Heads)

	f.m.Sample(150, 150)
	f.m.StartToss()
	f.m.Sample(150, 150)

	if f.m.Snapshot().Coverage != 0 {
		t.Errorf("Expected no coverage before scratch, got %f", f.m.Snapshot().Coverage)
	}
	if got := f.reg.Counters.Get("scratch.dropped").Load(); got != 2 {
		t.Errorf("Expected 2 dropped samples, got %d", got)
	}
}

// TestSamplesBeforeMeasurementDropped verifies an unmeasured surface ignores samples
func TestSamplesBeforeMeasurementDropped(t *testing.T) {
	sched := engine.NewMockScheduler(epoch)
	m, err := NewMachine(Options{Scheduler: sched, FlipDuration: testFlip})
	if err != nil {
		t.Fatalf("NewMachine failed: %v", err)
	}

	m.StartToss()
	sched.Advance(testFlip)

	for i := 0; i < 200; i++ {
		m.Sample(float64(i), float64(i))
	}
	if m.Snapshot().Coverage != 0 || m.Stage() != StageScratch {
		t.Errorf("Expected zero coverage in scratch, got %f in %s", m.Snapshot().Coverage, m.Stage())
	}

	m.Measure(300, 300)
	if res := m.Sample(150, 150); res.Marked != 49 {
		t.Errorf("Expected 49 cells once measured, got %d", res.Marked)
	}
}

// TestRevealStartsCelebration verifies the threshold crossing side effects
func TestRevealStartsCelebration(t *testing.T) {
	f := newFixture(t, Heads)
	f.toScratch(t)

	res := f.m.Sample(150, 150)
	if f.m.Snapshot().Coverage != res.Published {
		t.Errorf("Expected snapshot coverage %f, got %f", res.Published, f.m.Snapshot().Coverage)
	}

	f.scratchAll(t)

	if f.cues.celebrations != 1 {
		t.Errorf("Expected one celebration cue, got %d", f.cues.celebrations)
	}
	snap := f.m.Snapshot()
	if snap.Remaining != 7 {
		t.Errorf("Expected 7 seconds remaining, got %d", snap.Remaining)
	}
	if snap.Outcome != Heads {
		t.Errorf("Expected outcome to persist through celebration, got %s", snap.Outcome)
	}
	if f.m.Reveal(f.m.Session()) {
		t.Error("Expected repeated reveal to be ignored")
	}
}

// TestCountdownExpiresToIdle verifies the celebration timer returns to idle
func TestCountdownExpiresToIdle(t *testing.T) {
	f := newFixture(t, Tails)
	f.toScratch(t)
	f.scratchAll(t)

	f.sched.Advance(3 * time.Second)
	if r := f.m.Snapshot().Remaining; r != 4 {
		t.Errorf("Expected 4 seconds remaining after 3s, got %d", r)
	}

	f.sched.Advance(4 * time.Second)

	snap := f.m.Snapshot()
	if snap.Stage != StageIdle {
		t.Fatalf("Expected idle after countdown, got %s", snap.Stage)
	}
	if snap.Outcome != OutcomeNone || snap.Session != uuid.Nil || snap.Coverage != 0 || snap.Remaining != 0 {
		t.Errorf("Expected cleared session, got %+v", snap)
	}
	if f.cues.silences != 1 {
		t.Errorf("Expected one silence cue, got %d", f.cues.silences)
	}
	if f.sched.Pending() != 0 {
		t.Errorf("Expected no timers left, got %d", f.sched.Pending())
	}
}

// TestManualResetCancelsCountdown verifies reset during celebration leaves no pending transition
func TestManualResetCancelsCountdown(t *testing.T) {
	f := newFixture(t, Heads)
	f.toScratch(t)
	f.scratchAll(t)

	f.sched.Advance(2 * time.Second)
	if !f.m.Reset() {
		t.Fatal("Expected manual reset from celebrating")
	}
	if f.m.Stage() != StageIdle {
		t.Fatalf("Expected idle after reset, got %s", f.m.Stage())
	}
	if f.sched.Pending() != 0 {
		t.Errorf("Expected countdown cancelled, %d timers pending", f.sched.Pending())
	}

	// Start the next session before the old deadline; passing it must not disturb the new one
	f.toScratch(t)
	f.sched.Advance(10 * time.Second)

	if f.m.Stage() != StageScratch {
		t.Errorf("Expected new session to stay in scratch past the old deadline, got %s", f.m.Stage())
	}
	if f.cues.silences != 1 {
		t.Errorf("Expected one silence cue, got %d", f.cues.silences)
	}
}

// TestManualResetIdleStaysIdle verifies nothing fires after reset once the old deadline passes
func TestManualResetIdleStaysIdle(t *testing.T) {
	f := newFixture(t, Heads)
	f.toScratch(t)
	f.scratchAll(t)

	f.m.Reset()
	sessions := f.reg.Counters.Get("reveal.sessions").Load()

	f.sched.Advance(testCelebration * 2)

	if f.m.Stage() != StageIdle {
		t.Errorf("Expected idle, got %s", f.m.Stage())
	}
	if f.reg.Counters.Get("reveal.sessions").Load() != sessions {
		t.Error("Expected no new session after reset")
	}
}

// TestResetFromScratch verifies "back to toss" during scratching
func TestResetFromScratch(t *testing.T) {
	f := newFixture(t, Heads)
	f.toScratch(t)
	f.m.Sample(150, 150)

	if !f.m.Reset() {
		t.Fatal("Expected reset from scratch")
	}
	if f.m.Stage() != StageIdle || f.m.Snapshot().Coverage != 0 {
		t.Errorf("Expected clean idle, got %+v", f.m.Snapshot())
	}
}

// TestResetIgnoredWhileFlipping verifies the flip is committed once started
func TestResetIgnoredWhileFlipping(t *testing.T) {
	f := newFixture(t, Heads)
	f.m.StartToss()

	if f.m.Reset() {
		t.Error("Expected reset to be ignored while flipping")
	}
	f.sched.Advance(testFlip)
	if f.m.Stage() != StageScratch {
		t.Errorf("Expected flip to complete into scratch, got %s", f.m.Stage())
	}
}

// TestStaleCallbacksIgnored verifies callbacks from a previous session are no-ops
func TestStaleCallbacksIgnored(t *testing.T) {
	f := newFixture(t, Heads)
	f.toScratch(t)
	old := f.m.Session()
	f.scratchAll(t)
	f.m.Reset()

	if f.m.Reveal(old) {
		t.Error("Expected stale reveal to be ignored")
	}
	if f.m.FlipComplete(old) {
		t.Error("Expected stale flip completion to be ignored")
	}
	if f.m.Stage() != StageIdle {
		t.Errorf("Expected idle, got %s", f.m.Stage())
	}

	// A new session in scratch ignores both a foreign id and its own unlatched reveal
	f.toScratch(t)
	if f.m.Reveal(old) || f.m.Reveal(uuid.New()) {
		t.Error("Expected foreign session reveal to be ignored")
	}
	if f.m.Reveal(f.m.Session()) {
		t.Error("Expected reveal without crossed threshold to be ignored")
	}
	if f.m.Stage() != StageScratch {
		t.Errorf("Expected scratch, got %s", f.m.Stage())
	}
	if f.reg.Counters.Get("reveal.stale_callbacks").Load() < 3 {
		t.Error("Expected stale callbacks to be counted")
	}
}

// TestRevealRearmsNextSession verifies every session reveals exactly once
func TestRevealRearmsNextSession(t *testing.T) {
	f := newFixture(t, Heads)

	for i := 0; i < 3; i++ {
		f.toScratch(t)
		f.scratchAll(t)
		f.sched.Advance(testCelebration)
		if f.m.Stage() != StageIdle {
			t.Fatalf("Cycle %d: expected idle, got %s", i, f.m.Stage())
		}
	}

	if f.cues.celebrations != 3 || f.cues.flips != 3 {
		t.Errorf("Expected 3 flips and celebrations, got %d/%d", f.cues.flips, f.cues.celebrations)
	}
	if got := f.reg.Counters.Get("reveal.sessions").Load(); got != 3 {
		t.Errorf("Expected 3 sessions, got %d", got)
	}
}

// TestFairCoin verifies both faces come up
func TestFairCoin(t *testing.T) {
	seen := map[Outcome]int{}
	for i := 0; i < 1000; i++ {
		seen[FairCoin()]++
	}
	if seen[Heads] == 0 || seen[Tails] == 0 || seen[OutcomeNone] != 0 {
		t.Errorf("Unexpected distribution: %v", seen)
	}
}

// TestSnapshotPercent verifies rounding and capping of the progress label
func TestSnapshotPercent(t *testing.T) {
	cases := []struct {
		coverage float64
		want     int
	}{
		{0, 0},
		{49.0 / 900.0, 5},
		{0.506, 51},
		{1, 100},
	}
	for _, tc := range cases {
		if got := (Snapshot{Coverage: tc.coverage}).Percent(); got != tc.want {
			t.Errorf("Percent(%f): expected %d, got %d", tc.coverage, tc.want, got)
		}
	}
}
