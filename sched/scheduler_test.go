package sched

import (
	"strconv"
	"testing"

	"github.com/nagacharan-tangirala/disolv/bucket"
	"github.com/nagacharan-tangirala/disolv/sim"
	"github.com/nagacharan-tangirala/disolv/trace"
)

type fakeAgent struct {
	id    sim.AgentId
	order sim.AgentOrder
	win   sim.ActivationWindow
	log   *[]string
}

func (a *fakeAgent) ID() sim.AgentId                  { return a.id }
func (a *fakeAgent) Class() sim.AgentClass            { return 0 }
func (a *fakeAgent) Kind() sim.AgentKind              { return sim.KindVehicle }
func (a *fakeAgent) Order() sim.AgentOrder            { return a.order }
func (a *fakeAgent) Activation() sim.ActivationWindow { return a.win }
func (a *fakeAgent) IsStopped() bool                  { return false }
func (a *fakeAgent) Uplink(*bucket.Bucket)            { a.record("up") }
func (a *fakeAgent) Sidelink(*bucket.Bucket)          { a.record("side") }
func (a *fakeAgent) Downlink(*bucket.Bucket)          { a.record("down") }

func (a *fakeAgent) record(stage string) {
	*a.log = append(*a.log, stage+":"+strconv.Itoa(int(a.id)))
}

func alwaysOnWindow(t *testing.T) sim.ActivationWindow {
	t.Helper()
	w, err := sim.NewActivationWindow([]sim.T{0}, []sim.T{sim.MaxT})
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	return w
}

// TestSchedulerTierOrdering is spec.md §8 scenario 3: all uplinks across
// all active agents run before any sidelink, which runs before any
// downlink, so a later-tier agent can consume an earlier-tier agent's
// payload within the same step.
func TestSchedulerTierOrdering(t *testing.T) {
	var log []string
	b := bucket.New(trace.NewSet())
	s := New(b, 100, 0, 0)

	low := &fakeAgent{id: 1, order: 0, win: alwaysOnWindow(t), log: &log}
	high := &fakeAgent{id: 2, order: 1, win: alwaysOnWindow(t), log: &log}
	s.Register(low)
	s.Register(high)

	if err := s.Initialize(0); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	s.Activate()
	s.Trigger()

	want := []string{"up:1", "up:2", "side:1", "side:2", "down:1", "down:2"}
	if len(log) != len(want) {
		t.Fatalf("expected %d recorded calls, got %d: %v", len(want), len(log), log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("call %d: expected %s, got %s (full log: %v)", i, want[i], log[i], log)
		}
	}
}

func TestSchedulerClockAdvancesBySteps(t *testing.T) {
	b := bucket.New(trace.NewSet())
	s := New(b, 100, 0, 0)
	if err := s.Initialize(0); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	got := s.Trigger()
	if got != 100 {
		t.Fatalf("expected clock at 100 after one trigger, got %d", got)
	}
	got = s.Trigger()
	if got != 200 {
		t.Fatalf("expected clock at 200 after two triggers, got %d", got)
	}
}

func TestSchedulerRetiresAgentPastItsOffTime(t *testing.T) {
	var log []string
	b := bucket.New(trace.NewSet())
	s := New(b, 100, 0, 0)

	win, err := sim.NewActivationWindow([]sim.T{0}, []sim.T{100})
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	a := &fakeAgent{id: 1, order: 0, win: win, log: &log}
	s.Register(a)
	if err := s.Initialize(0); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	s.Trigger() // now: 0 -> 100; off_time (100) != now (0) yet, agent stays active
	if len(s.active) != 1 {
		t.Fatalf("expected agent still active one step before its off_time, active=%v", s.active)
	}

	s.Trigger() // now: 100 -> 200; off_time (100) == now (100), agent retires
	if len(s.active) != 0 {
		t.Fatalf("expected agent retired at its off_time, active=%v", s.active)
	}
	if _, stillInactive := s.inactive[1]; stillInactive {
		t.Fatalf("expected agent with no further on_time to be fully discarded, not reinserted to inactive")
	}
}

func TestSchedulerReactivatesAgentWithFutureWindow(t *testing.T) {
	var log []string
	b := bucket.New(trace.NewSet())
	s := New(b, 100, 0, 0)

	win, err := sim.NewActivationWindow([]sim.T{0, 300}, []sim.T{100, 400})
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	a := &fakeAgent{id: 1, order: 0, win: win, log: &log}
	s.Register(a)
	if err := s.Initialize(0); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	s.Trigger() // t: 0 -> 100; off_time (100) != now (0) yet, agent stays active
	s.Trigger() // t: 100 -> 200; off_time (100) == now (100), agent parks inactive awaiting its next on_time (300)
	if _, ok := s.inactive[1]; !ok {
		t.Fatalf("expected agent to be parked inactive awaiting its next on_time")
	}

	for s.now < 300 {
		s.Activate()
		s.Trigger()
	}
	s.Activate()
	if len(s.active) != 1 {
		t.Fatalf("expected agent reactivated at t=300, active=%v", s.active)
	}
}
