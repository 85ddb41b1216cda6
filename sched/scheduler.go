// Package sched implements the scheduler (C5): it owns the agent
// population and drives the bucket's lifecycle hooks and each active
// agent's uplink/sidelink/downlink stages, one full pass per stage per
// step, in ascending (AgentOrder, AgentId) order.
package sched

import (
	"sort"

	"github.com/nagacharan-tangirala/disolv/agent"
	"github.com/nagacharan-tangirala/disolv/bucket"
	"github.com/nagacharan-tangirala/disolv/cmn/nlog"
	"github.com/nagacharan-tangirala/disolv/sim"
)

type slot struct {
	order sim.AgentOrder
	id    sim.AgentId
}

func less(a, b slot) bool {
	if a.order != b.order {
		return a.order < b.order
	}
	return a.id < b.id
}

// Scheduler owns the complete agent population plus the active/inactive
// structures from spec.md §4.5.
type Scheduler struct {
	bucket   *bucket.Bucket
	now      sim.T
	stepSize sim.T

	streamInputEvery  sim.T
	streamOutputEvery sim.T

	agents   map[sim.AgentId]agent.Agent
	active   []slot
	inactive map[sim.AgentId]struct{}
}

func New(b *bucket.Bucket, stepSize sim.T, streamInputEvery, streamOutputEvery sim.T) *Scheduler {
	return &Scheduler{
		bucket:            b,
		stepSize:          stepSize,
		streamInputEvery:  streamInputEvery,
		streamOutputEvery: streamOutputEvery,
		agents:            map[sim.AgentId]agent.Agent{},
		inactive:          map[sim.AgentId]struct{}{},
	}
}

// Register adds an agent to the population. It does not decide
// activation — that happens in Initialize/Activate, based on the
// agent's ActivationWindow.
func (s *Scheduler) Register(a agent.Agent) { s.agents[a.ID()] = a }

func (s *Scheduler) Now() sim.T { return s.now }

// Initialize primes the bucket at t0 and moves every agent whose first
// on_time is at or before t0 into the active set.
func (s *Scheduler) Initialize(t0 sim.T) error {
	if err := s.bucket.Initialize(t0); err != nil {
		return err
	}
	s.now = t0
	for id, a := range s.agents {
		on, ok := a.Activation().FirstOn()
		if ok && on <= t0 {
			s.insertActive(slot{order: a.Order(), id: id})
		} else {
			s.inactive[id] = struct{}{}
		}
	}
	return nil
}

// Activate promotes any inactive agent whose window says it's on now.
func (s *Scheduler) Activate() {
	for id := range s.inactive {
		a := s.agents[id]
		if a.Activation().OnAt(s.now) {
			delete(s.inactive, id)
			s.insertActive(slot{order: a.Order(), id: id})
		}
	}
}

// Trigger runs one full step and returns the new clock value.
func (s *Scheduler) Trigger() sim.T {
	s.bucket.BeforeAgents(s.now)

	for _, sl := range s.active {
		s.agents[sl.id].Uplink(s.bucket)
	}
	for _, sl := range s.active {
		s.agents[sl.id].Sidelink(s.bucket)
	}
	for _, sl := range s.active {
		s.agents[sl.id].Downlink(s.bucket)
	}

	s.retireOffAgents()

	s.bucket.AfterAgents()

	prev := s.now
	s.now = s.now.Add(s.stepSize)

	if sim.CrossesBoundary(prev, s.now, s.streamInputEvery) {
		if err := s.bucket.StreamInput(s.now); err != nil {
			nlog.Errorln("sched: stream input:", err)
		}
	}
	if sim.CrossesBoundary(prev, s.now, s.streamOutputEvery) {
		s.bucket.StreamOutput(s.now)
	}
	return s.now
}

func (s *Scheduler) retireOffAgents() {
	kept := s.active[:0]
	for _, sl := range s.active {
		a := s.agents[sl.id]
		if !a.Activation().OffAt(s.now) {
			kept = append(kept, sl)
			continue
		}
		if _, ok := a.Activation().NextOn(s.now); ok {
			s.inactive[sl.id] = struct{}{}
		}
		// else: no further activation — permanently retired, dropped
		// from both active and inactive.
	}
	s.active = kept
}

// Terminate flushes and closes the bucket's sinks after the last step.
func (s *Scheduler) Terminate() { s.bucket.Terminate(s.now) }

func (s *Scheduler) insertActive(sl slot) {
	i := sort.Search(len(s.active), func(i int) bool { return less(sl, s.active[i]) || s.active[i] == sl })
	s.active = append(s.active, slot{})
	copy(s.active[i+1:], s.active[i:])
	s.active[i] = sl
}
