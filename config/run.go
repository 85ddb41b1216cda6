package config

import (
	"context"

	"github.com/nagacharan-tangirala/disolv/cmn/nlog"
)

// Tick is emitted once per completed step, for a UI goroutine to render
// progress against — the Go shape of spec.md §6's CurrentTime(u64)
// message.
type Tick struct {
	Now      uint64
	Duration uint64
}

// Run drives the scheduler from t0 to Duration, one step per loop
// iteration, publishing a Tick on ticks after every step (non-blocking:
// a full channel drops the tick rather than stalling the sim, since the
// UI only needs the latest value). It returns when the clock reaches
// Duration or ctx is cancelled — the two independent termination paths
// SPEC_FULL.md §5 describes (UI-channel quit is the caller's job, via
// ctx).
func (s *Simulation) Run(ctx context.Context, ticks chan<- Tick) error {
	if err := s.Scheduler.Initialize(0); err != nil {
		return err
	}
	defer s.Scheduler.Terminate()

	for s.Scheduler.Now() < s.Duration {
		select {
		case <-ctx.Done():
			nlog.Infoln("config: run cancelled at t=", s.Scheduler.Now())
			return ctx.Err()
		default:
		}

		s.Scheduler.Activate()
		now := s.Scheduler.Trigger()

		if ticks != nil {
			select {
			case ticks <- Tick{Now: uint64(now), Duration: uint64(s.Duration)}:
			default:
			}
		}
	}
	return nil
}
