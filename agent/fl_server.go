package agent

import (
	"github.com/nagacharan-tangirala/disolv/bucket"
	"github.com/nagacharan-tangirala/disolv/sim"
)

// FLServer orchestrates a federation round: it samples/selects clients,
// broadcasts the global model, waits for updates, and aggregates them.
// The aggregation algorithm itself is domain code (out of scope per
// spec.md §1); this only gates the state machine the core contract
// requires.
type FLServer struct {
	*Radio
	Machine ServerMachine

	reportsReady int
}

func NewFLServer(id sim.AgentId, class sim.AgentClass, order sim.AgentOrder, win sim.ActivationWindow, sidelinkClasses []sim.AgentClass, producer Producer) *FLServer {
	r := NewRadio(id, class, sim.KindFLServer, order, win)
	r.SidelinkClasses = sidelinkClasses
	r.Producer = producer
	s := &FLServer{Radio: r}
	s.Responder = s.onResponse
	return s
}

var _ Agent = (*FLServer)(nil)

func (s *FLServer) onResponse(_ *bucket.Bucket, _ *Radio, resp bucket.Response) {
	if sig, ok := resp.Content.(ControlSignal); ok && sig == SignalTrainingDone {
		s.reportsReady++
	}
}

func (s *FLServer) Downlink(b *bucket.Bucket) {
	s.Radio.Downlink(b)
	s.Machine.Tick()
	var sig ControlSignal
	if s.reportsReady > 0 {
		sig = SignalTrainingDone
	}
	if s.Machine.OnSignal(sig, s.reportsReady) && s.Machine.State == Sampling {
		s.reportsReady = 0
	}
	if s.Telemetry != nil {
		s.Telemetry.RecordModelEvent(b.Now(), s.id, "server", s.Machine.State.String(), sig.String())
	}
}
