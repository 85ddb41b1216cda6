package agent

import (
	"github.com/nagacharan-tangirala/disolv/bucket"
	"github.com/nagacharan-tangirala/disolv/sim"
)

// Vehicle senses data and forwards it towards RSUs/base stations; it
// has no sidelink targets configured by default (peer-to-peer vehicle
// chatter is opt-in via SidelinkClasses).
type Vehicle struct {
	*Radio
}

func NewVehicle(id sim.AgentId, class sim.AgentClass, order sim.AgentOrder, win sim.ActivationWindow, uplinkClasses []sim.AgentClass, producer Producer) *Vehicle {
	r := NewRadio(id, class, sim.KindVehicle, order, win)
	r.UplinkClasses = uplinkClasses
	r.Producer = producer
	return &Vehicle{Radio: r}
}

var _ Agent = (*Vehicle)(nil)

// RSU is a road-side unit: a pass-through relay with no sensed data of
// its own, forwarding whatever it collected from vehicles onward to
// base stations.
type RSU struct {
	*Radio
}

func NewRSU(id sim.AgentId, class sim.AgentClass, order sim.AgentOrder, win sim.ActivationWindow, uplinkClasses []sim.AgentClass) *RSU {
	r := NewRadio(id, class, sim.KindRSU, order, win)
	r.UplinkClasses = uplinkClasses
	r.Composer = RelayComposer{}
	return &RSU{Radio: r}
}

var _ Agent = (*RSU)(nil)

// BaseStation is a terminal sink: it has no uplink targets, consumes
// everything addressed to it, and may respond via Responder.
type BaseStation struct {
	*Radio
}

func NewBaseStation(id sim.AgentId, class sim.AgentClass, order sim.AgentOrder, win sim.ActivationWindow, responder Responder) *BaseStation {
	r := NewRadio(id, class, sim.KindBaseStation, order, win)
	r.Responder = responder
	return &BaseStation{Radio: r}
}

var _ Agent = (*BaseStation)(nil)

// AckResponder is a no-op Responder: it ignores the response it is
// handed; domain packages wanting richer behavior set their own.
func AckResponder(_ *bucket.Bucket, _ *Radio, _ bucket.Response) {}
