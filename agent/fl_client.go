package agent

import (
	"github.com/nagacharan-tangirala/disolv/bucket"
	"github.com/nagacharan-tangirala/disolv/sim"
)

// FLClient is a Vehicle-shaped participant in a federated-learning
// round, additionally stepping a ClientMachine off control messages
// received from its server.
type FLClient struct {
	*Radio
	Machine ClientMachine
}

func NewFLClient(id sim.AgentId, class sim.AgentClass, order sim.AgentOrder, win sim.ActivationWindow, uplinkClasses []sim.AgentClass, producer Producer) *FLClient {
	r := NewRadio(id, class, sim.KindFLClient, order, win)
	r.UplinkClasses = uplinkClasses
	r.Producer = producer
	c := &FLClient{Radio: r}
	c.Responder = c.onResponse
	return c
}

var _ Agent = (*FLClient)(nil)

func (c *FLClient) onResponse(_ *bucket.Bucket, _ *Radio, resp bucket.Response) {
	sig, _ := resp.Content.(ControlSignal)
	c.Machine.OnSignal(sig)
}

func (c *FLClient) Downlink(b *bucket.Bucket) {
	c.Radio.Downlink(b)
	c.Machine.Tick()
	if c.Telemetry != nil {
		c.Telemetry.RecordModelEvent(b.Now(), c.id, "client", c.Machine.State.String(), "")
	}
}

// ReadyToSense reports whether the client's Producer should be invoked
// this step — only while Sensing or Training, per spec.md §4.4's state
// gating of the uplink/downlink contract.
func (c *FLClient) ReadyToSense() bool {
	return c.Machine.State == Sensing || c.Machine.State == Training
}
