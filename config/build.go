package config

import (
	"fmt"
	"hash/fnv"

	jsoniter "github.com/json-iterator/go"

	"github.com/nagacharan-tangirala/disolv/agent"
	"github.com/nagacharan-tangirala/disolv/bucket"
	"github.com/nagacharan-tangirala/disolv/cmn/xoshiro256"
	"github.com/nagacharan-tangirala/disolv/sched"
	"github.com/nagacharan-tangirala/disolv/sim"
	"github.com/nagacharan-tangirala/disolv/stats"
	"github.com/nagacharan-tangirala/disolv/trace"
)

// decodeCustom parses a NodeConfig.Custom JSON blob into a generic map
// via jsoniter, the same JSON codec the JSON file_type output sinks
// use. An empty blob decodes to a nil map, not an error — most nodes
// have no domain-specific config at all.
func decodeCustom(raw string) (map[string]any, error) {
	if raw == "" {
		return nil, nil
	}
	var m map[string]any
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(raw, &m); err != nil {
		return nil, fmt.Errorf("config: decoding custom block: %w", err)
	}
	return m, nil
}

func parseAgentKind(s string) (sim.AgentKind, error) {
	switch s {
	case "vehicle":
		return sim.KindVehicle, nil
	case "rsu":
		return sim.KindRSU, nil
	case "base_station":
		return sim.KindBaseStation, nil
	case "fl_client":
		return sim.KindFLClient, nil
	case "fl_server":
		return sim.KindFLServer, nil
	default:
		return 0, fmt.Errorf("unknown node_kind %q", s)
	}
}

func parseFileType(s string) string {
	if s == "" {
		return "msgpack"
	}
	return s
}

// modelSeed derives a per-model PRNG seed per SPEC_FULL.md §5: the
// run's top-level seed XOR an FNV hash of the model's name, so distinct
// stochastic models never share a stream even from the same seed.
func modelSeed(runSeed uint64, name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return runSeed ^ h.Sum64()
}

// buildSelector constructs one Selector for a single agent. RandomSelector
// holds a *xoshiro256.Rand, so it must never be shared across agents (two
// agents drawing from the same stream would correlate their choices) — id
// is XORed into the per-model seed so every agent in a node gets its own
// stream even though they all share runSeed and the "random-selector" name.
func buildSelector(name string, runSeed uint64, id sim.AgentId) (agent.Selector, error) {
	switch name {
	case "", "nearest":
		return agent.NearestSelector{}, nil
	case "random":
		return agent.RandomSelector{Rand: xoshiro256.NewRand(modelSeed(runSeed, "random-selector") ^ uint64(id))}, nil
	case "min_neighbors":
		return agent.MinNeighborsSelector{}, nil
	case "min_data":
		return agent.MinDataSelector{}, nil
	default:
		return nil, fmt.Errorf("unknown selector %q", name)
	}
}

func buildComposer(name string) (agent.Composer, error) {
	switch name {
	case "", "concat":
		return agent.ConcatComposer{}, nil
	case "relay":
		return agent.RelayComposer{}, nil
	default:
		return nil, fmt.Errorf("unknown composer %q", name)
	}
}

func buildActivation(a ActivationConfig) (sim.ActivationWindow, error) {
	on := make([]sim.T, len(a.On))
	off := make([]sim.T, len(a.Off))
	for i := range a.On {
		on[i] = sim.T(a.On[i])
	}
	for i := range a.Off {
		off[i] = sim.T(a.Off[i])
	}
	return sim.NewActivationWindow(on, off)
}

func classSlice(in []uint32) []sim.AgentClass {
	out := make([]sim.AgentClass, len(in))
	for i, c := range in {
		out[i] = sim.AgentClass(c)
	}
	return out
}

// Simulation bundles the scheduler and its result recorder into the
// runnable unit cmd/disolv and package ui drive.
type Simulation struct {
	Scheduler *sched.Scheduler
	Recorder  *stats.Recorder
	Duration  sim.T
	StepSize  sim.T

	agents map[sim.AgentId]agent.Agent
	custom map[sim.AgentId]map[string]any
}

// Agents exposes the constructed population keyed by id, so an
// embedding program can attach domain-specific Producer/Responder/
// Reactor callbacks before calling Run — Build only wires the
// structural fields spec.md §1 keeps in the core (class, kind, tier,
// activation, link/slice routing, selector, composer).
func (s *Simulation) Agents() map[sim.AgentId]agent.Agent { return s.agents }

// Custom returns the decoded custom JSON block (if any) a node_settings
// entry attached to this agent's id, for domain code to interpret
// however its own Producer/Composer/Selector see fit. Returns nil if
// the node carried no custom block.
func (s *Simulation) Custom(id sim.AgentId) map[string]any { return s.custom[id] }

// Build assembles a trace.Set, bucket.Bucket, stats.Recorder and
// sched.Scheduler from a validated Config, and registers every
// clients[*]/servers[*] agent with the scheduler.
func Build(cfg *Config) (*Simulation, error) {
	ts := trace.NewSet()
	for _, m := range cfg.Mobility {
		kind, err := parseAgentKind(m.Kind)
		if err != nil {
			return nil, err
		}
		ts.AddMobility(kind, m.Dir, m.Streaming, sim.T(m.Window))
	}
	for _, l := range cfg.Links {
		src, err := parseAgentKind(l.SourceKind)
		if err != nil {
			return nil, err
		}
		tgt, err := parseAgentKind(l.TargetKind)
		if err != nil {
			return nil, err
		}
		ts.AddLink(trace.KindPair{Source: src, Target: tgt}, l.Dir, l.Streaming, sim.T(l.Window))
	}

	b := bucket.New(ts)
	if cfg.FieldSettings.Width > 0 && cfg.FieldSettings.Height > 0 {
		b.EnableSpatialIndex()
	}
	for _, sl := range cfg.NetworkSettings.Slices {
		b.AddSlice(bucket.NewNetworkSlice(sl.ID, sim.Bandwidth(sl.Bandwidth), sim.Latency(sl.LatencyModel)))
	}
	for _, rt := range cfg.LinkRoutes {
		srcKind, err := parseAgentKind(rt.SourceKind)
		if err != nil {
			return nil, err
		}
		tgtKind, err := parseAgentKind(rt.TargetKind)
		if err != nil {
			return nil, err
		}
		b.RouteLinks(srcKind, sim.AgentClass(rt.TargetClass), trace.KindPair{Source: srcKind, Target: tgtKind})
	}
	b.SetStreamIntervals(sim.T(cfg.SimSettings.StreamingInterval), sim.T(cfg.OutputSettings.OutputInterval))

	batchRows := cfg.OutputSettings.BatchRows
	if batchRows <= 0 {
		batchRows = 10_000
	}
	ft, err := stats.ParseFileType(parseFileType(cfg.OutputSettings.FileType))
	if err != nil {
		return nil, err
	}
	recorder, err := stats.New(stats.Config{Dir: cfg.OutputSettings.OutputPath, FileType: ft, BatchRows: batchRows})
	if err != nil {
		return nil, err
	}
	b.SetSink(recorder)

	s := sched.New(b, sim.T(cfg.SimSettings.StepSize), sim.T(cfg.SimSettings.StreamingInterval), sim.T(cfg.OutputSettings.OutputInterval))

	agents := map[sim.AgentId]agent.Agent{}
	custom := map[sim.AgentId]map[string]any{}
	var nextID sim.AgentId = 1
	for _, nodes := range [][]NodeConfig{cfg.Clients, cfg.Servers} {
		for _, n := range nodes {
			kind, err := parseAgentKind(n.Kind)
			if err != nil {
				return nil, err
			}
			win, err := buildActivation(n.Activation)
			if err != nil {
				return nil, err
			}
			composer, err := buildComposer(n.Composer)
			if err != nil {
				return nil, err
			}
			nodeCustom, err := decodeCustom(n.Custom)
			if err != nil {
				return nil, err
			}
			for i := uint32(0); i < n.Count; i++ {
				id := nextID
				nextID++
				selector, err := buildSelector(n.Selector, cfg.SimSettings.Seed, id)
				if err != nil {
					return nil, err
				}
				a := buildAgent(id, sim.AgentClass(n.Class), n.Order, win, kind, classSlice(n.UplinkClasses), classSlice(n.SidelinkClasses), n.SliceNames, selector, composer, recorder)
				agents[id] = a
				if nodeCustom != nil {
					custom[id] = nodeCustom
				}
				s.Register(a)
			}
		}
	}

	return &Simulation{
		Scheduler: s,
		Recorder:  recorder,
		Duration:  sim.T(cfg.SimSettings.Duration),
		StepSize:  sim.T(cfg.SimSettings.StepSize),
		agents:    agents,
		custom:    custom,
	}, nil
}

// buildAgent constructs one concrete Agent variant wired with the
// structural fields Build derived from config, a no-op Producer (the
// sensing/model-update step is domain code the embedding program
// attaches via Simulation.Agents before Run, per spec.md §1), and the
// Recorder as its Telemetry sink.
func buildAgent(id sim.AgentId, class sim.AgentClass, order int32, win sim.ActivationWindow, kind sim.AgentKind, uplink, sidelink []sim.AgentClass, sliceNames []string, selector agent.Selector, composer agent.Composer, rec *stats.Recorder) agent.Agent {
	noopProducer := func(_ *bucket.Bucket, _ sim.AgentClass) []bucket.DataUnit { return nil }

	var a agent.Agent
	switch kind {
	case sim.KindVehicle:
		v := agent.NewVehicle(id, class, sim.AgentOrder(order), win, uplink, noopProducer)
		v.SidelinkClasses, v.SliceNames = sidelink, sliceNames
		v.Selector, v.Composer, v.Telemetry = selector, composer, rec
		a = v
	case sim.KindRSU:
		r := agent.NewRSU(id, class, sim.AgentOrder(order), win, uplink)
		r.SidelinkClasses, r.SliceNames = sidelink, sliceNames
		r.Selector, r.Telemetry = selector, rec
		a = r
	case sim.KindBaseStation:
		bs := agent.NewBaseStation(id, class, sim.AgentOrder(order), win, agent.AckResponder)
		bs.SidelinkClasses, bs.SliceNames = sidelink, sliceNames
		bs.Selector, bs.Composer, bs.Telemetry = selector, composer, rec
		a = bs
	case sim.KindFLClient:
		c := agent.NewFLClient(id, class, sim.AgentOrder(order), win, uplink, noopProducer)
		c.SidelinkClasses, c.SliceNames = sidelink, sliceNames
		c.Selector, c.Composer, c.Telemetry = selector, composer, rec
		a = c
	case sim.KindFLServer:
		srv := agent.NewFLServer(id, class, sim.AgentOrder(order), win, sidelink, noopProducer)
		srv.SliceNames = sliceNames
		srv.Selector, srv.Composer, srv.Telemetry = selector, composer, rec
		a = srv
	}
	return a
}
