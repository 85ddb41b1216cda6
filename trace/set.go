package trace

import "github.com/nagacharan-tangirala/disolv/sim"

// Set composes one MobilityReader per agent kind and one LinkReader per
// configured (source_kind, target_kind) pair — the unit the bucket
// actually holds and drives from its lifecycle hooks.
type Set struct {
	mobility map[sim.AgentKind]*MobilityReader
	links    map[KindPair]*LinkReader
}

func NewSet() *Set {
	return &Set{mobility: map[sim.AgentKind]*MobilityReader{}, links: map[KindPair]*LinkReader{}}
}

func (s *Set) AddMobility(kind sim.AgentKind, dir string, streaming bool, window sim.T) {
	s.mobility[kind] = NewMobilityReader(dir, streaming, window)
}

func (s *Set) AddLink(pair KindPair, dir string, streaming bool, window sim.T) {
	s.links[pair] = NewLinkReader(pair, dir, streaming, window)
}

// Kinds lists the agent kinds that have a configured mobility reader.
func (s *Set) Kinds() []sim.AgentKind {
	out := make([]sim.AgentKind, 0, len(s.mobility))
	for k := range s.mobility {
		out = append(out, k)
	}
	return out
}

// Pairs lists the (source_kind, target_kind) pairs that have a
// configured link reader.
func (s *Set) Pairs() []KindPair {
	out := make([]KindPair, 0, len(s.links))
	for p := range s.links {
		out = append(out, p)
	}
	return out
}

func (s *Set) Init(t0 sim.T) error {
	for _, r := range s.mobility {
		if err := r.Init(t0); err != nil {
			return err
		}
	}
	for _, r := range s.links {
		if err := r.Init(t0); err != nil {
			return err
		}
	}
	return nil
}

func (s *Set) Stream(t sim.T) error {
	for _, r := range s.mobility {
		if err := r.Stream(t); err != nil {
			return err
		}
	}
	for _, r := range s.links {
		if err := r.Stream(t); err != nil {
			return err
		}
	}
	return nil
}

// TakeMobility returns time t's positions for the given agent kind, or
// an empty map if that kind has no mobility file configured.
func (s *Set) TakeMobility(kind sim.AgentKind, t sim.T) map[sim.AgentId]MapState {
	r, ok := s.mobility[kind]
	if !ok {
		return map[sim.AgentId]MapState{}
	}
	return r.TakeForStep(t)
}

// TakeLinks returns time t's source→links map for the given kind pair,
// or an empty map if that pair has no link file configured.
func (s *Set) TakeLinks(pair KindPair, t sim.T) map[sim.AgentId][]Link {
	r, ok := s.links[pair]
	if !ok {
		return map[sim.AgentId][]Link{}
	}
	return r.TakeForStep(t)
}
