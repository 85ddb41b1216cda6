package trace

// MobilityRowForTest and LinkRowForTest, with WriteMobilityShardForTest
// and WriteLinkShardForTest, expose the shard writer to other packages'
// tests so they can build fixture trace directories without reaching
// into trace's unexported row/codec types.
type MobilityRowForTest struct {
	TimeStep        uint64
	AgentID         uint64
	X, Y            float64
	HasZ            bool
	Z               float64
	HasVel          bool
	Vel             float64
	HasRoad         bool
	RoadID          uint64
}

type LinkRowForTest struct {
	TimeStep   uint64
	AgentID    uint64
	TargetID   uint64
	HasDist    bool
	Distance   float64
	HasLoad    bool
	LoadFactor float64
}

func WriteMobilityShardForTest(path string, rows []MobilityRowForTest) error {
	internal := make([]mobilityRow, len(rows))
	for i, r := range rows {
		internal[i] = mobilityRow(r)
	}
	return writeMobilityShard(path, internal)
}

func WriteLinkShardForTest(path string, rows []LinkRowForTest) error {
	internal := make([]linkRow, len(rows))
	for i, r := range rows {
		internal[i] = linkRow(r)
	}
	return writeLinkShard(path, internal)
}
