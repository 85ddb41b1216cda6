package agent

import (
	"strconv"

	"github.com/OneOfOne/xxhash"

	"github.com/nagacharan-tangirala/disolv/cmn/cos"
	"github.com/nagacharan-tangirala/disolv/cmn/xoshiro256"
	"github.com/nagacharan-tangirala/disolv/sim"
)

// highestRandomWeight breaks ties between candidates with otherwise
// equal selection criteria (e.g. two links at the same distance),
// deterministically and without consulting a selector's PRNG — the
// same rendezvous-hashing trick fs/hrw.go uses to pick a mountpath:
// hash each candidate's key against the query digest and keep the max.
func highestRandomWeight(queryDigest uint64, candidates []sim.AgentId) (sim.AgentId, bool) {
	var (
		best    sim.AgentId
		max     uint64
		found   bool
	)
	for _, c := range candidates {
		digest := xxhash.Checksum64(cos.UnsafeB(strconv.FormatUint(uint64(c), 10)))
		w := xoshiro256.Hash(digest ^ queryDigest)
		if !found || w > max {
			max, best, found = w, c, true
		}
	}
	return best, found
}
