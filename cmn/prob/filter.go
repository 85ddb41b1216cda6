// Package prob implements a probabilistic, approximately-de-duplicating
// set backed by a cuckoo filter, for cheap "have I seen this key before"
// tests without keeping every key in memory. No other package of this
// module uses it yet.
package prob

import (
	cuckoo "github.com/seiflotfy/cuckoofilter"

	"github.com/nagacharan-tangirala/disolv/cmn/cos"
)

// Filter wraps a cuckoo filter sized for an expected number of entries.
// False positives are possible (an item reported present that was never
// inserted); false negatives are not. Callers that need an exact answer
// must combine a Filter hit with a confirming lookup in authoritative
// state.
type Filter struct {
	cf       *cuckoo.Filter
	capacity uint
}

// NewDefaultFilter sizes the filter for a population on the order of a
// single simulation step's agent count; NewFilter allows sizing for the
// full run (e.g. total distinct payload ids expected).
func NewDefaultFilter() *Filter { return NewFilter(4 * 1024) }

func NewFilter(capacity uint) *Filter {
	return &Filter{cf: cuckoo.NewFilter(capacity), capacity: capacity}
}

func (f *Filter) Insert(key string) bool { return f.cf.InsertUnique(cos.UnsafeB(key)) }
func (f *Filter) Lookup(key string) bool { return f.cf.Lookup(cos.UnsafeB(key)) }
func (f *Filter) Delete(key string) bool { return f.cf.Delete(cos.UnsafeB(key)) }
func (f *Filter) Count() uint            { return f.cf.Count() }

// Reset discards all entries, used between simulation steps so the filter
// only ever answers "seen this step" rather than "seen ever".
func (f *Filter) Reset() { f.cf = cuckoo.NewFilter(f.capacity) }
