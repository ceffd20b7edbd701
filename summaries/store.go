// Package summaries stores per-procedure analysis summaries: the
// non-negative loop-bound estimates a completed procedure analysis leaves
// behind and that callers read back at call sites.
//
// Reads return a consistent immutable snapshot of a previously completed
// summary, or absence if none exists yet; the store is safe for use by
// parallel procedure analyses. Snapshots of the whole store can be
// persisted and reloaded as CBOR for cross-run reuse.
package summaries

import (
	"sync"

	"golang.org/x/exp/slices"

	"github.com/tetramorph/overrun/bounds"
	"github.com/tetramorph/overrun/internal/log"
	"github.com/tetramorph/overrun/loc"
)

// A LoopBound is one loop's iteration-count estimate within a procedure.
type LoopBound struct {
	Loop  loc.Loc
	Bound bounds.NonNegativeBound
}

// A Summary is the persisted result of analyzing one procedure. Summaries
// are immutable once stored.
type Summary struct {
	Proc       string
	LoopBounds []LoopBound
}

// Total folds a summary's loop bounds into a single estimate by joining
// them, the value downstream cost reporting starts from.
func (s Summary) Total(at loc.Loc) bounds.NonNegativeBound {
	total := bounds.NonNegZero(at)
	for _, lb := range s.LoopBounds {
		total = total.Join(lb.Bound)
	}
	return total
}

type Store struct {
	mu sync.RWMutex
	m  map[string]Summary
}

func NewStore() *Store {
	return &Store{m: map[string]Summary{}}
}

// Put records the completed summary for a procedure, replacing any
// previous one.
func (st *Store) Put(s Summary) {
	st.mu.Lock()
	st.m[s.Proc] = s
	st.mu.Unlock()
	logger := log.Logger("summaries")
	logger.Debug().
		Str("proc", s.Proc).
		Int("loop_bounds", len(s.LoopBounds)).
		Msg("summary stored")
}

// Get returns the summary for proc, or absence if none has been completed
// yet. Summaries are immutable, so the returned value needs no copying.
func (st *Store) Get(proc string) (Summary, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.m[proc]
	return s, ok
}

// Procs lists the procedures with a completed summary, sorted.
func (st *Store) Procs() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.procsLocked()
}

func (st *Store) procsLocked() []string {
	procs := make([]string, 0, len(st.m))
	for p := range st.m {
		procs = append(procs, p)
	}
	slices.Sort(procs)
	return procs
}
