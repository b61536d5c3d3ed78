package lsm

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lsmkv/lsmcore/memtable"
	"github.com/lsmkv/lsmcore/metrics"
)

// Inner is the engine's mutable core: a freeze-swappable State plus the
// bookkeeping needed to allocate memtable ids and serialize freezes.
//
// Two locks cover two different things. stateMu guards only the act of
// reading or replacing the *State pointer — readers take it for the length
// of a single pointer load, never across a Get or a Scan. stateLock is the
// source's state_lock: it serializes the decide-to-freeze sequence itself,
// so two writers racing past the same size threshold cannot both freeze.
// The source's force_freeze_memtable drops state_lock before re-checking
// whether a freeze is still needed and before performing the swap, which
// lets two callers both observe "not yet frozen" and both freeze — producing
// two frozen memtables from one size crossing. Inner holds stateLock across
// both the re-check and the swap to rule that race out.
type Inner struct {
	stateMu sync.RWMutex
	state   *State

	stateLock sync.Mutex

	options Options
	nextID  atomic.Uint64
	metrics *metrics.Registry
}

// Open constructs an Inner with a single empty, writable memtable.
func Open(options Options, reg *metrics.Registry) *Inner {
	in := &Inner{options: options, metrics: reg}
	in.state = newState(memtable.Create(in.allocMemtableID()))
	return in
}

func (in *Inner) allocMemtableID() uint64 {
	return in.nextID.Add(1)
}

// snapshot loads the current State under stateMu. The returned pointer is
// immutable from the caller's point of view: a concurrent freeze publishes
// a new State rather than mutating this one.
func (in *Inner) snapshot() *State {
	in.stateMu.RLock()
	defer in.stateMu.RUnlock()
	return in.state
}

func (in *Inner) publish(next *State) {
	in.stateMu.Lock()
	in.state = next
	in.stateMu.Unlock()
}

// Get looks up key against the active memtable, then each frozen memtable
// from newest to oldest. A tombstone (empty stored value) at any level
// shadows older entries and is reported as not found.
func (in *Inner) Get(key []byte) ([]byte, bool) {
	start := time.Now()
	defer in.observeGet(start)

	if len(key) == 0 {
		return nil, false
	}

	snap := in.snapshot()

	if v, ok := snap.MemTable.Get(key); ok {
		return tombstoneToNotFound(v)
	}
	for _, mt := range snap.ImmMemtables {
		if v, ok := mt.Get(key); ok {
			return tombstoneToNotFound(v)
		}
	}
	return nil, false
}

func tombstoneToNotFound(v []byte) ([]byte, bool) {
	if len(v) == 0 {
		return nil, false
	}
	return v, true
}

func (in *Inner) observeGet(start time.Time) {
	if in.metrics == nil {
		return
	}
	in.metrics.GetDuration.Observe(time.Since(start).Seconds())
}

// put writes key/value into the active memtable, then checks whether the
// memtable has grown past the freeze threshold. It does no validation of
// its own: WriteBatch rejects empty keys and empty Put values before
// calling it, and passes an empty value for a Delete's tombstone.
func (in *Inner) put(key, value []byte) {
	snap := in.snapshot()
	snap.MemTable.Put(key, value)

	size := snap.MemTable.ApproximateSize()
	if in.metrics != nil {
		in.metrics.ObserveMemTableSize(size)
	}

	in.tryFreeze(size)
}

// tryFreeze freezes the active memtable once its approximate size reaches
// options.TargetSSTSize. The size check that gates entry is deliberately
// racy and cheap (no lock): it only needs to decide whether a freeze is
// worth attempting. Once inside, stateLock is held across the authoritative
// re-check and the swap, so only one caller ever performs the freeze for a
// given size crossing.
func (in *Inner) tryFreeze(approximateSize uint64) {
	if approximateSize < in.options.TargetSSTSize {
		return
	}

	in.stateLock.Lock()
	defer in.stateLock.Unlock()

	if in.snapshot().MemTable.ApproximateSize() < in.options.TargetSSTSize {
		return
	}

	in.forceFreezeMemtableLocked()
}

// ForceFreeze unconditionally freezes the active memtable, regardless of
// its current size. Exported for callers (tests, administrative tooling)
// that need a freeze point deterministically rather than waiting on size.
func (in *Inner) ForceFreeze() {
	in.stateLock.Lock()
	defer in.stateLock.Unlock()
	in.forceFreezeMemtableLocked()
}

// forceFreezeMemtableLocked performs the freeze swap. Callers must hold
// stateLock.
func (in *Inner) forceFreezeMemtableLocked() {
	next := memtable.Create(in.allocMemtableID())
	in.publish(in.snapshot().withFrozen(next))

	if in.metrics != nil {
		in.metrics.IncFreeze()
	}
}
