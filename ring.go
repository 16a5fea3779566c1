package broadcastring

import (
	"fmt"
	"sync/atomic"
)

// Ring is a fixed-capacity, multi-producer broadcast buffer. Its
// capacity is always a power of two; a requested capacity is rounded up
// to the next one. A Ring is allocated once and never resized or freed
// mid-use: slots are allocated once at construction and never freed or
// reallocated individually.
//
// The zero value is not usable; construct with NewRing or NewCursor.
type Ring[T any] struct {
	slots    []Slot[T]
	mask     uint64
	capacity uint64

	writePtr atomic.Uint64
	_        [cacheLinePad - 8]byte

	metrics *Metrics
}

// NewRing creates a Ring able to hold requestedCapacity values, rounded
// up to the next power of two. It panics if requestedCapacity is zero:
// a zero capacity is a programmer error, not a runtime condition a
// caller should have to handle.
func NewRing[T any](requestedCapacity uint64, opts ...Option) *Ring[T] {
	if requestedCapacity == 0 {
		panic("broadcastring: requested capacity must be positive")
	}

	cfg := ringConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	capacity := roundUpPowerOfTwo(requestedCapacity)
	r := &Ring[T]{
		slots:    make([]Slot[T], capacity),
		mask:     capacity - 1,
		capacity: capacity,
		metrics:  cfg.metrics,
	}
	// The first write has epoch == capacity ("generation 1"); epoch 0 is
	// reserved for "never written" and is never produced by a real push.
	r.writePtr.Store(capacity)
	return r
}

// Size returns the Ring's actual capacity (the requested capacity
// rounded up to a power of two).
func (r *Ring[T]) Size() uint64 {
	return r.capacity
}

// epochOf returns the epoch component of seq: seq with its low
// index bits (seq & mask) cleared.
func (r *Ring[T]) epochOf(seq uint64) uint64 {
	return seq &^ r.mask
}

// Push reserves the next sequence number, writes value into the
// corresponding slot, and returns the reserved sequence. It never
// blocks except for the Slot-level spin documented on Slot.write, and
// it never fails: when the ring is full the oldest unread slot is
// simply overwritten.
func (r *Ring[T]) Push(value T) uint64 {
	seq := r.writePtr.Add(1) - 1

	if n := seq - r.capacity; n >= maxLifetimeWrites(r.capacity) {
		logger().Errorw("ring write lifetime limit reached",
			"sequence", seq, "capacity", r.capacity)
		r.metrics.recordLifetimeWarning()
	}

	idx := seq & r.mask
	newEpoch := r.epochOf(seq)
	r.slots[idx].write(value, newEpoch, r.capacity)

	r.metrics.recordPush()
	return seq
}

// ReadMiss is returned by Read when no valid value is available at the
// requested sequence. It carries the raw epoch word observed on the
// slot so callers (principally Cursor) can distinguish "not yet
// published" from "overrun" without a second atomic load.
type ReadMiss struct {
	Seq      uint64
	Observed uint64
}

func (e *ReadMiss) Error() string {
	return fmt.Sprintf("broadcastring: no valid value at sequence %d (observed epoch word %#x)", e.Seq, e.Observed)
}

// Sentinel reports whether the observed slot was mid-write when sampled.
func (e *ReadMiss) Sentinel() bool {
	return inProgress(e.Observed)
}

// ObservedEpoch is the generation component of the observed epoch word,
// sentinel bit excluded.
func (e *ReadMiss) ObservedEpoch() uint64 {
	return epochPart(e.Observed)
}

// Read is the non-blocking primitive: it returns the value published at
// seq, or a *ReadMiss describing why none was available (the slot has
// not reached this generation yet, is mid-write, or has already been
// overwritten by a later generation).
//
// seq must be >= capacity: sequences below that are the "generation 0,
// never written" state and would alias a genuinely unwritten slot as a
// successful read of its zero value. Cursor.Next stays at or above this
// floor on its own; a direct Cursor.CatchUp(margin) made before
// capacity-margin pushes moves the Cursor below it, and a caller driving
// Read directly is responsible for the same precondition.
func (r *Ring[T]) Read(seq uint64) (T, error) {
	var zero T
	idx := seq & r.mask
	expected := r.epochOf(seq)
	slot := &r.slots[idx]

	e1 := slot.loadEpoch()
	if e1 != expected {
		r.recordMiss(e1, expected)
		return zero, &ReadMiss{Seq: seq, Observed: e1}
	}

	value := slot.read()

	e2 := slot.loadEpoch()
	if e2 != expected {
		r.recordMiss(e2, expected)
		return zero, &ReadMiss{Seq: seq, Observed: e2}
	}

	return value, nil
}

func (r *Ring[T]) recordMiss(observed, expected uint64) {
	if inProgress(observed) || epochPart(observed) <= expected {
		r.metrics.recordReadMiss(missReasonNotYetPublished)
		return
	}
	r.metrics.recordReadMiss(missReasonOverrun)
}

// TryReadLatest returns the newest published value and true, or the
// zero value and false if the newest reservation has not yet completed
// its publish.
func (r *Ring[T]) TryReadLatest() (T, bool) {
	cur := r.writePtr.Load()
	if cur <= r.capacity {
		var zero T
		return zero, false
	}
	v, err := r.Read(cur - 1)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// ReadLatest returns the newest completed value visible at the time of
// the call, walking backward from the current write pointer until it
// finds a published slot. It does not re-sample the write pointer, so
// it reflects a single point in time even if producers continue to push
// during the call.
//
// The backward walk is gated at seq >= capacity (the first sequence a
// completed write can ever occupy): on a Ring that has never had a
// successful push this returns false instead of decrementing seq past
// zero and wrapping around to garbage.
func (r *Ring[T]) ReadLatest() (T, bool) {
	cur := r.writePtr.Load()
	for seq := cur - 1; seq >= r.capacity; seq-- {
		if v, err := r.Read(seq); err == nil {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// ReadLatestBlocking fixes seq at the newest reservation (the write
// pointer observed on entry, minus one) and spins on Read(seq) until it
// publishes. It does not chase writes that start after entry. It has no
// empty-ring gate: on a Ring that has never been pushed to, seq is
// capacity-1, a generation-0 sequence, and the zero value is returned at
// once.
func (r *Ring[T]) ReadLatestBlocking() T {
	cur := r.writePtr.Load()
	seq := cur - 1
	for {
		if v, err := r.Read(seq); err == nil {
			return v
		}
	}
}

// NewCursor creates a new Cursor reading this Ring from the oldest
// sequence a completed write can occupy. Any number of independent
// Cursors may be created over the same Ring; producers and consumers
// never need to coordinate beyond the Ring itself.
func (r *Ring[T]) NewCursor() *Cursor[T] {
	return &Cursor[T]{ring: r, toRead: r.capacity}
}
