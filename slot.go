package broadcastring

import "sync/atomic"

// Slot is one element of a Ring. It holds a payload of type T and an
// atomic epoch word that encodes both a write-generation counter and an
// in-progress sentinel bit (see bits.go). Slots carry cache-line padding
// between the epoch word and the payload, so the epoch words of
// neighboring slots never share a cache line; a slot's payload can still
// share a line with the next slot's epoch word.
type Slot[T any] struct {
	epoch atomic.Uint64
	_     [cacheLinePad - 8]byte
	value T
}

const cacheLinePad = 64

// write runs the single-slot write protocol for a producer that has
// already reserved sequence newEpoch+index on the owning Ring. step is
// always the Ring's capacity; the slot's expected prior epoch is
// newEpoch-step.
//
// Protocol: claim the slot with a CAS from the prior epoch (sentinel
// clear) to the new epoch (sentinel set), store the payload once the
// claim succeeds, then publish with a release store of the new epoch
// (sentinel clear). A producer that loses the claim CAS because the
// previous generation's writer has not yet published spins until it
// has; this is the only place a producer can block, and it is bounded
// by the number of producers simultaneously wrapping onto this slot.
func (s *Slot[T]) write(value T, newEpoch, step uint64) {
	oldEpoch := newEpoch - step
	for !s.epoch.CompareAndSwap(oldEpoch, newEpoch|sentinelBit) {
		observed := s.epoch.Load()
		if epochPart(observed) > oldEpoch {
			logger().Warnw("slot CAS observed epoch past expected prior epoch",
				"observed", observed, "oldEpoch", oldEpoch, "newEpoch", newEpoch)
		}
	}
	s.value = value
	s.epoch.Store(newEpoch)
}

// read returns the payload without any validation. Safe only when
// bracketed by a caller's epoch checks before and after, as Ring.Read
// does.
func (s *Slot[T]) read() T {
	return s.value
}

// loadEpoch is an acquire load of the raw epoch word, sentinel included.
func (s *Slot[T]) loadEpoch() uint64 {
	return s.epoch.Load()
}
