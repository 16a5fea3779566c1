package broadcastring

// Cursor is a consumer's independent read position against a shared
// Ring. Creating a Cursor does not copy or allocate ring storage: many
// Cursors can read the same Ring concurrently, each maintaining its own
// toRead position.
//
// A Cursor value must only be driven by one goroutine at a time; Clone
// it to hand an independent reader to another goroutine.
type Cursor[T any] struct {
	ring   *Ring[T]
	toRead uint64
}

// NewCursor creates a Ring of the given requested capacity (rounded up
// to a power of two, per NewRing) and returns the first Cursor over it.
// Additional Cursors are obtained via Clone or Ring.NewCursor, both
// cheap shared-ownership operations.
func NewCursor[T any](requestedCapacity uint64, opts ...Option) *Cursor[T] {
	return NewRing[T](requestedCapacity, opts...).NewCursor()
}

// Size returns the capacity of the underlying Ring.
func (c *Cursor[T]) Size() uint64 {
	return c.ring.Size()
}

// Push appends value to the shared ring. Any Cursor may produce; pushing
// does not affect this Cursor's own read position.
func (c *Cursor[T]) Push(value T) uint64 {
	return c.ring.Push(value)
}

// Clone returns a new Cursor sharing this Cursor's Ring, starting at the
// same read position. The two Cursors then advance independently.
func (c *Cursor[T]) Clone() *Cursor[T] {
	return &Cursor[T]{ring: c.ring, toRead: c.toRead}
}

// Next returns the next unread value and true, or the zero value and
// false if none is available right now. "Not available" covers two
// distinct cases collapsed into a single boolean: either no producer
// has reached this Cursor's position yet, or producers have lapped it
// so badly that CatchUp could not recover within the exponential margin
// budget. Both are silent; overrun is lossy by contract.
//
// On overrun, Next fast-forwards the Cursor via CatchUp with a margin
// that doubles on each retry, trading more dropped values for a lower
// chance of being immediately overrun again on a fast write stream.
func (c *Cursor[T]) Next() (T, bool) {
	margin := uint64(1)
	capacity := c.ring.Size()

	for margin < capacity {
		v, err := c.ring.Read(c.toRead)
		if err == nil {
			c.toRead++
			return v, true
		}

		miss := err.(*ReadMiss)
		expected := c.ring.epochOf(c.toRead)
		if miss.Sentinel() || miss.ObservedEpoch() <= expected {
			var zero T
			return zero, false
		}

		c.ring.metrics.recordOverrun()
		logger().Debugw("cursor overrun, catching up",
			"toRead", c.toRead, "observedEpoch", miss.ObservedEpoch(), "margin", margin)
		c.CatchUp(margin)
		margin *= 2
	}

	var zero T
	return zero, false
}

// CatchUp fast-forwards the Cursor to writePtr-capacity+margin, the
// oldest slot currently in the ring plus margin slots of head-room.
// margin must satisfy 1 <= margin < capacity; Next maintains this
// itself, but a caller driving CatchUp directly is responsible for it.
func (c *Cursor[T]) CatchUp(margin uint64) {
	capacity := c.ring.Size()
	if margin < 1 || margin >= capacity {
		panic("broadcastring: catch-up margin must be >= 1 and < capacity")
	}
	wp := c.ring.writePtr.Load()
	c.toRead = wp - capacity + margin
	c.ring.metrics.recordCatchUp()
}

// NextBlocking spins on Next until it returns a value.
func (c *Cursor[T]) NextBlocking() T {
	for {
		if v, ok := c.Next(); ok {
			return v
		}
	}
}

// Latest returns the newest value visible at the time of the call. It
// requires that the Ring has had at least one successful Push; if not,
// it returns the zero value and false rather than blocking or
// corrupting the Cursor's state.
func (c *Cursor[T]) Latest() (T, bool) {
	return c.ring.ReadLatest()
}
