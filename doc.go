// Package broadcastring provides a bounded, lock-free multi-producer /
// multi-consumer broadcast queue backed by a fixed-size ring buffer.
//
// # Model
//
// Producers append to a single monotonically increasing write stream by
// calling Push on a Ring (or any Cursor sharing it). Each consumer reads
// independently from its own Cursor. When producers outrun a consumer by
// more than the ring's capacity, the consumer's oldest unread slots have
// already been overwritten; the Cursor detects this and fast-forwards
// itself past the gap instead of returning stale or torn data. This
// makes the queue a lossy "latest-N" fan-out, not a reliable delivery
// channel: slow consumers drop data, they never block producers.
//
// # Thread-Safety Guarantees
//
//   - Any number of goroutines may call Push (via Ring or any Cursor)
//     concurrently.
//   - Any number of goroutines may create independent Cursors over the
//     same Ring and call Next/NextBlocking/Latest concurrently.
//   - A single Cursor value must not be driven by more than one goroutine
//     concurrently; its toRead field is unsynchronized by design, since
//     per-consumer position is never meant to be shared. Clone a Cursor
//     to hand an independent reader to another goroutine.
//
// # Performance Characteristics
//
//   - Push and Read are wait-free except for the bounded spin a producer
//     incurs when it wraps onto a slot whose previous writer has not yet
//     published (see Slot.write).
//   - Push and successful Read/Next calls allocate nothing: the ring is
//     allocated once at construction and never resized. A Read that
//     misses allocates its *ReadMiss error, and so does a Next that finds
//     no value.
//   - Cache-line padding follows the write cursor and each slot's epoch
//     word, so neighboring slots' epoch words never share a cache line.
//     The write cursor still shares a line with the Ring's read-only
//     header fields, and a slot's payload can share a line with the next
//     slot's epoch word.
//
// # Usage Example
//
//	cur := broadcastring.NewCursor[int](1024) // rounds up to a power of 2
//
//	go func() {
//	    for i := 0; i < 100; i++ {
//	        cur.Push(i)
//	    }
//	}()
//
//	for i := 0; i < 100; i++ {
//	    if v, ok := cur.Next(); ok {
//	        fmt.Println(v)
//	    }
//	}
package broadcastring
