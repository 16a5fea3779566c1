package broadcastring

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// TestConcurrency_SingleProducerMultiConsumer runs one producer pushing
// in a tight loop against N consumers draining in tight loops. Every
// value any consumer sees must be a value that was actually pushed, and
// no consumer goroutine may return an error (which would mean it read a
// value outside the pushed range).
func TestConcurrency_SingleProducerMultiConsumer(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}

	const (
		capacity    = 256
		totalPushes = 50_000
		consumers   = 15
	)

	ring := NewRing[int](capacity)
	var producerDone atomic.Bool

	group, ctx := errgroup.WithContext(context.Background())

	group.Go(func() error {
		defer producerDone.Store(true)
		for i := 0; i < totalPushes; i++ {
			ring.Push(i)
		}
		return nil
	})

	for n := 0; n < consumers; n++ {
		cur := ring.NewCursor()
		group.Go(func() error {
			for {
				if v, ok := cur.Next(); ok {
					if v < 0 || v >= totalPushes {
						return errUnexpectedValue(v)
					}
					continue
				}
				if producerDone.Load() {
					return nil
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
			}
		})
	}

	require.NoError(t, group.Wait())
}

type errUnexpectedValue int

func (e errUnexpectedValue) Error() string {
	return "unexpected value observed by consumer"
}

// TestConcurrency_MultiProducerUniqueReservation exercises many
// producers racing Push concurrently: each must get a distinct,
// never-reused sequence number.
func TestConcurrency_MultiProducerUniqueReservation(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}

	const (
		capacity      = 64
		producers     = 32
		pushesEach    = 2000
		totalExpected = producers * pushesEach
	)

	ring := NewRing[int](capacity)
	seen := make([]atomic.Bool, capacity+totalExpected+1)

	group, _ := errgroup.WithContext(context.Background())
	for p := 0; p < producers; p++ {
		group.Go(func() error {
			for i := 0; i < pushesEach; i++ {
				seq := ring.Push(p)
				if seq >= uint64(len(seen)) {
					return errUnexpectedValue(int(seq))
				}
				if !seen[seq].CompareAndSwap(false, true) {
					return errUnexpectedValue(int(seq))
				}
			}
			return nil
		})
	}

	require.NoError(t, group.Wait())
	require.Equal(t, uint64(capacity+totalExpected), ring.writePtr.Load())
}
