package broadcastring

// sentinelBit is the top bit of a Slot's epoch word. It is set for the
// duration between a writer's CAS claim and its release publish, and
// distinguishes "mid-write for the next generation" from "completed
// next generation" without a second atomic.
const sentinelBit = uint64(1) << 63

// maxLifetimeWrites bounds the number of pushes a single Ring may ever
// accept. Only 63 bits of the epoch word encode generation; past this
// bound a generation counter collides with sentinelBit and correctness
// is lost.
func maxLifetimeWrites(capacity uint64) uint64 {
	return sentinelBit - capacity
}

// epochPart strips the sentinel bit, returning the raw generation value.
func epochPart(word uint64) uint64 {
	return word &^ sentinelBit
}

// inProgress reports whether word carries an in-progress write.
func inProgress(word uint64) bool {
	return word&sentinelBit != 0
}

// roundUpPowerOfTwo returns the smallest power of two >= n, with a floor
// of 1 (n == 0 is treated as 1, same as n == 1).
func roundUpPowerOfTwo(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}
