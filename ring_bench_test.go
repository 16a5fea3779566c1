package broadcastring

import "testing"

func BenchmarkRing_Push(b *testing.B) {
	r := NewRing[int](65536)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			r.Push(42)
		}
	})
}

func BenchmarkRing_Read(b *testing.B) {
	const size = 65536
	r := NewRing[int](size)
	for i := 0; i < size; i++ {
		r.Push(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var seq uint64 = size
		for j := 0; j < size; j++ {
			if _, err := r.Read(seq); err != nil {
				b.Fatalf("unexpected miss at seq %d: %v", seq, err)
			}
			seq++
		}
	}
}

func BenchmarkCursor_Next(b *testing.B) {
	const size = 65536
	cur := NewCursor[int](size)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cur.Push(i)
		cur.Next()
	}
}
