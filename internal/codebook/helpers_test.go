package codebook

import "math/rand"

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// randomLengths returns the leaf depths of a random complete binary tree
// with the given number of leaves, in random order.
func randomLengths(rng *rand.Rand, leaves, maxLen int) []uint8 {
	depths := []int{0}
	for len(depths) < leaves {
		i := rng.Intn(len(depths))
		if depths[i] >= maxLen {
			continue
		}
		depths[i]++
		depths = append(depths, depths[i])
	}
	rng.Shuffle(len(depths), func(i, j int) {
		depths[i], depths[j] = depths[j], depths[i]
	})
	out := make([]uint8, len(depths))
	for i, d := range depths {
		out[i] = uint8(d)
	}
	return out
}

// withUnused inserts n unused entries at random positions.
func withUnused(rng *rand.Rand, lengths []uint8, n int) []uint8 {
	out := append([]uint8(nil), lengths...)
	for i := 0; i < n; i++ {
		at := rng.Intn(len(out) + 1)
		out = append(out, 0)
		copy(out[at+1:], out[at:])
		out[at] = 0
	}
	return out
}

func flatBook(lengths ...uint8) *StaticCodeBook {
	return &StaticCodeBook{Dim: 1, Entries: len(lengths), Lengths: lengths}
}

// latticeBook is a centered 2-dimensional lattice over -1, 0, 1.
func latticeBook(lengths ...uint8) *StaticCodeBook {
	return &StaticCodeBook{
		Dim:       2,
		Entries:   len(lengths),
		Lengths:   lengths,
		MapType:   MapLattice,
		QMin:      PackFloat32(-1),
		QDelta:    PackFloat32(1),
		QQuant:    2,
		QuantList: []uint32{1, 0, 2},
	}
}
