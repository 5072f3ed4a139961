package codebook

import (
	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
)

// Encode writes the codeword of entry to w and returns its length in bits.
//
// Ported from: vorbis_book_encode() in libvorbis lib/codebook.c
func (c *CodeBook) Encode(w *bits.Writer, entry int) (int, error) {
	if !c.forEncode {
		return 0, ErrWrongMode
	}
	if entry < 0 || entry >= c.Entries {
		return 0, errors.Wrapf(ErrEntryRange, "entry %d of %d", entry, c.Entries)
	}
	l := int(c.static.Lengths[entry])
	if l == 0 {
		return 0, errors.Wrapf(ErrUnusedEntry, "entry %d", entry)
	}
	if err := w.WriteBits(c.CodeList[entry], l); err != nil {
		return 0, err
	}
	return l, nil
}

// BestEntry finds the used entry of a lattice book closest to the integer
// vector a, subtracts that entry's point from a and returns its number.
// The lattice is assumed centered with integer min and delta. It returns
// -1, leaving a untouched, when the book has no used entry.
//
// Ported from: local_book_besterror() in libvorbis lib/res0.c
func (c *CodeBook) BestEntry(a []int) (int, error) {
	if !c.forEncode {
		return -1, ErrWrongMode
	}
	if c.static.MapType != MapLattice {
		return -1, errors.Wrapf(ErrNoValues, "maptype %d", c.static.MapType)
	}
	if len(a) != c.Dim {
		return -1, errors.Wrapf(ErrEntryRange, "vector of %d values for dim %d", len(a), c.Dim)
	}

	dim := c.Dim
	minval, del, qv := c.MinVal, c.Delta, c.QuantVals
	ze := qv >> 1
	p := make([]int, dim)
	index := 0

	for o := dim - 1; o >= 0; o-- {
		var v int
		if del != 1 {
			v = (a[o] - minval + (del >> 1)) / del
		} else {
			v = a[o] - minval
		}
		var m int
		if v < ze {
			m = ((ze - v) << 1) - 1
		} else {
			m = (v - ze) << 1
		}
		m = max(m, 0)
		m = min(m, qv-1)
		index = index*qv + m
		p[o] = v*del + minval
	}

	lengths := c.static.Lengths
	if lengths[index] == 0 {
		best := -1
		index = -1
		e := make([]int, dim)
		maxval := minval + del*(qv-1)
		for i := 0; i < c.Entries; i++ {
			if lengths[i] > 0 {
				dist := 0
				for j := 0; j < dim; j++ {
					d := e[j] - a[j]
					dist += d * d
				}
				if best == -1 || dist < best {
					copy(p, e)
					best = dist
					index = i
				}
			}

			// Step e through the lattice in the order the vq tools lay
			// out entries.
			j := 0
			for j < dim && e[j] >= maxval {
				e[j] = 0
				j++
			}
			if j == dim {
				break
			}
			if e[j] >= 0 {
				e[j] += del
			}
			e[j] = -e[j]
		}
	}

	if index > -1 {
		for i := range a {
			a[i] -= p[i]
		}
	}
	return index, nil
}
