package codebook

import "github.com/pkg/errors"

// makeWords assigns canonical Huffman codewords to a length list and
// returns them bit-reversed for LSB-first packing.
//
// marker[l] holds the next free codeword of length l. With sparsecount 0
// the result has one slot per entry (unused entries get 0); otherwise it
// holds only the codewords of used entries, in entry order.
//
// Ported from: _make_words() in libvorbis lib/sharedbook.c
func makeWords(lengths []uint8, sparsecount int) ([]uint32, error) {
	var marker [33]uint32
	size := len(lengths)
	if sparsecount != 0 {
		size = sparsecount
	}
	words := make([]uint32, size)

	count := 0
	for i, l := range lengths {
		length := int(l)
		if length == 0 {
			if sparsecount == 0 {
				count++
			}
			continue
		}

		entry := marker[length]
		if length < 32 && entry>>length != 0 {
			return nil, errors.Wrapf(ErrOverpopulated, "entry %d of length %d", i, length)
		}
		if count >= size {
			return nil, errors.Wrapf(ErrOverpopulated, "more than %d used entries", size)
		}
		words[count] = entry
		count++

		// Walk up until a marker whose node pair is not yet full; the
		// markers above it already moved on an earlier entry.
		for j := length; j > 0; j-- {
			if marker[j]&1 != 0 {
				if j == 1 {
					marker[1]++
				} else {
					marker[j] = marker[j-1] << 1
				}
				break
			}
			marker[j]++
		}

		// Longer markers hung below the node just taken; move them under
		// the new one.
		for j := length + 1; j < 33; j++ {
			if marker[j]>>1 != entry {
				break
			}
			entry = marker[j]
			marker[j] = marker[j-1] << 1
		}
	}

	// A single codeword of length 1 leaves half the tree empty and is the
	// one underpopulated shape the format allows.
	if !(count == 1 && marker[2] == 2) {
		for i := 1; i < 33; i++ {
			if marker[i]&(0xffffffff>>(32-i)) != 0 {
				return nil, errors.Wrapf(ErrUnderpopulated, "free codeword at length %d", i)
			}
		}
	}

	count = 0
	for _, l := range lengths {
		if l == 0 {
			if sparsecount == 0 {
				count++
			}
			continue
		}
		var rev uint32
		w := words[count]
		for j := 0; j < int(l); j++ {
			rev = rev<<1 | (w>>j)&1
		}
		words[count] = rev
		count++
	}
	return words, nil
}
