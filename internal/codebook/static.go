// Package codebook implements Vorbis codebooks: the static wire form
// carried in the setup header and the runtime books derived from it for
// encoding and decoding entries.
package codebook

import (
	"math"

	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
)

// syncPattern opens every packed codebook ("BCV" read LSB-first).
const syncPattern = 0x564342

// Value mapping types.
const (
	MapNone     = 0 // entries carry no vector
	MapLattice  = 1 // vectors implied by a quantvals^dim lattice
	MapExplicit = 2 // one quantized value per entry and dimension
)

// Field limits of the wire format.
const (
	maxDim      = 1<<16 - 1
	maxEntries  = 1<<24 - 1
	maxCodeLen  = 32
	maxQuantBit = 16
)

// StaticCodeBook is a codebook as carried in the setup header. It is
// immutable once loaded or built from a template.
type StaticCodeBook struct {
	Dim     int
	Entries int

	// Lengths holds the codeword length of each entry; 0 marks an unused entry.
	Lengths []uint8

	MapType int

	// QMin and QDelta are raw codebook float patterns, see UnpackFloat32.
	QMin       uint32
	QDelta     uint32
	QQuant     int // bits per quantized value, 1..16
	QSequenceP bool
	QuantList  []uint32
}

// Load reads one codebook from r.
//
// Ported from: vorbis_staticbook_unpack() in libvorbis lib/codebook.c
func Load(r *bits.Reader) (*StaticCodeBook, error) {
	sync, err := r.GetBits(24)
	if err != nil {
		return nil, err
	}
	if sync != syncPattern {
		return nil, errors.Wrapf(ErrSyncPattern, "got 0x%06x", sync)
	}

	dim, err := r.GetBits(16)
	if err != nil {
		return nil, err
	}
	entries, err := r.GetBits(24)
	if err != nil {
		return nil, err
	}
	if bits.Ilog(dim)+bits.Ilog(entries) > 24 {
		return nil, errors.Wrapf(ErrDimensions, "dim %d entries %d", dim, entries)
	}

	b := &StaticCodeBook{
		Dim:     int(dim),
		Entries: int(entries),
		Lengths: make([]uint8, entries),
	}

	ordered, err := r.GetFlag()
	if err != nil {
		return nil, err
	}
	if ordered {
		err = b.loadOrdered(r)
	} else {
		err = b.loadUnordered(r)
	}
	if err != nil {
		return nil, err
	}

	mt, err := r.GetBits(4)
	if err != nil {
		return nil, err
	}
	b.MapType = int(mt)
	switch b.MapType {
	case MapNone:
	case MapLattice, MapExplicit:
		if err := b.loadQuant(r); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(ErrMapType, "maptype %d", b.MapType)
	}
	return b, nil
}

func (b *StaticCodeBook) loadUnordered(r *bits.Reader) error {
	sparse, err := r.GetFlag()
	if err != nil {
		return err
	}
	if !sparse {
		if b.Entries*5 > r.BitsLeft() {
			return errors.Wrapf(bits.ErrUnexpectedEOF, "codebook: %d lengths", b.Entries)
		}
		for i := range b.Lengths {
			l, _ := r.GetBits(5)
			b.Lengths[i] = uint8(l + 1)
		}
		return nil
	}

	if b.Entries > r.BitsLeft() {
		return errors.Wrapf(bits.ErrUnexpectedEOF, "codebook: %d sparse lengths", b.Entries)
	}
	for i := range b.Lengths {
		used, err := r.GetFlag()
		if err != nil {
			return err
		}
		if !used {
			continue
		}
		l, err := r.GetBits(5)
		if err != nil {
			return err
		}
		b.Lengths[i] = uint8(l + 1)
	}
	return nil
}

func (b *StaticCodeBook) loadOrdered(r *bits.Reader) error {
	l, err := r.GetBits(5)
	if err != nil {
		return err
	}
	length := int(l) + 1
	for i := 0; i < b.Entries; {
		v, err := r.GetBits(bits.Ilog(b.Entries - i))
		if err != nil {
			return err
		}
		num := int(v)
		if length > maxCodeLen || num > b.Entries-i || (num > 0 && (num-1)>>(length-1) > 1) {
			return errors.Wrapf(ErrLengthRun, "%d entries of length %d at entry %d", num, length, i)
		}
		for j := 0; j < num; j++ {
			b.Lengths[i+j] = uint8(length)
		}
		i += num
		length++
	}
	return nil
}

func (b *StaticCodeBook) loadQuant(r *bits.Reader) error {
	if b.Dim < 1 {
		return errors.Wrapf(ErrDimensions, "maptype %d with dim 0", b.MapType)
	}
	f := bits.NewFieldReader(r)
	b.QMin = f.Get(32)
	b.QDelta = f.Get(32)
	b.QQuant = f.Int(4) + 1
	b.QSequenceP = f.Flag()
	if f.Err != nil {
		return f.Err
	}

	n := b.quantVals()
	if n*b.QQuant > r.BitsLeft() {
		return errors.Wrapf(bits.ErrUnexpectedEOF, "codebook: %d quantized values", n)
	}
	b.QuantList = make([]uint32, n)
	for i := range b.QuantList {
		b.QuantList[i], _ = r.GetBits(b.QQuant)
	}
	return nil
}

// quantVals is the length of QuantList implied by the map type.
func (b *StaticCodeBook) quantVals() int {
	switch b.MapType {
	case MapLattice:
		return b.Maptype1QuantVals()
	case MapExplicit:
		return b.Entries * b.Dim
	}
	return 0
}

// ordered reports whether the lengths can use the length-ordered encoding:
// non-decreasing, and no unused entry.
func (b *StaticCodeBook) ordered() bool {
	if b.Entries == 0 || b.Lengths[0] == 0 {
		return false
	}
	for i := 1; i < b.Entries; i++ {
		if b.Lengths[i] < b.Lengths[i-1] {
			return false
		}
	}
	return true
}

// Pack writes the codebook to w. Loading the output yields an equal book.
//
// Ported from: vorbis_staticbook_pack() in libvorbis lib/codebook.c
func (b *StaticCodeBook) Pack(w *bits.Writer) error {
	if err := b.checkWire(); err != nil {
		return err
	}

	f := bits.NewFieldWriter(w)
	f.Put(syncPattern, 24)
	f.PutInt(b.Dim, 16)
	f.PutInt(b.Entries, 24)

	if b.ordered() {
		f.PutFlag(true)
		f.PutInt(int(b.Lengths[0])-1, 5)
		count := 0
		i := 1
		for ; i < b.Entries; i++ {
			cur, last := b.Lengths[i], b.Lengths[i-1]
			for j := last; j < cur; j++ {
				f.PutInt(i-count, bits.Ilog(b.Entries-count))
				count = i
			}
		}
		f.PutInt(i-count, bits.Ilog(b.Entries-count))
	} else {
		f.PutFlag(false)

		sparse := false
		for _, l := range b.Lengths {
			if l == 0 {
				sparse = true
				break
			}
		}
		f.PutFlag(sparse)
		for _, l := range b.Lengths {
			if sparse {
				f.PutFlag(l != 0)
				if l == 0 {
					continue
				}
			}
			f.PutInt(int(l)-1, 5)
		}
	}

	f.PutInt(b.MapType, 4)
	if b.MapType != MapNone {
		f.Put(b.QMin, 32)
		f.Put(b.QDelta, 32)
		f.PutInt(b.QQuant-1, 4)
		f.PutFlag(b.QSequenceP)
		for _, q := range b.QuantList {
			f.Put(q, b.QQuant)
		}
	}
	return f.Err
}

// checkWire verifies the fields the wire format can represent.
func (b *StaticCodeBook) checkWire() error {
	if b.Dim < 0 || b.Dim > maxDim || b.Entries < 0 || b.Entries > maxEntries ||
		bits.Ilog(b.Dim)+bits.Ilog(b.Entries) > 24 {
		return errors.Wrapf(ErrDimensions, "dim %d entries %d", b.Dim, b.Entries)
	}
	if len(b.Lengths) != b.Entries {
		return errors.Wrapf(ErrLengthRun, "%d lengths for %d entries", len(b.Lengths), b.Entries)
	}
	for i, l := range b.Lengths {
		if l > maxCodeLen {
			return errors.Wrapf(ErrCodeLength, "entry %d has length %d", i, l)
		}
	}
	switch b.MapType {
	case MapNone:
		return nil
	case MapLattice, MapExplicit:
	default:
		return errors.Wrapf(ErrMapType, "maptype %d", b.MapType)
	}
	if b.Dim < 1 {
		return errors.Wrapf(ErrDimensions, "maptype %d with dim 0", b.MapType)
	}
	if b.QQuant < 1 || b.QQuant > maxQuantBit {
		return errors.Wrapf(ErrQuantList, "%d bits per value", b.QQuant)
	}
	if len(b.QuantList) == 0 || len(b.QuantList) != b.quantVals() {
		return errors.Wrapf(ErrQuantList, "%d values, want %d", len(b.QuantList), b.quantVals())
	}
	for i, q := range b.QuantList {
		if q > bits.Mask(b.QQuant) {
			return errors.Wrapf(ErrQuantList, "value %d does not fit %d bits", i, b.QQuant)
		}
	}
	return nil
}

// Validate checks that the book can be packed and that its lengths form a
// complete Huffman tree.
func (b *StaticCodeBook) Validate() error {
	if err := b.checkWire(); err != nil {
		return err
	}
	_, err := makeWords(b.Lengths, 0)
	return err
}

// UsedEntries counts the entries with a codeword.
func (b *StaticCodeBook) UsedEntries() int {
	n := 0
	for _, l := range b.Lengths {
		if l > 0 {
			n++
		}
	}
	return n
}

// Maptype1QuantVals returns the number of distinct scalar values of a
// lattice book: the largest vals with vals^dim <= entries. The float
// estimate is only a starting point; the result is verified in integers.
//
// Ported from: _book_maptype1_quantvals() in libvorbis lib/sharedbook.c
func (b *StaticCodeBook) Maptype1QuantVals() int {
	if b.Entries < 1 || b.Dim < 1 {
		return 0
	}
	entries := int64(b.Entries)
	vals := int64(math.Floor(math.Pow(float64(entries), 1/float64(b.Dim))))
	if vals < 1 {
		vals = 1
	}
	for {
		acc, acc1 := int64(1), int64(1)
		i := 0
		for ; i < b.Dim; i++ {
			if entries/vals < acc {
				break
			}
			acc *= vals
			if math.MaxInt64/(vals+1) < acc1 {
				acc1 = math.MaxInt64
			} else {
				acc1 *= vals + 1
			}
		}
		if i >= b.Dim && acc <= entries && acc1 > entries {
			return int(vals)
		}
		if i < b.Dim || acc > entries {
			vals--
		} else {
			vals++
		}
	}
}

// Unquantize expands the quantized value list into entries*dim vectors
// indexed by entry number. With sparse set only used entries are filled
// and unused ones stay zero. A MapNone book has no values and returns nil.
//
// Ported from: _book_unquantize() in libvorbis lib/sharedbook.c
func (b *StaticCodeBook) Unquantize(sparse bool) ([]float32, error) {
	switch b.MapType {
	case MapNone:
		return nil, nil
	case MapLattice, MapExplicit:
	default:
		return nil, errors.Wrapf(ErrMapType, "maptype %d", b.MapType)
	}
	if len(b.QuantList) != b.quantVals() {
		return nil, errors.Wrapf(ErrQuantList, "%d values, want %d", len(b.QuantList), b.quantVals())
	}

	mindel := UnpackFloat32(b.QMin)
	delta := UnpackFloat32(b.QDelta)
	out := make([]float32, b.Entries*b.Dim)
	quantvals := len(b.QuantList)

	for j := 0; j < b.Entries; j++ {
		if sparse && b.Lengths[j] == 0 {
			continue
		}
		var last float32
		indexdiv := 1
		for k := 0; k < b.Dim; k++ {
			var q uint32
			if b.MapType == MapLattice {
				q = b.QuantList[(j/indexdiv)%quantvals]
				indexdiv *= quantvals
			} else {
				q = b.QuantList[j*b.Dim+k]
			}
			val := float32(q)*delta + mindel + last
			if b.QSequenceP {
				last = val
			}
			out[j*b.Dim+k] = val
		}
	}
	return out, nil
}
