package codebook

import (
	"cmp"
	"math"

	"golang.org/x/exp/slices"

	"github.com/llehouerou/go-vorbis/internal/bits"
)

// CodeBook is the runtime form of a StaticCodeBook, built once for either
// encoding or decoding. It references its source book, which must outlive
// it and must not change.
type CodeBook struct {
	Dim         int
	Entries     int
	UsedEntries int

	static    *StaticCodeBook
	forEncode bool

	// ValueList holds Entries*Dim dequantized values indexed by entry
	// number. It is nil for MapNone books. Decode books only fill used
	// entries.
	ValueList []float32

	// CodeList holds the LSB-first codeword of every entry in an encode
	// book. In a decode book it holds the MSB-first codewords of the used
	// entries, sorted ascending.
	CodeList []uint32

	// Decode tables, indexed by sorted position.
	DecIndex       []int   // original entry number
	DecCodeLengths []uint8 // codeword length
	DecMaxLength   int

	// DecFirstTable maps the next DecFirstTableN stream bits to a sorted
	// position plus one, or to a search hint when bit 31 is set: bits
	// 15-29 give the lowest candidate and bits 0-14 the distance of the
	// highest candidate from UsedEntries.
	DecFirstTableN int
	DecFirstTable  []uint32

	// Lattice parameters of encode books.
	QuantVals int
	MinVal    int
	Delta     int
}

// New derives a runtime book from s. Encode books can Encode and
// BestEntry; decode books can DecodeEntry and DecodeVector.
func New(forEncode bool, s *StaticCodeBook) (*CodeBook, error) {
	if err := s.checkWire(); err != nil {
		return nil, err
	}
	if forEncode {
		return newForEncode(s)
	}
	return newForDecode(s)
}

// Ported from: vorbis_book_init_encode() in libvorbis lib/sharedbook.c
func newForEncode(s *StaticCodeBook) (*CodeBook, error) {
	words, err := makeWords(s.Lengths, 0)
	if err != nil {
		return nil, err
	}
	values, err := s.Unquantize(false)
	if err != nil {
		return nil, err
	}
	return &CodeBook{
		Dim:         s.Dim,
		Entries:     s.Entries,
		UsedEntries: s.Entries,
		static:      s,
		forEncode:   true,
		ValueList:   values,
		CodeList:    words,
		QuantVals:   s.Maptype1QuantVals(),
		MinVal:      int(math.RoundToEven(float64(UnpackFloat32(s.QMin)))),
		Delta:       int(math.RoundToEven(float64(UnpackFloat32(s.QDelta)))),
	}, nil
}

// Ported from: vorbis_book_init_decode() in libvorbis lib/sharedbook.c
func newForDecode(s *StaticCodeBook) (*CodeBook, error) {
	n := s.UsedEntries()
	c := &CodeBook{
		Dim:         s.Dim,
		Entries:     s.Entries,
		UsedEntries: n,
		static:      s,
	}
	if n == 0 {
		return c, nil
	}

	codes, err := makeWords(s.Lengths, n)
	if err != nil {
		return nil, err
	}
	for i := range codes {
		codes[i] = bits.Reverse32(codes[i])
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(codes[a], codes[b])
	})
	sortindex := make([]int, n)
	for sorted, pos := range order {
		sortindex[pos] = sorted
	}

	c.CodeList = make([]uint32, n)
	for i, code := range codes {
		c.CodeList[sortindex[i]] = code
	}

	c.DecIndex = make([]int, n)
	c.DecCodeLengths = make([]uint8, n)
	used := 0
	for i, l := range s.Lengths {
		if l == 0 {
			continue
		}
		c.DecIndex[sortindex[used]] = i
		c.DecCodeLengths[sortindex[used]] = l
		used++
	}
	c.DecMaxLength = int(slices.Max(c.DecCodeLengths))

	if c.ValueList, err = s.Unquantize(true); err != nil {
		return nil, err
	}

	c.buildFirstTable()
	return c, nil
}

// buildFirstTable fills the direct lookup table and the search hints in
// the slots no short codeword claims.
func (c *CodeBook) buildFirstTable() {
	n := c.UsedEntries

	// A lone one-bit codeword always decodes to entry 0.
	if n == 1 && c.DecMaxLength == 1 {
		c.DecFirstTableN = 1
		c.DecFirstTable = []uint32{1, 1}
		return
	}

	tablen := bits.Ilog(n) - 4
	tablen = max(tablen, 5)
	tablen = min(tablen, 8)
	c.DecFirstTableN = tablen
	tabn := 1 << tablen
	c.DecFirstTable = make([]uint32, tabn)

	for i := 0; i < n; i++ {
		l := int(c.DecCodeLengths[i])
		if l > tablen {
			continue
		}
		orig := bits.Reverse32(c.CodeList[i])
		for j := 0; j < 1<<(tablen-l); j++ {
			c.DecFirstTable[orig|uint32(j)<<l] = uint32(i + 1)
		}
	}

	mask := uint32(0xfffffffe) << (31 - tablen)
	lo, hi := 0, 0
	for i := 0; i < tabn; i++ {
		word := uint32(i) << (32 - tablen)
		slot := bits.Reverse32(word)
		if c.DecFirstTable[slot] != 0 {
			continue
		}
		for lo+1 < n && c.CodeList[lo+1] <= word {
			lo++
		}
		for hi < n && word >= c.CodeList[hi]&mask {
			hi++
		}
		loval := min(lo, 0x7fff)
		hival := min(n-hi, 0x7fff)
		c.DecFirstTable[slot] = 0x80000000 | uint32(loval)<<15 | uint32(hival)
	}
}

// Static returns the source book.
func (c *CodeBook) Static() *StaticCodeBook {
	return c.static
}

// ForEncode reports whether c was built for encoding.
func (c *CodeBook) ForEncode() bool {
	return c.forEncode
}
