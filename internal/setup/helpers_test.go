package setup

import (
	"testing"

	"github.com/llehouerou/go-vorbis/internal/bits"
	"github.com/llehouerou/go-vorbis/internal/codebook"
)

// minimalSetup is a setup header with one unmapped two-entry book, a floor1
// without partitions, one residue with no cascades, one mapping and one
// mode.
var minimalSetup = []byte{
	0x05, 0x76, 0x6F, 0x72, 0x62, 0x69, 0x73, 0x00, 0x42, 0x43,
	0x56, 0x01, 0x00, 0x02, 0x00, 0x00, 0x81, 0x00, 0x00, 0x00,
	0x00, 0x01, 0x00, 0xA0, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x80, 0x00, 0x00, 0x1E, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x10,
}

// Bit positions of fields in minimalSetup.
const (
	minimalBooksEnd     = 140
	minimalFraming      = 404
	minimalSetupBits    = 405
	minimalTimeType     = 146
	minimalFloorType    = 168
	minimalResidueType  = 201
	minimalResParts     = 289
	minimalResGroupBook = 295
	minimalMapType      = 313
	minimalMapReserved  = 331
	minimalMapFloor     = 341
	minimalModeWindow   = 364
	minimalModeMapping  = 396
)

var stereo = &Ident{
	Channels:       2,
	SampleRate:     44100,
	BitrateNominal: 128000,
	BlockSize:      [2]int{256, 2048},
}

func flipBit(p []byte, pos int) []byte {
	out := append([]byte(nil), p...)
	out[pos/8] ^= 1 << (pos % 8)
	return out
}

// twoBooks returns an unmapped 1-dimensional book with two entries and a
// 2-dimensional lattice book with nine entries.
func twoBooks() []*codebook.StaticCodeBook {
	return []*codebook.StaticCodeBook{
		{Dim: 1, Entries: 2, Lengths: []uint8{1, 1}},
		{
			Dim:       2,
			Entries:   9,
			Lengths:   []uint8{2, 2, 2, 3, 4, 5, 6, 7, 7},
			MapType:   codebook.MapLattice,
			QMin:      codebook.PackFloat32(-1),
			QDelta:    codebook.PackFloat32(1),
			QQuant:    2,
			QuantList: []uint32{1, 0, 2},
		},
	}
}

// packSection writes a section with pack and returns a reader over it.
func packSection(t *testing.T, pack func(f *bits.FieldWriter) error) *bits.FieldReader {
	t.Helper()
	w := bits.NewBufferWriter()
	f := bits.NewFieldWriter(w.Writer)
	if err := pack(f); err != nil {
		t.Fatalf("pack: %v", err)
	}
	if f.Err != nil {
		t.Fatalf("pack: %v", f.Err)
	}
	return bits.NewFieldReader(bits.NewReader(w.Bytes()))
}
