package vorbis

import (
	"errors"
	"strings"
	"testing"

	"github.com/llehouerou/go-vorbis/internal/codebook"
)

// minimalSetup is a setup header with one unmapped two-entry book, a floor1
// without partitions, one residue, one mapping and one mode. Its codebook
// section spans bits 56 to 140.
var minimalSetup = []byte{
	0x05, 0x76, 0x6F, 0x72, 0x62, 0x69, 0x73, 0x00, 0x42, 0x43,
	0x56, 0x01, 0x00, 0x02, 0x00, 0x00, 0x81, 0x00, 0x00, 0x00,
	0x00, 0x01, 0x00, 0xA0, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x80, 0x00, 0x00, 0x1E, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x10,
}

const minimalBookBits = 84

var stereo = &Ident{
	Channels:       2,
	SampleRate:     44100,
	BitrateNominal: 128000,
	BlockSize:      [2]int{256, 2048},
}

const presets = `
books:
  - name: flat
    dim: 1
    lengths: [2, 2, 2, 2]
  - name: lattice
    dim: 2
    lengths: [2, 2, 2, 3, 4, 5, 6, 7, 7]
    maptype: 1
    min: -1
    delta: 1
    quant: 2
    quantlist: [1, 0, 2]
`

func presetBooks(t *testing.T) *Codebooks {
	t.Helper()
	c, err := PackTemplate(strings.NewReader(presets))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// richSetup builds a stereo setup header over the preset books that uses
// every section type.
func richSetup(t *testing.T) *Setup {
	t.Helper()
	s, err := presetBooks(t).packed.Unpack()
	if err != nil {
		t.Fatal(err)
	}
	return &Setup{
		Books: codebook.NewStaticCodeBooks(s.Books...),
		Times: 1,
		Floors: []Floor{
			&Floor0{Order: 16, Rate: 22050, BarkMap: 128, AmpBits: 6, AmpDB: 140, Books: []int{1}},
			&Floor1{
				PartitionClass: []int{0, 0},
				ClassDim:       []int{3},
				ClassSubs:      []int{1},
				ClassBook:      []int{0},
				ClassSubBook:   [][]int{{-1, 0}},
				Mult:           2,
				PostList:       []int{0, 256, 128, 64, 192, 32, 96, 160},
			},
		},
		Residues: []*Residue{{
			Type:         1,
			End:          256,
			Grouping:     32,
			Partitions:   4,
			GroupBook:    0,
			SecondStages: []int{0x01, 0x11, 0, 0x03},
			BookList:     []int{1, 1, 1, 1, 1},
			PartVals:     4,
		}},
		Maps: []*Mapping{{
			Submaps:       1,
			FloorSubmap:   []int{1},
			ResidueSubmap: []int{0},
			CouplingMag:   []int{0},
			CouplingAng:   []int{1},
		}},
		Modes: []*Mode{{Mapping: 0}, {BlockFlag: true, Mapping: 0}},
	}
}

func isStripped(err error) bool {
	return errors.Is(err, ErrStripped)
}
