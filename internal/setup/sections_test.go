package setup

import (
	"errors"
	"testing"

	"github.com/llehouerou/go-vorbis/internal/bits"
	"github.com/llehouerou/go-vorbis/internal/codebook"
)

func TestLoadFloor_Errors(t *testing.T) {
	books := twoBooks()
	tests := []struct {
		name  string
		floor Floor
		want  error
	}{
		{"floor0 order", &Floor0{Order: 0, Rate: 1, BarkMap: 1, Books: []int{1}}, ErrFloor},
		{"floor0 unmapped book", &Floor0{Order: 1, Rate: 1, BarkMap: 1, Books: []int{0}}, ErrBookIndex},
		{"floor0 missing book", &Floor0{Order: 1, Rate: 1, BarkMap: 1, Books: []int{2}}, ErrBookIndex},
		{"floor1 repeated post", &Floor1{
			PartitionClass: []int{0},
			ClassDim:       []int{2},
			ClassSubs:      []int{0},
			ClassBook:      []int{0},
			ClassSubBook:   [][]int{{-1}},
			Mult:           1,
			PostList:       []int{0, 16, 5, 5},
		}, ErrFloor},
		{"floor1 post repeats zero", &Floor1{
			PartitionClass: []int{0},
			ClassDim:       []int{1},
			ClassSubs:      []int{0},
			ClassBook:      []int{0},
			ClassSubBook:   [][]int{{-1}},
			Mult:           1,
			PostList:       []int{0, 16, 0},
		}, ErrFloor},
		{"floor1 too many posts", &Floor1{
			PartitionClass: make([]int, 8),
			ClassDim:       []int{8},
			ClassSubs:      []int{0},
			ClassBook:      []int{0},
			ClassSubBook:   [][]int{{-1}},
			Mult:           1,
			PostList:       append([]int{0, 128}, make([]int, 64)...),
		}, ErrFloor},
		{"floor1 sub-book", &Floor1{
			PartitionClass: []int{0},
			ClassDim:       []int{1},
			ClassSubs:      []int{0},
			ClassBook:      []int{0},
			ClassSubBook:   [][]int{{5}},
			Mult:           1,
			PostList:       []int{0, 16, 8},
		}, ErrBookIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := packSection(t, tt.floor.pack)
			_, err := loadFloor(f, books)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadFloor1_NoPartitions(t *testing.T) {
	fl := &Floor1{Mult: 4, PostList: []int{0, 256}}
	f := packSection(t, fl.pack)
	got, err := loadFloor(f, twoBooks())
	if err != nil {
		t.Fatal(err)
	}
	g := got.(*Floor1)
	if g.Mult != 4 || g.classes() != 0 || len(g.PostList) != 2 || g.PostList[1] != 256 {
		t.Errorf("got %+v", g)
	}
}

func TestFloor1_PackRejectsPostCount(t *testing.T) {
	fl := &Floor1{
		PartitionClass: []int{0},
		ClassDim:       []int{2},
		ClassSubs:      []int{0},
		ClassBook:      []int{0},
		ClassSubBook:   [][]int{{-1}},
		Mult:           1,
		PostList:       []int{0, 16, 3},
	}
	w := bits.NewBufferWriter()
	if err := fl.pack(bits.NewFieldWriter(w.Writer)); !errors.Is(err, ErrFloor) {
		t.Errorf("err = %v, want ErrFloor", err)
	}
}

func TestLoadResidue(t *testing.T) {
	res := &Residue{
		Type:         1,
		Begin:        32,
		End:          1 << 20,
		Grouping:     1 << 24,
		Partitions:   2,
		SecondStages: []int{0xFF, 0x04},
		BookList:     []int{1, 1, 1, 1, 1, 1, 1, 1, 1},
		PartVals:     2,
	}
	f := packSection(t, res.pack)
	got, err := loadResidue(f, twoBooks())
	if err != nil {
		t.Fatal(err)
	}
	if got.Grouping != 1<<24 || got.SecondStages[0] != 0xFF || got.SecondStages[1] != 0x04 || len(got.BookList) != 9 {
		t.Errorf("got %+v", got)
	}
	if got.PartVals != 2 {
		t.Errorf("PartVals = %d, want 2", got.PartVals)
	}
}

func TestLoadResidue_Errors(t *testing.T) {
	wide := twoBooks()
	wide[0] = &codebook.StaticCodeBook{Dim: 3, Entries: 4, Lengths: []uint8{2, 2, 2, 2}}
	tests := []struct {
		name  string
		books []*codebook.StaticCodeBook
		res   *Residue
		want  error
	}{
		{"unmapped cascade book", twoBooks(), &Residue{Partitions: 1, SecondStages: []int{1}, BookList: []int{0}}, ErrBookIndex},
		{"missing cascade book", twoBooks(), &Residue{Partitions: 1, SecondStages: []int{1}, BookList: []int{7}}, ErrBookIndex},
		{"partitions over group book", wide, &Residue{Partitions: 2, SecondStages: []int{0, 0}}, ErrResidue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := packSection(t, tt.res.pack)
			_, err := loadResidue(f, tt.books)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadMapping_Errors(t *testing.T) {
	const channels = 3
	tests := []struct {
		name string
		m    *Mapping
		want error
	}{
		{"coupling same channel", &Mapping{
			Submaps: 1, FloorSubmap: []int{0}, ResidueSubmap: []int{0},
			CouplingMag: []int{1}, CouplingAng: []int{1},
		}, ErrMapping},
		{"coupling channel out of range", &Mapping{
			Submaps: 1, FloorSubmap: []int{0}, ResidueSubmap: []int{0},
			CouplingMag: []int{0}, CouplingAng: []int{3},
		}, ErrMapping},
		{"mux past submaps", &Mapping{
			Submaps: 2, ChMux: []int{0, 1, 2}, FloorSubmap: []int{0, 0}, ResidueSubmap: []int{0, 0},
		}, ErrMapping},
		{"residue past count", &Mapping{
			Submaps: 1, FloorSubmap: []int{0}, ResidueSubmap: []int{1},
		}, ErrMapping},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := packSection(t, func(f *bits.FieldWriter) error { return tt.m.pack(f, channels) })
			_, err := loadMapping(f, channels, 1, 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMapping_MonoCoupling(t *testing.T) {
	// One channel leaves zero bits per coupled channel.
	m := &Mapping{
		Submaps: 1, FloorSubmap: []int{0}, ResidueSubmap: []int{0},
		CouplingMag: []int{0}, CouplingAng: []int{0},
	}
	f := packSection(t, func(f *bits.FieldWriter) error { return m.pack(f, 1) })
	if _, err := loadMapping(f, 1, 1, 1); !errors.Is(err, ErrMapping) {
		t.Errorf("err = %v, want ErrMapping", err)
	}
}
