package setup

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/llehouerou/go-vorbis/internal/bits"
	"github.com/llehouerou/go-vorbis/internal/codebook"
)

// Floor types.
const (
	FloorType0 = 0
	FloorType1 = 1
)

// Floor1 limits.
const (
	floor1MaxPosts      = 63
	floor1MaxPartitions = 31
	floor1MaxClasses    = 16
)

// Floor is a floor configuration of the setup header.
type Floor interface {
	Type() int
	pack(f *bits.FieldWriter) error
}

func loadFloor(f *bits.FieldReader, books []*codebook.StaticCodeBook) (Floor, error) {
	t := f.Int(16)
	if f.Err != nil {
		return nil, f.Err
	}
	switch t {
	case FloorType0:
		return loadFloor0(f, books)
	case FloorType1:
		return loadFloor1(f, books)
	}
	return nil, errors.Wrapf(ErrFloorType, "type %d", t)
}

// Floor0 is an LSP floor.
type Floor0 struct {
	Order   int
	Rate    int
	BarkMap int
	AmpBits int
	AmpDB   int
	Books   []int
}

// Type returns FloorType0.
func (*Floor0) Type() int { return FloorType0 }

// Ported from: floor0_unpack() in libvorbis lib/floor0.c
func loadFloor0(f *bits.FieldReader, books []*codebook.StaticCodeBook) (*Floor0, error) {
	fl := &Floor0{}
	fl.Order = f.Int(8)
	fl.Rate = f.Int(16)
	fl.BarkMap = f.Int(16)
	fl.AmpBits = f.Int(6)
	fl.AmpDB = f.Int(8)
	n := f.Int(4) + 1
	if f.Err != nil {
		return nil, f.Err
	}
	if fl.Order < 1 || fl.Rate < 1 || fl.BarkMap < 1 {
		return nil, errors.Wrapf(ErrFloor, "floor0 order %d rate %d barkmap %d", fl.Order, fl.Rate, fl.BarkMap)
	}

	fl.Books = make([]int, n)
	for i := range fl.Books {
		b := f.Int(8)
		if f.Err != nil {
			return nil, f.Err
		}
		if b >= len(books) {
			return nil, errors.Wrapf(ErrBookIndex, "floor0 book %d of %d", b, len(books))
		}
		if books[b].MapType == codebook.MapNone || books[b].Dim < 1 {
			return nil, errors.Wrapf(ErrBookIndex, "floor0 book %d has no vectors", b)
		}
		fl.Books[i] = b
	}
	return fl, nil
}

func (fl *Floor0) pack(f *bits.FieldWriter) error {
	if len(fl.Books) < 1 || len(fl.Books) > 16 {
		return errors.Wrapf(ErrFloor, "floor0 with %d books", len(fl.Books))
	}
	f.PutInt(FloorType0, 16)
	f.PutInt(fl.Order, 8)
	f.PutInt(fl.Rate, 16)
	f.PutInt(fl.BarkMap, 16)
	f.PutInt(fl.AmpBits, 6)
	f.PutInt(fl.AmpDB, 8)
	f.PutInt(len(fl.Books)-1, 4)
	for _, b := range fl.Books {
		f.PutInt(b, 8)
	}
	return nil
}

// Floor1 is a piecewise linear floor.
type Floor1 struct {
	// PartitionClass holds the class of every partition.
	PartitionClass []int

	// Per class: dimension (1-8), subclass bits (0-3), master book and
	// 1<<subs sub-books, -1 meaning none.
	ClassDim     []int
	ClassSubs    []int
	ClassBook    []int
	ClassSubBook [][]int

	Mult int // 1-4

	// PostList holds the X positions: 0 and 1<<rangebits first, then the
	// posts of every partition in order.
	PostList []int
}

// Type returns FloorType1.
func (*Floor1) Type() int { return FloorType1 }

// classes returns the number of classes the partitions use.
func (fl *Floor1) classes() int {
	if len(fl.PartitionClass) == 0 {
		return 0
	}
	return slices.Max(fl.PartitionClass) + 1
}

// Ported from: floor1_unpack() in libvorbis lib/floor1.c
func loadFloor1(f *bits.FieldReader, books []*codebook.StaticCodeBook) (*Floor1, error) {
	fl := &Floor1{}
	fl.PartitionClass = make([]int, f.Int(5))
	for i := range fl.PartitionClass {
		fl.PartitionClass[i] = f.Int(4)
	}
	if f.Err != nil {
		return nil, f.Err
	}

	n := fl.classes()
	fl.ClassDim = make([]int, n)
	fl.ClassSubs = make([]int, n)
	fl.ClassBook = make([]int, n)
	fl.ClassSubBook = make([][]int, n)
	for i := 0; i < n; i++ {
		fl.ClassDim[i] = f.Int(3) + 1
		fl.ClassSubs[i] = f.Int(2)
		if fl.ClassSubs[i] != 0 {
			fl.ClassBook[i] = f.Int(8)
		}
		if f.Err != nil {
			return nil, f.Err
		}
		if fl.ClassBook[i] >= len(books) {
			return nil, errors.Wrapf(ErrBookIndex, "floor1 class %d book %d of %d", i, fl.ClassBook[i], len(books))
		}
		fl.ClassSubBook[i] = make([]int, 1<<fl.ClassSubs[i])
		for k := range fl.ClassSubBook[i] {
			b := f.Int(8) - 1
			if f.Err != nil {
				return nil, f.Err
			}
			if b >= len(books) {
				return nil, errors.Wrapf(ErrBookIndex, "floor1 class %d sub-book %d of %d", i, b, len(books))
			}
			fl.ClassSubBook[i][k] = b
		}
	}

	fl.Mult = f.Int(2) + 1
	rangebits := f.Int(4)
	if f.Err != nil {
		return nil, f.Err
	}
	maxrange := 1 << rangebits

	fl.PostList = []int{0, maxrange}
	for _, c := range fl.PartitionClass {
		if len(fl.PostList)-2+fl.ClassDim[c] > floor1MaxPosts {
			return nil, errors.Wrapf(ErrFloor, "floor1 has more than %d posts", floor1MaxPosts)
		}
		for j := 0; j < fl.ClassDim[c]; j++ {
			x := f.Int(rangebits)
			if f.Err != nil {
				return nil, f.Err
			}
			fl.PostList = append(fl.PostList, x)
		}
	}

	sorted := slices.Clone(fl.PostList)
	slices.Sort(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1] == sorted[i] {
			return nil, errors.Wrapf(ErrFloor, "floor1 post %d repeats", sorted[i])
		}
	}
	return fl, nil
}

// Ported from: floor1_pack() in libvorbis lib/floor1.c
func (fl *Floor1) pack(f *bits.FieldWriter) error {
	n := fl.classes()
	if len(fl.PartitionClass) > floor1MaxPartitions || n > floor1MaxClasses ||
		len(fl.ClassDim) < n || len(fl.ClassSubs) < n || len(fl.ClassBook) < n || len(fl.ClassSubBook) < n {
		return errors.Wrapf(ErrFloor, "floor1 with %d partitions and %d classes", len(fl.PartitionClass), n)
	}
	posts := 0
	for _, c := range fl.PartitionClass {
		posts += fl.ClassDim[c]
	}
	if len(fl.PostList) != posts+2 {
		return errors.Wrapf(ErrFloor, "floor1 post list holds %d values, want %d", len(fl.PostList), posts+2)
	}
	rangebits := bits.Ilog(fl.PostList[1] - 1)

	f.PutInt(FloorType1, 16)
	f.PutInt(len(fl.PartitionClass), 5)
	for _, c := range fl.PartitionClass {
		f.PutInt(c, 4)
	}
	for i := 0; i < n; i++ {
		f.PutInt(fl.ClassDim[i]-1, 3)
		f.PutInt(fl.ClassSubs[i], 2)
		if fl.ClassSubs[i] != 0 {
			f.PutInt(fl.ClassBook[i], 8)
		}
		for _, b := range fl.ClassSubBook[i] {
			f.PutInt(b+1, 8)
		}
	}
	f.PutInt(fl.Mult-1, 2)
	f.PutInt(rangebits, 4)
	for _, x := range fl.PostList[2:] {
		f.PutInt(x, rangebits)
	}
	return nil
}
