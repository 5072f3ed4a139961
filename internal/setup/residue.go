package setup

import (
	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
	"github.com/llehouerou/go-vorbis/internal/codebook"
)

// Residue is a residue configuration of types 0, 1 and 2, which share a
// layout.
type Residue struct {
	Type       int
	Begin      int
	End        int
	Grouping   int // 1..1<<24
	Partitions int // 1..64
	GroupBook  int

	// SecondStages holds the 8-bit cascade mask of every partition class;
	// BookList holds one book per set cascade bit, in order.
	SecondStages []int
	BookList     []int

	// PartVals is Partitions^dim of the group book.
	PartVals int
}

// Ported from: res0_unpack() in libvorbis lib/res0.c
func loadResidue(f *bits.FieldReader, books []*codebook.StaticCodeBook) (*Residue, error) {
	res := &Residue{}
	res.Type = f.Int(16)
	if f.Err != nil {
		return nil, f.Err
	}
	if res.Type > 2 {
		return nil, errors.Wrapf(ErrResidueType, "type %d", res.Type)
	}
	res.Begin = f.Int(24)
	res.End = f.Int(24)
	res.Grouping = f.Int(24) + 1
	res.Partitions = f.Int(6) + 1
	res.GroupBook = f.Int(8)
	if f.Err != nil {
		return nil, f.Err
	}
	if res.GroupBook >= len(books) {
		return nil, errors.Wrapf(ErrBookIndex, "residue group book %d of %d", res.GroupBook, len(books))
	}

	res.SecondStages = make([]int, res.Partitions)
	acc := 0
	for i := range res.SecondStages {
		cascade := f.Int(3)
		if f.Flag() {
			cascade |= f.Int(5) << 3
		}
		res.SecondStages[i] = cascade
		acc += bits.ICount(cascade)
	}

	res.BookList = make([]int, acc)
	for i := range res.BookList {
		b := f.Int(8)
		if f.Err != nil {
			return nil, f.Err
		}
		if b >= len(books) {
			return nil, errors.Wrapf(ErrBookIndex, "residue book %d of %d", b, len(books))
		}
		if books[b].MapType == codebook.MapNone {
			return nil, errors.Wrapf(ErrBookIndex, "residue book %d has no vectors", b)
		}
		res.BookList[i] = b
	}
	if f.Err != nil {
		return nil, f.Err
	}

	group := books[res.GroupBook]
	if group.Dim < 1 {
		return nil, errors.Wrapf(ErrResidue, "group book %d has dim 0", res.GroupBook)
	}
	res.PartVals = 1
	for k := 0; k < group.Dim; k++ {
		res.PartVals *= res.Partitions
		if res.PartVals > group.Entries {
			return nil, errors.Wrapf(ErrResidue, "%d partitions over %d group book entries", res.Partitions, group.Entries)
		}
	}
	return res, nil
}

// Ported from: res0_pack() in libvorbis lib/res0.c
func (res *Residue) pack(f *bits.FieldWriter) error {
	if res.Type > 2 {
		return errors.Wrapf(ErrResidueType, "type %d", res.Type)
	}
	if res.Partitions < 1 || res.Partitions > 64 || len(res.SecondStages) != res.Partitions {
		return errors.Wrapf(ErrResidue, "%d partitions with %d cascades", res.Partitions, len(res.SecondStages))
	}
	acc := 0
	for _, c := range res.SecondStages {
		acc += bits.ICount(c)
	}
	if len(res.BookList) != acc {
		return errors.Wrapf(ErrResidue, "%d books for %d cascade bits", len(res.BookList), acc)
	}

	f.PutInt(res.Type, 16)
	f.PutInt(res.Begin, 24)
	f.PutInt(res.End, 24)
	f.PutInt(res.Grouping-1, 24)
	f.PutInt(res.Partitions-1, 6)
	f.PutInt(res.GroupBook, 8)
	for _, c := range res.SecondStages {
		if bits.Ilog(c) > 3 {
			f.PutInt(c, 3)
			f.PutFlag(true)
			f.PutInt(c>>3, 5)
		} else {
			f.PutInt(c, 4)
		}
	}
	for _, b := range res.BookList {
		f.PutInt(b, 8)
	}
	return nil
}
