package vorbis

import (
	"io"

	"github.com/llehouerou/go-vorbis/internal/codebook"
)

// PackTemplate builds a codebook section from a YAML preset document:
//
//	books:
//	  - name: flat
//	    dim: 1
//	    lengths: [2, 2, 2, 2]
//	  - name: lattice
//	    dim: 2
//	    lengths: [2, 2, 2, 3, 4, 5, 6, 7, 7]
//	    maptype: 1
//	    min: -1
//	    delta: 1
//	    quant: 2
//	    quantlist: [1, 0, 2]
//
// Every book is validated before packing.
func PackTemplate(r io.Reader) (*Codebooks, error) {
	books, err := codebook.LoadTemplates(r)
	if err != nil {
		return nil, err
	}
	packed, err := codebook.NewStaticCodeBooks(books...).ToPacked()
	if err != nil {
		return nil, err
	}
	return &Codebooks{packed: packed}, nil
}

// WriteTemplate describes the books of a codebook section as a YAML
// preset document.
func WriteTemplate(w io.Writer, c *Codebooks) error {
	s, err := c.packed.Unpack()
	if err != nil {
		return err
	}
	return codebook.WriteTemplates(w, s.Books)
}
