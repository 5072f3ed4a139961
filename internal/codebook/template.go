package codebook

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Template is the YAML form of a StaticCodeBook used for encoder presets.
// Min and Delta are real numbers; they are stored in the codebook float
// layout when the book is built.
type Template struct {
	Name      string   `yaml:"name,omitempty"`
	Dim       int      `yaml:"dim"`
	Entries   int      `yaml:"entries,omitempty"`
	Lengths   []int    `yaml:"lengths,flow"`
	MapType   int      `yaml:"maptype,omitempty"`
	Min       float64  `yaml:"min,omitempty"`
	Delta     float64  `yaml:"delta,omitempty"`
	Quant     int      `yaml:"quant,omitempty"`
	Sequence  bool     `yaml:"sequence,omitempty"`
	QuantList []uint32 `yaml:"quantlist,flow,omitempty"`
}

// TemplateSet is a YAML document holding a list of book templates.
type TemplateSet struct {
	Books []Template `yaml:"books"`
}

// Book builds and validates the book t describes. Entries defaults to the
// number of lengths.
func (t Template) Book() (*StaticCodeBook, error) {
	entries := t.Entries
	if entries == 0 {
		entries = len(t.Lengths)
	}
	b := &StaticCodeBook{
		Dim:        t.Dim,
		Entries:    entries,
		Lengths:    make([]uint8, len(t.Lengths)),
		MapType:    t.MapType,
		QQuant:     t.Quant,
		QSequenceP: t.Sequence,
	}
	for i, l := range t.Lengths {
		if l < 0 || l > maxCodeLen {
			return nil, errors.Wrapf(ErrTemplate, "%s: entry %d has length %d", t.Name, i, l)
		}
		b.Lengths[i] = uint8(l)
	}
	if b.MapType != MapNone {
		b.QMin = PackFloat32(float32(t.Min))
		b.QDelta = PackFloat32(float32(t.Delta))
		b.QuantList = append([]uint32(nil), t.QuantList...)
	}
	if err := b.Validate(); err != nil {
		return nil, errors.Wrapf(ErrTemplate, "%s: %v", t.Name, err)
	}
	return b, nil
}

// TemplateOf describes b as a template.
func TemplateOf(b *StaticCodeBook) Template {
	t := Template{
		Dim:     b.Dim,
		Entries: b.Entries,
		Lengths: make([]int, len(b.Lengths)),
		MapType: b.MapType,
	}
	for i, l := range b.Lengths {
		t.Lengths[i] = int(l)
	}
	if b.MapType != MapNone {
		t.Min = float64(UnpackFloat32(b.QMin))
		t.Delta = float64(UnpackFloat32(b.QDelta))
		t.Quant = b.QQuant
		t.Sequence = b.QSequenceP
		t.QuantList = append([]uint32(nil), b.QuantList...)
	}
	return t
}

// ReadTemplates decodes a template set. Unknown keys are rejected as
// ErrTemplate.
func ReadTemplates(r io.Reader) (*TemplateSet, error) {
	var set TemplateSet
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&set); err != nil {
		return nil, errors.Wrapf(ErrTemplate, "decode: %v", err)
	}
	return &set, nil
}

// LoadTemplates decodes a template set and builds its books in order.
func LoadTemplates(r io.Reader) ([]*StaticCodeBook, error) {
	set, err := ReadTemplates(r)
	if err != nil {
		return nil, err
	}
	books := make([]*StaticCodeBook, len(set.Books))
	for i, t := range set.Books {
		if books[i], err = t.Book(); err != nil {
			return nil, errors.Wrapf(err, "template %d", i)
		}
	}
	return books, nil
}

// WriteTemplates encodes books as a template set.
func WriteTemplates(w io.Writer, books []*StaticCodeBook) error {
	set := TemplateSet{Books: make([]Template, len(books))}
	for i, b := range books {
		set.Books[i] = TemplateOf(b)
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&set); err != nil {
		return errors.Wrap(err, "codebook: encode templates")
	}
	return encoder.Close()
}
