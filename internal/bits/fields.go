package bits

// FieldReader reads a run of header fields and remembers the first error.
// Once an error is recorded every further read returns zero values, so a
// parser can check Err once at the end of a section.
type FieldReader struct {
	*Reader
	Err error
}

// NewFieldReader wraps r.
func NewFieldReader(r *Reader) *FieldReader {
	return &FieldReader{Reader: r}
}

// Get reads an n-bit field.
func (f *FieldReader) Get(n int) uint32 {
	if f.Err != nil {
		return 0
	}
	v, err := f.GetBits(n)
	f.Err = err
	return v
}

// Int reads an n-bit field as an int.
func (f *FieldReader) Int(n int) int {
	return int(f.Get(n))
}

// Flag reads a 1-bit field.
func (f *FieldReader) Flag() bool {
	return f.Get(1) != 0
}

// Bytes reads n whole bytes.
func (f *FieldReader) Bytes(n int) []byte {
	if f.Err != nil {
		return nil
	}
	p, err := f.GetBytes(n)
	f.Err = err
	return p
}

// FieldWriter is the writing counterpart of FieldReader.
type FieldWriter struct {
	*Writer
	Err error
}

// NewFieldWriter wraps w.
func NewFieldWriter(w *Writer) *FieldWriter {
	return &FieldWriter{Writer: w}
}

// Put writes v as an n-bit field.
func (f *FieldWriter) Put(v uint32, n int) {
	if f.Err == nil {
		f.Err = f.WriteBits(v, n)
	}
}

// PutInt writes v as an n-bit field.
func (f *FieldWriter) PutInt(v, n int) {
	f.Put(uint32(v), n)
}

// PutFlag writes b as a 1-bit field.
func (f *FieldWriter) PutFlag(b bool) {
	if f.Err == nil {
		f.Err = f.WriteFlag(b)
	}
}

// PutBytes writes p as a run of 8-bit fields.
func (f *FieldWriter) PutBytes(p []byte) {
	if f.Err == nil {
		f.Err = f.WriteBytes(p)
	}
}
