package bits

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestNewData_RemovesResidue(t *testing.T) {
	d := NewData([]byte{0xFF, 0xFF, 0xFF}, 12)
	if d.TotalBits() != 12 {
		t.Errorf("TotalBits = %d, want 12", d.TotalBits())
	}
	if d.TotalBytes() != 2 {
		t.Errorf("TotalBytes = %d, want 2", d.TotalBytes())
	}
	if got := d.Bytes(); !bytes.Equal(got, []byte{0xFF, 0x0F}) {
		t.Errorf("Bytes = % X, want FF 0F", got)
	}
}

func TestNewData_CopiesInput(t *testing.T) {
	src := []byte{0x12, 0x34}
	d := NewData(src, 16)
	src[0] = 0
	if got := d.Bytes(); got[0] != 0x12 {
		t.Error("NewData aliased its input")
	}
}

func TestData_SplitEdges(t *testing.T) {
	d := DataFromBytes([]byte{0xAA, 0x55})

	front, back := d.Split(0)
	if front.TotalBits() != 0 || !back.Equal(d) {
		t.Errorf("Split(0) = %v, %v", front, back)
	}

	front, back = d.Split(16)
	if !front.Equal(d) || back.TotalBits() != 0 {
		t.Errorf("Split(16) = %v, %v", front, back)
	}

	front, back = d.Split(100)
	if !front.Equal(d) || back.TotalBits() != 0 {
		t.Errorf("Split(100) = %v, %v", front, back)
	}
}

func TestData_SplitUnaligned(t *testing.T) {
	// 0x0FFF over 12 bits, split at 4: front 0xF (4 bits), back 0xFF (8 bits).
	d := NewData([]byte{0xFF, 0x0F}, 12)
	front, back := d.Split(4)
	if front.TotalBits() != 4 || !bytes.Equal(front.Bytes(), []byte{0x0F}) {
		t.Errorf("front = %v, want [0f] (4 bits)", front)
	}
	if back.TotalBits() != 8 || !bytes.Equal(back.Bytes(), []byte{0xFF}) {
		t.Errorf("back = %v, want [ff] (8 bits)", back)
	}
}

func TestData_SplitShiftsAcrossWords(t *testing.T) {
	// 160 bits where bit i is set iff i%3 == 0; after dropping 5 bits,
	// bit j of the back must be set iff (j+5)%3 == 0.
	w := NewBufferWriter()
	for i := 0; i < 160; i++ {
		var b uint32
		if i%3 == 0 {
			b = 1
		}
		_ = w.WriteBits(b, 1)
	}
	d := w.Data()

	_, back := d.Split(5)
	if back.TotalBits() != 155 {
		t.Fatalf("back TotalBits = %d, want 155", back.TotalBits())
	}
	r := back.Reader()
	for j := 0; j < 155; j++ {
		bit, err := r.Get1Bit()
		if err != nil {
			t.Fatal(err)
		}
		want := uint8(0)
		if (j+5)%3 == 0 {
			want = 1
		}
		if bit != want {
			t.Fatalf("bit %d = %d, want %d", j, bit, want)
		}
	}
}

func TestData_ConcatUnaligned(t *testing.T) {
	a := NewData([]byte{0x05}, 3) // 101
	b := NewData([]byte{0x3F}, 6) // 111111
	a.Concat(b)
	if a.TotalBits() != 9 {
		t.Fatalf("TotalBits = %d, want 9", a.TotalBits())
	}
	// 101 then 111111 -> 0b1_1111_1101
	if got := a.Bytes(); !bytes.Equal(got, []byte{0xFD, 0x01}) {
		t.Errorf("Bytes = % X, want FD 01", got)
	}
	if b.TotalBits() != 6 || !bytes.Equal(b.Bytes(), []byte{0x3F}) {
		t.Error("Concat modified its argument")
	}
}

func TestData_ConcatEmpty(t *testing.T) {
	a := NewData([]byte{0x05}, 3)
	a.Concat(Data{})
	if a.TotalBits() != 3 {
		t.Errorf("TotalBits = %d, want 3", a.TotalBits())
	}

	var empty Data
	empty.Concat(a)
	if !empty.Equal(a) {
		t.Errorf("empty.Concat(a) = %v, want %v", empty, a)
	}
}

// TestData_SplitConcatRoundTrip checks that splitting at every position and
// concatenating the halves reproduces the original bit string.
func TestData_SplitConcatRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, totalBits := range []int{1, 7, 8, 9, 63, 64, 65, 77, 200} {
		raw := make([]byte, BytesFor(totalBits))
		rng.Read(raw)
		d := NewData(raw, totalBits)

		for k := 0; k <= totalBits; k++ {
			front, back := d.Split(k)
			if front.TotalBits()+back.TotalBits() != totalBits {
				t.Fatalf("bits=%d k=%d: lengths %d+%d", totalBits, k, front.TotalBits(), back.TotalBits())
			}
			front.Concat(back)
			if !front.Equal(d) {
				t.Fatalf("bits=%d k=%d: got %v, want %v", totalBits, k, front, d)
			}
		}
	}
}

func TestData_String(t *testing.T) {
	d := NewData([]byte{0xAB, 0x01}, 9)
	if got, want := d.String(), "[ab 01] (9 bits)"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}
