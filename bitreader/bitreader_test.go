package bitreader

import (
	"testing"

	"github.com/kylelemons/godebug/diff"
)

func TestReadU(t *testing.T) {
	var testData = []struct {
		description string
		buf         []byte
		pos         uint
		n           uint
		want        uint64
	}{
		{"byte aligned", []byte{0xff}, 0, 8, 0xff},
		{"nibble", []byte{0xf0}, 0, 4, 0xf},
		{"crosses byte boundary", []byte{0x00, 0xff}, 4, 8, 0x0f},
		{"single bit set", []byte{0x80}, 0, 1, 1},
		{"single bit unset", []byte{0x7f}, 0, 1, 0},
		{"spans three bytes", []byte{0xff, 0xff, 0xff}, 4, 16, 0xffff},
	}

	for _, test := range testData {
		r := New(test.buf)
		if test.pos > 0 {
			if err := r.Skip(test.pos); err != nil {
				t.Errorf("%s: unexpected error skipping: %v", test.description, err)
				continue
			}
		}
		got, err := r.ReadU(test.n)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.description, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: want %#x got %#x", test.description, test.want, got)
		}
	}
}

func TestReadISignExtension(t *testing.T) {
	var testData = []struct {
		description string
		buf         []byte
		n           uint
		want        int64
	}{
		{"positive, top bit clear", []byte{0b01111111}, 8, 127},
		{"negative, top bit set", []byte{0b10000000}, 8, -128},
		{"negative one", []byte{0b11111111}, 8, -1},
		{"16-bit negative", []byte{0xff, 0xfe}, 16, -2},
	}

	for _, test := range testData {
		r := New(test.buf)
		got, err := r.ReadI(test.n)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.description, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: want %d got %d", test.description, test.want, got)
		}
	}
}

func TestOverrun(t *testing.T) {
	r := New([]byte{0xff})
	if _, err := r.ReadU(9); err == nil {
		t.Error("want an error reading past the end of the buffer, got nil")
	}
}

func TestReadBEU(t *testing.T) {
	r := New([]byte{0x00, 0x01, 0x02, 0x03})
	got, err := r.ReadBEU(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := uint64(0x00010203)
	if got != want {
		t.Errorf("want %#x got %#x", want, got)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	_ = w.WriteU(6, 0x2a)
	_ = w.WriteI(10, -100)
	_ = w.WriteBool(true)
	_ = w.WriteU64(40, 0x1234567890)
	w.PadToByte()

	r := New(w.Bytes())
	gotU, _ := r.ReadU(6)
	gotI, _ := r.ReadI(10)
	gotBool, _ := r.ReadBool()
	gotU64, _ := r.ReadU(40)

	if gotU != 0x2a {
		t.Errorf("want 0x2a got %#x", gotU)
	}
	if gotI != -100 {
		t.Errorf("want -100 got %d", gotI)
	}
	if !gotBool {
		t.Error("want true got false")
	}
	if gotU64 != 0x1234567890 {
		t.Error(diff.Diff("1234567890", "mismatch"))
	}
}
