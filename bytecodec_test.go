package wordcodec

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestEncodeUint32(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
		want  []byte
	}{
		{"zero", 0, []byte{0, 0, 0, 0}},
		{"example", 0x12345678, []byte{0x12, 0x34, 0x56, 0x78}},
		{"max", math.MaxUint32, []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"low byte", 0x000000AB, []byte{0, 0, 0, 0xAB}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeUint32(tt.value)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EncodeUint32(%#x) = %X, want %X", tt.value, got, tt.want)
			}
			if back := DecodeUint32(got, 0); back != tt.value {
				t.Errorf("DecodeUint32(EncodeUint32(%#x)) = %#x", tt.value, back)
			}
		})
	}
}

func TestDecodeUint32_Offset(t *testing.T) {
	buf := []byte{0xFF, 0x12, 0x34, 0x56, 0x78}
	if got := DecodeUint32(buf, 1); got != 0x12345678 {
		t.Errorf("DecodeUint32(buf, 1) = %#x, want 0x12345678", got)
	}
}

func TestDecodeUint32_ShortBuffer(t *testing.T) {
	tests := []struct {
		name   string
		buf    []byte
		offset int
	}{
		{"empty", nil, 0},
		{"three bytes", []byte{1, 2, 3}, 0},
		{"offset past window", []byte{1, 2, 3, 4}, 1},
		{"offset past end", []byte{1, 2, 3, 4}, 9},
		{"negative offset", []byte{1, 2, 3, 4}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeUint32(tt.buf, tt.offset); got != 0 {
				t.Errorf("DecodeUint32(%X, %d) = %#x, want 0", tt.buf, tt.offset, got)
			}
			if _, err := Reject.Uint32(tt.buf, tt.offset); !errors.Is(err, ErrShortBuffer) {
				t.Errorf("Reject.Uint32() error = %v, want ErrShortBuffer", err)
			}
		})
	}
}

func TestEncodeUint64_Layout(t *testing.T) {
	got := EncodeUint64(0x0123456789ABCDEF)
	want := []byte{0x89, 0xAB, 0xCD, 0xEF, 0x01, 0x23, 0x45, 0x67}
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeUint64() = %X, want %X", got, want)
	}
	if back := DecodeUint64(got, 0); back != 0x0123456789ABCDEF {
		t.Errorf("DecodeUint64() = %#x, want 0x0123456789ABCDEF", back)
	}
}

func TestUint64_Roundtrip(t *testing.T) {
	values := []uint64{0, 1, math.MaxUint32, math.MaxUint32 + 1, math.MaxUint64, 0xDEADBEEF00000000}
	for _, v := range values {
		buf := AppendUint64([]byte{0xAA}, v)
		if got := DecodeUint64(buf, 1); got != v {
			t.Errorf("DecodeUint64(AppendUint64(%#x)) = %#x", v, got)
		}
	}
}

func TestDecodeUint64_LowHalfOnly(t *testing.T) {
	buf := EncodeUint64(0x0123456789ABCDEF)[:6]
	if got := DecodeUint64(buf, 0); got != 0x89ABCDEF {
		t.Errorf("DecodeUint64(short) = %#x, want 0x89ABCDEF", got)
	}
	if _, err := Reject.Uint64(buf, 0); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("Reject.Uint64() error = %v, want ErrShortBuffer", err)
	}
}

func TestDecodeUint64_NegativeOffset(t *testing.T) {
	buf := EncodeUint64(0x0123456789ABCDEF)
	for _, offset := range []int{-8, -7, -4, -1} {
		if got := DecodeUint64(buf, offset); got != 0 {
			t.Errorf("DecodeUint64(buf, %d) = %#x, want 0", offset, got)
		}
		if got := DecodeDoubleAt(buf, offset); got != 0 {
			t.Errorf("DecodeDoubleAt(buf, %d) = %v, want 0", offset, got)
		}
		if _, err := Reject.Uint64(buf, offset); !errors.Is(err, ErrShortBuffer) {
			t.Errorf("Reject.Uint64(buf, %d) error = %v, want ErrShortBuffer", offset, err)
		}
	}
}

func TestDouble_Roundtrip(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"zero", 0.0},
		{"negative zero", math.Copysign(0, -1)},
		{"negative", -1234.5678},
		{"full mantissa", math.Nextafter(1, 2)},
		{"pi", math.Pi},
		{"smallest subnormal", math.SmallestNonzeroFloat64},
		{"max", math.MaxFloat64},
		{"infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeDouble(EncodeDouble(tt.value))
			if math.Float64bits(got) != math.Float64bits(tt.value) {
				t.Errorf("DecodeDouble(EncodeDouble(%v)) = %v, bits differ", tt.value, got)
			}
		})
	}
}

func TestEncodeDouble_UsesUint64Layout(t *testing.T) {
	f := 1.5
	if got, want := EncodeDouble(f), EncodeUint64(math.Float64bits(f)); !bytes.Equal(got, want) {
		t.Errorf("EncodeDouble(1.5) = %X, want %X", got, want)
	}
	buf := append([]byte{0, 0}, EncodeDouble(f)...)
	if got := DecodeDoubleAt(buf, 2); got != f {
		t.Errorf("DecodeDoubleAt() = %v, want %v", got, f)
	}
}

func TestDouble_NaNBitsPreserved(t *testing.T) {
	nan := math.Float64frombits(0x7FF8000000000123)
	got := DecodeDouble(EncodeDouble(nan))
	if math.Float64bits(got) != 0x7FF8000000000123 {
		t.Errorf("NaN payload changed: %#x", math.Float64bits(got))
	}
}

func TestString_Roundtrip(t *testing.T) {
	tests := []string{"", "a", "banned-account", "\x00\xff binary", "192.168.0.1"}
	for _, s := range tests {
		if got := DecodeString(EncodeString(s), 0); got != s {
			t.Errorf("DecodeString(EncodeString(%q)) = %q", s, got)
		}
	}
}

func TestDecodeString_Offset(t *testing.T) {
	buf := EncodeString("header:payload")
	tests := []struct {
		name   string
		offset int
		want   string
	}{
		{"start", 0, "header:payload"},
		{"middle", 7, "payload"},
		{"end", len(buf), ""},
		{"beyond end", len(buf) + 5, ""},
		{"negative", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeString(buf, tt.offset); got != tt.want {
				t.Errorf("DecodeString(%d) = %q, want %q", tt.offset, got, tt.want)
			}
		})
	}
}

func TestShortBufferPolicy_String(t *testing.T) {
	if ZeroFill.String() != "zero-fill" || Reject.String() != "reject" {
		t.Errorf("unexpected policy names %q %q", ZeroFill, Reject)
	}
}
