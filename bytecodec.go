package wordcodec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShortBuffer is returned by the Reject policy when a buffer is too short.
var ErrShortBuffer = errors.New("buffer too short")

// ShortBufferPolicy decides what a decoder does when the buffer does not hold
// enough bytes past the offset.
type ShortBufferPolicy uint8

const (
	// ZeroFill decodes a short buffer as 0 and reports no error.
	// The package-level decoders use this policy.
	ZeroFill ShortBufferPolicy = iota

	// Reject reports ErrShortBuffer for a short buffer.
	Reject
)

// String returns the policy name.
func (p ShortBufferPolicy) String() string {
	switch p {
	case ZeroFill:
		return "zero-fill"
	case Reject:
		return "reject"
	default:
		return fmt.Sprintf("ShortBufferPolicy(%d)", uint8(p))
	}
}

func hasBytes(b []byte, offset, n int) bool {
	return offset >= 0 && offset <= len(b)-n
}

// Uint32 decodes 4 big-endian bytes at offset.
func (p ShortBufferPolicy) Uint32(b []byte, offset int) (uint32, error) {
	if !hasBytes(b, offset, 4) {
		if p == Reject {
			return 0, fmt.Errorf("%w: need 4 bytes at offset %d, have %d", ErrShortBuffer, offset, len(b))
		}
		return 0, nil
	}
	return binary.BigEndian.Uint32(b[offset:]), nil
}

// Uint64 decodes the low-word-then-high-word layout at offset. Under ZeroFill
// each half is decoded on its own, so a buffer holding only the low half
// yields just the low 32 bits. A negative offset decodes as 0.
func (p ShortBufferPolicy) Uint64(b []byte, offset int) (uint64, error) {
	if p == Reject && !hasBytes(b, offset, 8) {
		return 0, fmt.Errorf("%w: need 8 bytes at offset %d, have %d", ErrShortBuffer, offset, len(b))
	}
	if offset < 0 {
		return 0, nil
	}
	lo, _ := p.Uint32(b, offset)
	hi, _ := p.Uint32(b, offset+4)
	return uint64(lo) | uint64(hi)<<32, nil
}

// Double decodes an IEEE-754 binary64 stored in the Uint64 layout at offset.
func (p ShortBufferPolicy) Double(b []byte, offset int) (float64, error) {
	n, err := p.Uint64(b, offset)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(n), nil
}

// EncodeUint32 returns v as 4 big-endian bytes.
func EncodeUint32(v uint32) []byte {
	return AppendUint32(make([]byte, 0, 4), v)
}

// AppendUint32 appends v as 4 big-endian bytes.
func AppendUint32(dst []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(dst, v)
}

// DecodeUint32 reads 4 big-endian bytes at offset.
// It returns 0 when fewer than 4 bytes are available (ZeroFill).
func DecodeUint32(b []byte, offset int) uint32 {
	v, _ := ZeroFill.Uint32(b, offset)
	return v
}

// EncodeUint64 returns v as 8 bytes: the low 32 bits big-endian followed by
// the high 32 bits big-endian. This is not a big-endian 64-bit layout.
func EncodeUint64(v uint64) []byte {
	return AppendUint64(make([]byte, 0, 8), v)
}

// AppendUint64 appends v in the EncodeUint64 layout.
func AppendUint64(dst []byte, v uint64) []byte {
	dst = AppendUint32(dst, uint32(v))
	return AppendUint32(dst, uint32(v>>32))
}

// DecodeUint64 is the inverse of EncodeUint64, with DecodeUint32's
// short-buffer behaviour for each half.
func DecodeUint64(b []byte, offset int) uint64 {
	v, _ := ZeroFill.Uint64(b, offset)
	return v
}

// EncodeDouble returns the bit pattern of f in the EncodeUint64 layout.
func EncodeDouble(f float64) []byte {
	return AppendDouble(make([]byte, 0, 8), f)
}

// AppendDouble appends f in the EncodeDouble layout.
func AppendDouble(dst []byte, f float64) []byte {
	return AppendUint64(dst, math.Float64bits(f))
}

// DecodeDouble reads a double written by EncodeDouble from the start of b.
func DecodeDouble(b []byte) float64 {
	return DecodeDoubleAt(b, 0)
}

// DecodeDoubleAt reads a double written by EncodeDouble at offset.
func DecodeDoubleAt(b []byte, offset int) float64 {
	f, _ := ZeroFill.Double(b, offset)
	return f
}

// EncodeString returns the bytes of s, one byte per unit, with no terminator.
func EncodeString(s string) []byte {
	return []byte(s)
}

// DecodeString returns the bytes of b from offset to the end as a string.
// An offset outside b yields "".
func DecodeString(b []byte, offset int) string {
	if offset < 0 || offset >= len(b) {
		return ""
	}
	return string(b[offset:])
}
