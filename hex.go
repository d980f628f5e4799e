package wordcodec

import (
	"encoding/hex"
	"fmt"
	"math/bits"
	"strings"
)

// Hex provides hex encoding/decoding helpers with strict validation.
var Hex = hexHelpers{}

type hexHelpers struct{}

// FromBytes converts bytes to uppercase hex string.
func (hexHelpers) FromBytes(bytes []byte) string {
	return strings.ToUpper(hex.EncodeToString(bytes))
}

// ToBytes parses hex string into bytes.
// Accepts optional "0x" prefix and is case-insensitive.
// Returns error if length is odd or non-hex chars are present.
func (hexHelpers) ToBytes(hexStr string) ([]byte, error) {
	h := trimHexPrefix(hexStr)

	if len(h)%2 != 0 {
		return nil, fmt.Errorf("hex length must be even, got %d", len(h))
	}
	if err := validateHex(h); err != nil {
		return nil, err
	}

	bytes, err := hex.DecodeString(h)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex: %w", err)
	}

	return bytes, nil
}

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)

func trimHexPrefix(h string) string {
	if strings.HasPrefix(h, "0x") || strings.HasPrefix(h, "0X") {
		return h[2:]
	}
	return h
}

func validateHex(h string) error {
	for i := 0; i < len(h); i++ {
		if hexValue(h[i]) < 0 {
			return fmt.Errorf("hex contains non-hex character '%c' at position %d", h[i], i)
		}
	}
	return nil
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// formatWords renders a normalized little-word-order magnitude as signed hex.
// The output length is computed before any byte is written.
func formatWords(neg bool, words []uint64, wordBits int, upper bool) string {
	if len(words) == 0 {
		return "0"
	}
	digits := lowerDigits
	if upper {
		digits = upperDigits
	}

	perWord := wordBits / 4
	top := words[len(words)-1]
	n := (bits.Len64(top)+3)/4 + (len(words)-1)*perWord
	if neg {
		n++
	}

	buf := make([]byte, n)
	i := n
	for wi, w := range words {
		last := wi == len(words)-1
		for d := 0; d < perWord; d++ {
			if last && w == 0 {
				break
			}
			i--
			buf[i] = digits[w&0xf]
			w >>= 4
		}
	}
	if neg {
		buf[0] = '-'
	}
	return string(buf)
}

// parseWords parses signed hex into a normalized little-word-order magnitude.
// "-0" parses as non-negative zero. Text needing more than maxWords words
// fails with ErrAllocation before any word storage is allocated.
func parseWords(s string, wordBits, maxWords int) (neg bool, words []uint64, err error) {
	h := s
	if strings.HasPrefix(h, "-") {
		neg = true
		h = h[1:]
	}
	h = trimHexPrefix(h)
	if h == "" {
		return false, nil, fmt.Errorf("empty hex value %q", s)
	}
	if err := validateHex(h); err != nil {
		return false, nil, err
	}
	h = strings.TrimLeft(h, "0")

	perWord := wordBits / 4
	n := (len(h) + perWord - 1) / perWord
	if n > maxWords {
		return false, nil, fmt.Errorf("%w: need %d words, limit %d", ErrAllocation, n, maxWords)
	}
	words = make([]uint64, n)
	for i := 0; i < len(h); i++ {
		v := uint64(hexValue(h[len(h)-1-i]))
		words[i/perWord] |= v << (4 * uint(i%perWord))
	}
	if len(words) == 0 {
		neg = false
	}
	return neg, words, nil
}
