package wordcodec

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math/bits"
)

// SignMag is a big integer in sign-magnitude, word-count form: a negative
// flag, little-word-order words and a count of the words in use.
// The zero value is zero with the native word width.
type SignMag struct {
	neg bool
	d   []uint64
	top int
	layout
}

// NewSignMag returns a zero SignMag. The word width defaults to the native
// width of uint.
func NewSignMag(opts ...Option) *SignMag {
	return &SignMag{layout: newLayout(bits.UintSize, opts)}
}

// NewSignMagFromWords returns a SignMag holding the given sign and
// little-word-order magnitude, normalized.
func NewSignMagFromWords(neg bool, words []uint64, opts ...Option) (*SignMag, error) {
	a := NewSignMag(opts...)
	if err := a.SetSignMagnitudeWords(neg, words); err != nil {
		return nil, err
	}
	return a, nil
}

// WordBits reports the width of one word.
func (a *SignMag) WordBits() int {
	return a.layout.bits(bits.UintSize)
}

// Top returns the number of words in use.
func (a *SignMag) Top() int {
	return a.top
}

// Word returns word i of the magnitude, or 0 beyond Top.
func (a *SignMag) Word(i int) uint64 {
	if i < 0 || i >= a.top {
		return 0
	}
	return a.d[i]
}

// IsNegative reports whether the negative flag is set.
func (a *SignMag) IsNegative() bool {
	return a.neg
}

// Sign returns -1, 0 or +1.
func (a *SignMag) Sign() int {
	switch {
	case a.top == 0:
		return 0
	case a.neg:
		return -1
	}
	return 1
}

// checkTop verifies the used word count is canonical.
func (a *SignMag) checkTop() error {
	if a.top < 0 || a.top > len(a.d) {
		return fmt.Errorf("%w: top %d outside storage of %d words", ErrNotNormalized, a.top, len(a.d))
	}
	if a.top > 0 && a.d[a.top-1] == 0 {
		return fmt.Errorf("%w: word %d is zero", ErrNotNormalized, a.top-1)
	}
	if a.top == 0 && a.neg {
		return fmt.Errorf("%w: negative zero", ErrNotNormalized)
	}
	return nil
}

// expand grows storage to at least n words without changing the value.
func (a *SignMag) expand(n int) error {
	if n > a.limit() {
		return fmt.Errorf("%w: need %d words, limit %d", ErrAllocation, n, a.limit())
	}
	if n <= len(a.d) {
		return nil
	}
	d := make([]uint64, n)
	copy(d, a.d[:a.top])
	a.d = d
	return nil
}

// correctTop drops high-order zero words and clears the sign of zero.
func (a *SignMag) correctTop() {
	a.top = normalizedLen(a.d[:a.top])
	if a.top == 0 {
		a.neg = false
	}
}

// SignMagnitudeWords returns the sign and the words in use.
func (a *SignMag) SignMagnitudeWords() (bool, []uint64) {
	return a.neg, a.d[:a.top]
}

// SetSignMagnitudeWords zeroes a, grows it to hold words, copies them in and
// re-normalizes. On error a is left unchanged.
func (a *SignMag) SetSignMagnitudeWords(neg bool, words []uint64) error {
	if err := checkWords(words, a.WordBits()); err != nil {
		return err
	}
	s := normalizedLen(words)
	if s > a.limit() {
		return fmt.Errorf("%w: need %d words, limit %d", ErrAllocation, s, a.limit())
	}

	a.top = 0
	a.neg = false
	if err := a.expand(s); err != nil {
		return err
	}
	a.top = copy(a.d, words[:s])
	clear(a.d[a.top:])
	a.correctTop()
	a.neg = neg && a.top > 0
	return nil
}

// Hex renders a as uppercase hexadecimal with a leading '-' when negative.
func (a *SignMag) Hex() string {
	return formatWords(a.neg, a.d[:a.top], a.WordBits(), true)
}

// SetHex parses signed hexadecimal text into a. On error a is left unchanged.
func (a *SignMag) SetHex(s string) error {
	neg, words, err := parseWords(s, a.WordBits(), a.limit())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return a.SetSignMagnitudeWords(neg, words)
}

// String returns the hex form.
func (a *SignMag) String() string {
	return a.Hex()
}

// Value implements the driver.Valuer interface for SQL database support.
// The value is stored as its hex text.
func (a *SignMag) Value() (driver.Value, error) {
	return a.Hex(), nil
}

// Scan implements the sql.Scanner interface for SQL database support.
// Accepts hex text as string or []byte.
func (a *SignMag) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return a.SetSignMagnitudeWords(false, nil)
	case string:
		return a.SetHex(v)
	case []byte:
		return a.SetHex(string(v))
	default:
		return fmt.Errorf("cannot scan type %T into SignMag", value)
	}
}

// MarshalJSON implements the json.Marshaler interface.
// Encodes the value as a hex string in JSON.
func (a *SignMag) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Hex())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *SignMag) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return fmt.Errorf("failed to unmarshal SignMag: expected hex string: %w", err)
	}
	if err := a.SetHex(hexStr); err != nil {
		return fmt.Errorf("failed to parse hex string: %w", err)
	}
	return nil
}
