package wordcodec

import "fmt"

// SignedSize is a big integer in signed-size form: magnitude words in
// little-word order and a size whose absolute value is the number of
// significant words and whose sign is the value's sign.
// The zero value is zero with 64-bit words.
type SignedSize struct {
	d    []uint64
	size int
	layout
}

// NewSignedSize returns a zero SignedSize. The word width defaults to Word64.
func NewSignedSize(opts ...Option) *SignedSize {
	return &SignedSize{layout: newLayout(Word64, opts)}
}

// WordBits reports the width of one word.
func (b *SignedSize) WordBits() int {
	return b.layout.bits(Word64)
}

// Size returns the signed word count.
func (b *SignedSize) Size() int {
	return b.size
}

// Len returns the number of significant words.
func (b *SignedSize) Len() int {
	if b.size < 0 {
		return -b.size
	}
	return b.size
}

// Word returns word i of the magnitude, or 0 beyond Len.
func (b *SignedSize) Word(i int) uint64 {
	if i < 0 || i >= b.Len() {
		return 0
	}
	return b.d[i]
}

// Sign returns -1, 0 or +1.
func (b *SignedSize) Sign() int {
	switch {
	case b.size < 0:
		return -1
	case b.size > 0:
		return 1
	}
	return 0
}

// realloc replaces storage with room for n words, keeping the value only if
// it still fits.
func (b *SignedSize) realloc(n int) error {
	if n > b.limit() {
		return fmt.Errorf("%w: need %d words, limit %d", ErrAllocation, n, b.limit())
	}
	if n <= cap(b.d) {
		b.d = b.d[:n]
		return nil
	}
	d := make([]uint64, n)
	copy(d, b.d)
	b.d = d
	return nil
}

// SignMagnitudeWords returns the sign and the significant words.
func (b *SignedSize) SignMagnitudeWords() (bool, []uint64) {
	return b.size < 0, b.d[:b.Len()]
}

// SetSignMagnitudeWords reallocates b to hold words, copies them verbatim
// and sets the signed size. On error b is left unchanged.
func (b *SignedSize) SetSignMagnitudeWords(neg bool, words []uint64) error {
	if err := checkWords(words, b.WordBits()); err != nil {
		return err
	}
	n := normalizedLen(words)
	if err := b.realloc(n); err != nil {
		return err
	}
	copy(b.d, words[:n])
	b.size = n
	if neg {
		b.size = -n
	}
	return nil
}

// Hex renders b as lowercase hexadecimal with a leading '-' when negative.
func (b *SignedSize) Hex() string {
	neg, words := b.SignMagnitudeWords()
	return formatWords(neg, words, b.WordBits(), false)
}

// SetHex parses signed hexadecimal text into b. On error b is left unchanged.
func (b *SignedSize) SetHex(s string) error {
	neg, words, err := parseWords(s, b.WordBits(), b.limit())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return b.SetSignMagnitudeWords(neg, words)
}

// String returns the hex form.
func (b *SignedSize) String() string {
	return b.Hex()
}
