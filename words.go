package wordcodec

import (
	"errors"
	"fmt"
)

const (
	// Word32 is the width of a 32-bit machine word.
	Word32 = 32

	// Word64 is the width of a 64-bit machine word.
	Word64 = 64

	// DefaultMaxWords bounds word storage growth when no explicit limit is set.
	DefaultMaxWords = 1 << 20
)

var (
	// ErrAllocation is returned when word storage cannot grow to the required size.
	ErrAllocation = errors.New("word storage allocation failed")

	// ErrConversion is returned when the hexadecimal round trip fails.
	ErrConversion = errors.New("hex conversion failed")

	// ErrNotNormalized is returned for a sign-magnitude source whose top word is zero.
	ErrNotNormalized = errors.New("source is not normalized")

	// ErrRange is returned when a value does not fit the requested target type.
	ErrRange = errors.New("value out of range")
)

// Words is the capability shared by both big-integer representations: a
// little-word-order magnitude with a sign, plus a base-16 text form.
type Words interface {
	// WordBits reports the width of one word of the magnitude.
	WordBits() int

	// SignMagnitudeWords returns the sign and the normalized magnitude words.
	// The returned slice aliases internal storage and must not be modified.
	SignMagnitudeWords() (neg bool, words []uint64)

	// SetSignMagnitudeWords replaces the value. Words must fit WordBits.
	SetSignMagnitudeWords(neg bool, words []uint64) error

	// Hex renders the value as signed hexadecimal text.
	Hex() string

	// SetHex replaces the value with the one parsed from signed hexadecimal text.
	SetHex(s string) error
}

// Option configures the word layout of a representation.
type Option func(*layout)

// WithWordBits sets the word width. Only Word32 and Word64 are supported;
// applying the option panics if wordBits is any other value.
func WithWordBits(wordBits int) Option {
	return func(l *layout) {
		if wordBits != Word32 && wordBits != Word64 {
			panic(fmt.Sprintf("wordcodec: unsupported word width %d", wordBits))
		}
		l.wordBits = wordBits
	}
}

// WithMaxWords caps how many words the storage may grow to.
func WithMaxWords(maxWords int) Option {
	return func(l *layout) {
		l.maxWords = maxWords
	}
}

type layout struct {
	wordBits int
	maxWords int
}

func newLayout(defaultBits int, opts []Option) layout {
	l := layout{wordBits: defaultBits}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

func (l layout) bits(defaultBits int) int {
	if l.wordBits == 0 {
		return defaultBits
	}
	return l.wordBits
}

func (l layout) limit() int {
	if l.maxWords <= 0 {
		return DefaultMaxWords
	}
	return l.maxWords
}

// normalizedLen returns the length of words without its high-order zero words.
func normalizedLen(words []uint64) int {
	n := len(words)
	for n > 0 && words[n-1] == 0 {
		n--
	}
	return n
}

// checkWords verifies every word fits the given width.
func checkWords(words []uint64, wordBits int) error {
	if wordBits == Word64 {
		return nil
	}
	for i, w := range words {
		if w>>wordBits != 0 {
			return fmt.Errorf("%w: word %d overflows %d bits", ErrRange, i, wordBits)
		}
	}
	return nil
}
