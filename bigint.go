package wordcodec

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/holiman/uint256"
)

// FromBigInt returns a native-width SignMag holding x. A nil x yields nil.
func FromBigInt(x *big.Int) *SignMag {
	if x == nil {
		return nil
	}
	a := NewSignMag()
	ws := x.Bits()
	if len(ws) == 0 {
		return a
	}
	words := make([]uint64, len(ws))
	for i, w := range ws {
		words[i] = uint64(w)
	}
	// big.Int is normalized and native width, so this cannot fail.
	_ = a.SetSignMagnitudeWords(x.Sign() < 0, words)
	return a
}

// BigInt returns a new big.Int holding the value of a.
func (a *SignMag) BigInt() *big.Int {
	neg, words := a.SignMagnitudeWords()
	x := new(big.Int)
	if len(words) == 0 {
		return x
	}
	if a.WordBits() == bits.UintSize {
		ws := make([]big.Word, len(words))
		for i, w := range words {
			ws[i] = big.Word(w)
		}
		x.SetBits(ws)
	} else {
		for i := len(words) - 1; i >= 0; i-- {
			x.Lsh(x, uint(a.WordBits()))
			x.Or(x, new(big.Int).SetUint64(words[i]))
		}
	}
	if neg {
		x.Neg(x)
	}
	return x
}

// SignedSizeFromUint256 returns a 64-bit SignedSize holding x.
func SignedSizeFromUint256(x *uint256.Int) *SignedSize {
	b := NewSignedSize()
	// Four words never exceed the default limit.
	_ = b.SetSignMagnitudeWords(false, x[:])
	return b
}

// Uint256 returns the value of b as a uint256.Int. Negative values and
// values wider than 256 bits fail with ErrRange.
func (b *SignedSize) Uint256() (*uint256.Int, error) {
	neg, words := b.SignMagnitudeWords()
	if neg {
		return nil, fmt.Errorf("%w: negative value %s", ErrRange, b.Hex())
	}

	z := new(uint256.Int)
	perLimb := 64 / b.WordBits()
	if len(words) > len(z)*perLimb {
		return nil, fmt.Errorf("%w: %d words of %d bits exceed 256 bits", ErrRange, len(words), b.WordBits())
	}
	for i, w := range words {
		z[i/perLimb] |= w << (uint(i%perLimb) * uint(b.WordBits()))
	}
	return z, nil
}
