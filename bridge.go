package wordcodec

import (
	"errors"
	"fmt"
)

// Convert sets dst to the value of src.
//
// When both sides use the same word width the normalized words are copied
// directly. Otherwise the value travels through base-16 text, and any failure
// on that path is reported as ErrConversion.
func Convert(dst, src Words) error {
	if src.WordBits() == dst.WordBits() {
		neg, words := src.SignMagnitudeWords()
		return dst.SetSignMagnitudeWords(neg, words)
	}

	if err := dst.SetHex(src.Hex()); err != nil {
		if errors.Is(err, ErrConversion) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return nil
}

// ConvertAToB sets dst to the value of the sign-magnitude src.
// src must be normalized; dst is unchanged on error.
func ConvertAToB(src *SignMag, dst *SignedSize) error {
	if err := src.checkTop(); err != nil {
		return err
	}
	return Convert(dst, src)
}

// ConvertBToA sets dst to the value of the signed-size src.
// dst is unchanged on error.
func ConvertBToA(src *SignedSize, dst *SignMag) error {
	return Convert(dst, src)
}
