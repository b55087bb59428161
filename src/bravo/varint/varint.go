// Package varint implements the little-endian base-128 variable-length
// integer encoding used throughout the xpatch wire format: lengths,
// offsets, and the tag overflow field all share this one encoding.
package varint

import (
	"github.com/amarbel-llc/xpatch/src/alfa/errors"
)

// MaxBytes bounds a single varint at the width of a uint64 payload (10
// groups of 7 bits). Decode rejects anything longer as overflow.
const MaxBytes = 10

// Append encodes v and appends it to dst, returning the extended slice.
func Append(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// Decode reads a varint from the front of src. It returns the decoded
// value and the number of bytes consumed. An error is returned if src
// is truncated before a terminating byte or the value overflows a
// uint64.
func Decode(src []byte) (value uint64, n int, err error) {
	for shift := uint(0); n < MaxBytes; shift += 7 {
		if n >= len(src) {
			err = errors.ErrMalformedDelta(errors.ReasonTruncatedVarint)
			return 0, 0, err
		}

		b := src[n]
		n++

		if shift == 63 && b > 1 {
			err = errors.ErrMalformedDelta(errors.ReasonVarintOverflow)
			return 0, 0, err
		}

		value |= uint64(b&0x7f) << shift

		if b < 0x80 {
			return value, n, nil
		}
	}

	err = errors.ErrMalformedDelta(errors.ReasonVarintOverflow)
	return 0, 0, err
}

// Len returns the number of bytes Append would produce for v.
func Len(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}
