package mangle

import (
	"errors"
	"strings"
)

// Bootstring parameters for Punycode, RFC 3492 section 5.
const (
	punyBase        = 36
	punyTMin        = 1
	punyTMax        = 26
	punySkew        = 38
	punyDamp        = 700
	punyInitialBias = 72
	punyInitialN    = 0x80
)

var errPunyOverflow = errors.New("punycode: delta overflow")

// punycodeEncode encodes input per RFC 3492 with lowercase digits.
// Basic (ASCII) code points are copied verbatim and separated from the
// encoded tail by a single `-`; the separator is omitted when there are
// no basic code points.
func punycodeEncode(input []rune) (string, error) {
	var out strings.Builder
	for _, r := range input {
		if r < punyInitialN {
			out.WriteRune(r)
		}
	}
	b := out.Len()
	h := b
	if b > 0 {
		out.WriteByte('-')
	}

	n := uint64(punyInitialN)
	delta := uint64(0)
	bias := uint64(punyInitialBias)
	for h < len(input) {
		// Smallest code point >= n not yet handled.
		m := uint64(1 << 32)
		for _, r := range input {
			if c := uint64(r); c >= n && c < m {
				m = c
			}
		}
		delta += (m - n) * uint64(h+1)
		if delta >= 1<<32 {
			return "", errPunyOverflow
		}
		n = m
		for _, r := range input {
			c := uint64(r)
			if c < n {
				delta++
			}
			if c == n {
				q := delta
				for k := uint64(punyBase); ; k += punyBase {
					t := uint64(punyTMin)
					if k > bias {
						t = k - bias
					}
					if t > punyTMax {
						t = punyTMax
					}
					if q < t {
						break
					}
					out.WriteByte(punyDigit(t + (q-t)%(punyBase-t)))
					q = (q - t) / (punyBase - t)
				}
				out.WriteByte(punyDigit(q))
				bias = punyAdapt(delta, uint64(h+1), h == b)
				delta = 0
				h++
			}
		}
		delta++
		n++
	}
	return out.String(), nil
}

func punyDigit(d uint64) byte {
	if d < 26 {
		return 'a' + byte(d)
	}
	return '0' + byte(d-26)
}

// punyAdapt is the bias adaptation function of RFC 3492 section 6.1.
func punyAdapt(delta, numpoints uint64, firsttime bool) uint64 {
	if firsttime {
		delta /= punyDamp
	} else {
		delta /= 2
	}
	delta += delta / numpoints
	k := uint64(0)
	for delta > ((punyBase-punyTMin)*punyTMax)/2 {
		delta /= punyBase - punyTMin
		k += punyBase
	}
	return k + (punyBase-punyTMin+1)*delta/(delta+punySkew)
}
