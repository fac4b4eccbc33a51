package mangle

import (
	"fmt"
	"math/big"
	"strings"
)

const base62Digits = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// PushInteger62 appends a `_`-terminated base-62 integer to out, using
// the format specified in RFC 2603 as <base-62-number>:
//   - x = 0 is encoded as just the "_" terminator
//   - x > 0 is encoded as x-1 in base 62, followed by "_",
//     e.g. 1 becomes "0_", 62 becomes "Z_".
func PushInteger62(x uint64, out *strings.Builder) {
	if x > 0 {
		pushBase62(x-1, out)
	}
	out.WriteByte('_')
}

// PushInteger62Big is PushInteger62 for arbitrary-precision values.
// Identifiers and back-reference offsets are bounded in practice, but
// the number encoding itself has no upper limit.
//
// A negative x returns ErrInvalidArgument.
func PushInteger62Big(x *big.Int, out *strings.Builder) error {
	if x.Sign() < 0 {
		return fmt.Errorf("%w: negative base-62 integer %s", ErrInvalidArgument, x)
	}
	if x.Sign() > 0 {
		var m big.Int
		m.Sub(x, big.NewInt(1))
		// big.Int's base-62 digit set is 0-9a-zA-Z, the RFC 2603 alphabet.
		out.WriteString(m.Text(62))
	}
	out.WriteByte('_')
	return nil
}

// EncodeInteger62 returns the base-62 encoding of x as a string.
func EncodeInteger62(x uint64) string {
	var out strings.Builder
	PushInteger62(x, &out)
	return out.String()
}

// pushBase62 writes x in plain base-62, most significant digit first.
func pushBase62(x uint64, out *strings.Builder) {
	if x == 0 {
		out.WriteByte('0')
		return
	}
	var buf [11]byte // ceil(64 / log2(62)) digits suffice for uint64
	i := len(buf)
	for x > 0 {
		i--
		buf[i] = base62Digits[x%62]
		x /= 62
	}
	out.Write(buf[i:])
}

// pushOptInteger62 appends a tag-prefixed optional base-62 integer:
// x = 0 emits nothing, x > 0 emits the tag followed by base-62(x-1).
func pushOptInteger62(tag byte, x uint64, out *strings.Builder) {
	if x == 0 {
		return
	}
	out.WriteByte(tag)
	PushInteger62(x-1, out)
}

// PushDisambiguator appends a disambiguator production to out, using
// the `s` tag. Disambiguators distinguish items that would otherwise
// have identical paths. The value 0 emits nothing (an unambiguous
// name); the value 1 is the reserved bare-tag form "s_".
func PushDisambiguator(dis uint64, out *strings.Builder) {
	pushOptInteger62('s', dis, out)
}
