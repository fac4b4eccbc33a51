package mangle

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// PushIdent appends an identifier production to out.
//
// Identifiers are length-prefixed: "7example" for "example". A `_`
// separator is inserted after the length when the identifier starts
// with a digit or `_`, so that the decimal prefix stays self-delimiting.
// Identifiers containing non-ASCII code points are transliterated with
// Punycode and tagged with a leading `u`: "gödel" becomes "u8gdel_5qa".
//
// Names must be non-empty and may otherwise contain only `_`, ASCII
// alphanumerics and non-ASCII code points; anything else (spaces,
// punctuation) has no representation in the grammar and returns
// ErrInvalidArgument. Malformed Unicode returns ErrEncoding.
func PushIdent(ident string, out *strings.Builder) error {
	if ident == "" {
		return fmt.Errorf("%w: empty identifier", ErrInvalidArgument)
	}
	transliterate := false
	for i := 0; i < len(ident); i++ {
		switch b := ident[i]; {
		case b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || '0' <= b && b <= '9':
		case b >= 0x80:
			transliterate = true
		default:
			return fmt.Errorf("%w: byte %#x in identifier %q", ErrInvalidArgument, b, ident)
		}
	}

	if transliterate {
		if !utf8.ValidString(ident) {
			return fmt.Errorf("%w: identifier %q is not well-formed UTF-8", ErrEncoding, ident)
		}
		encoded, err := punycodeEncode([]rune(ident))
		if err != nil {
			return fmt.Errorf("%w: identifier %q: %v", ErrEncoding, ident, err)
		}
		// The Punycode delimiter between the basic prefix and the encoded
		// tail becomes `_`; absent when the basic prefix is empty.
		if i := strings.LastIndexByte(encoded, '-'); i >= 0 {
			encoded = encoded[:i] + "_" + encoded[i+1:]
		}
		out.WriteByte('u')
		ident = encoded
	}

	out.WriteString(strconv.Itoa(len(ident)))
	if ident[0] == '_' || '0' <= ident[0] && ident[0] <= '9' {
		out.WriteByte('_')
	}
	out.WriteString(ident)
	return nil
}
