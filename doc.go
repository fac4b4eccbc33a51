/*
Package mangle implements the v0 symbol name mangling scheme of the Rust
compiler toolchain (RFC 2603).

The scheme encodes structured program paths (crate roots, nested modules,
functions, types, implementations) into compact, globally-unique,
linker-legal ASCII symbols. Numbers are written in a terminated base-62
form, identifiers are length-prefixed (with a Punycode transliteration
for non-ASCII names), and repeated substructure is compressed with
back-references so that a symbol never contains two independently
rendered copies of the same path or type.

The package offers two levels of API. The high-level entry points
EncodeSymbol, EncodeSimplePath and EncodeCrateRoot turn a path
descriptor into a finished symbol. The low-level Mangler type and the
free Push* functions expose the individual grammar productions for
callers that assemble custom symbols, e.g. conformance tests.

Encoding is deterministic: the same logical input always yields the
byte-identical symbol, matching the reference toolchain's output.

Further Reading

	https://rust-lang.github.io/rfcs/2603-rust-symbol-name-mangling-v0.html
	https://doc.rust-lang.org/rustc/symbol-mangling/v0.html
	https://www.rfc-editor.org/rfc/rfc3492   (Punycode)

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package mangle

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'mangle'
func tracer() tracing.Trace {
	return tracing.Select("mangle")
}
