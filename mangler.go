package mangle

import "strings"

// SymbolPrefix is the legalizing prefix of every complete v0 symbol.
// It encodes the scheme version implicitly: `_R` with no digit between
// `R` and the path is version 0.
const SymbolPrefix = "_R"

// Mangler assembles one symbol in a growable output buffer, tracking
// the byte offsets of emitted productions for back-reference
// compression. A Mangler is good for exactly one symbol: the tables
// are scoped to a single encode and must not be reused across symbols
// or shared between goroutines. Independent Manglers may run in
// parallel without coordination.
type Mangler struct {
	out         strings.Builder
	startOffset int // length of the prefix, excluded from backref offsets

	// Back-reference tables: structural key of a node to the buffer
	// offset of its first full emission. Offsets always point strictly
	// before the reference site, so a left-to-right reader can resolve
	// every backref against already-seen literal productions.
	paths  map[string]int
	types  map[string]int
	consts map[string]int
}

// NewMangler returns a Mangler primed with the `_R` symbol prefix.
func NewMangler() *Mangler {
	return newMangler(SymbolPrefix)
}

func newMangler(prefix string) *Mangler {
	m := &Mangler{
		startOffset: len(prefix),
		paths:       make(map[string]int),
		types:       make(map[string]int),
		consts:      make(map[string]int),
	}
	m.out.WriteString(prefix)
	return m
}

// String returns the symbol text emitted so far.
func (m *Mangler) String() string {
	return m.out.String()
}

// Len returns the current length of the output buffer in bytes,
// including the prefix.
func (m *Mangler) Len() int {
	return m.out.Len()
}

// Push appends s verbatim.
func (m *Mangler) Push(s string) {
	m.out.WriteString(s)
}

// PushInteger62 appends a `_`-terminated base-62 integer.
func (m *Mangler) PushInteger62(x uint64) {
	PushInteger62(x, &m.out)
}

// PushDisambiguator appends a disambiguator production (nothing for 0).
func (m *Mangler) PushDisambiguator(dis uint64) {
	PushDisambiguator(dis, &m.out)
}

// PushIdent appends a length-prefixed identifier production.
func (m *Mangler) PushIdent(ident string) error {
	return PushIdent(ident, &m.out)
}

// PathAppendNS appends one nested-path production:
// `N` + namespace tag + prefix + disambiguator + identifier.
// printPrefix renders the parent path into the same buffer.
func (m *Mangler) PathAppendNS(printPrefix func(*Mangler) error, ns Namespace, disambiguator uint64, name string) error {
	m.out.WriteByte('N')
	m.out.WriteByte(byte(ns))
	if err := printPrefix(m); err != nil {
		return err
	}
	m.PushDisambiguator(disambiguator)
	return m.PushIdent(name)
}

// pushBackref emits `B` + base-62(offset), with the offset taken
// relative to the end of the symbol prefix.
func (m *Mangler) pushBackref(pos int) {
	m.out.WriteByte('B')
	m.PushInteger62(uint64(pos - m.startOffset))
}
