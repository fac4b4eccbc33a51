/*
Package symtab collects mangled symbol names for lookup and for
comparison against the symbol table of a real compiled binary.

A Table stores names in a prefix trie, so callers can answer both exact
membership queries and prefix queries ("all symbols instantiated from
crate X") cheaply. ReadNM ingests the output of `nm -g` directly,
keeping only v0-mangled names.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package symtab

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/mangle"
)

// Symbol is one entry of a symbol table.
type Symbol struct {
	Name    string
	Address string // as printed by nm; empty for undefined symbols
	Kind    byte   // nm type letter; 0 when unknown
}

// Table is a set of mangled symbol names with prefix lookup.
// It is not safe for concurrent mutation.
type Table struct {
	names *trie.Trie
	count int
}

// New creates an empty symbol table.
func New() *Table {
	return &Table{names: trie.New()}
}

// Add inserts a bare symbol name.
func (t *Table) Add(name string) {
	t.AddSymbol(Symbol{Name: name})
}

// AddSymbol inserts a symbol entry. Re-adding a name overwrites its
// entry without growing the table.
func (t *Table) AddSymbol(sym Symbol) {
	if _, ok := t.names.Find(sym.Name); !ok {
		t.count++
	}
	t.names.Add(sym.Name, sym)
}

// Len returns the number of distinct names in the table.
func (t *Table) Len() int {
	return t.count
}

// Contains reports whether name is present.
func (t *Table) Contains(name string) bool {
	_, ok := t.names.Find(name)
	return ok
}

// Lookup returns the stored entry for name.
func (t *Table) Lookup(name string) (Symbol, bool) {
	node, ok := t.names.Find(name)
	if !ok {
		return Symbol{}, false
	}
	sym, ok := node.Meta().(Symbol)
	return sym, ok
}

// HasPrefix reports whether any stored name starts with prefix.
func (t *Table) HasPrefix(prefix string) bool {
	return t.names.HasKeysWithPrefix(prefix)
}

// WithPrefix returns all stored names starting with prefix, sorted.
func (t *Table) WithPrefix(prefix string) []string {
	found := t.names.PrefixSearch(prefix)
	sort.Strings(found)
	return found
}

// ReadNM ingests an `nm`-style listing, one symbol per line:
//
//	0000000000052e10 T _RNvC7mycrate8function
//	                 U _RNvNtC3std2io5stdin
//
// Only v0-mangled names (prefix `_R`) are kept; other symbols and blank
// lines are skipped. It returns the number of names added.
func (t *Table) ReadNM(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	added := 0
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		var sym Symbol
		switch len(fields) {
		case 0:
			continue
		case 2: // undefined symbols carry no address
			sym = Symbol{Kind: fields[0][0], Name: fields[1]}
		case 3:
			sym = Symbol{Address: fields[0], Kind: fields[1][0], Name: fields[2]}
		default:
			continue // section headers and the like
		}
		if !strings.HasPrefix(sym.Name, mangle.SymbolPrefix) {
			continue
		}
		if !t.Contains(sym.Name) {
			added++
		}
		t.AddSymbol(sym)
	}
	if err := scanner.Err(); err != nil {
		return added, fmt.Errorf("reading symbol listing: %w", err)
	}
	return added, nil
}
