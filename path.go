package mangle

import (
	"fmt"
	"strconv"
	"strings"
)

// Namespace is the category of a path segment. The set is closed and
// versioned by the grammar; each non-crate namespace selects the tag
// letter of its `N` production.
type Namespace byte

const (
	// NamespaceCrate marks the crate-root segment. It carries no tag
	// letter of its own; crate roots render as a `C` production.
	NamespaceCrate Namespace = 'c'
	// NamespaceType is the type namespace: modules, types, traits.
	NamespaceType Namespace = 't'
	// NamespaceValue is the value namespace: functions, consts, statics.
	NamespaceValue Namespace = 'v'
	// NamespaceClosure tags compiler-generated closure items.
	NamespaceClosure Namespace = 'C'
	// NamespaceShim tags compiler-generated shim items.
	NamespaceShim Namespace = 'S'
)

func (ns Namespace) valid() bool {
	switch ns {
	case NamespaceCrate, NamespaceType, NamespaceValue, NamespaceClosure, NamespaceShim:
		return true
	}
	return false
}

// PathSegment is one namespace-qualified step of a path. The
// disambiguator distinguishes name-identical siblings and defaults to 0
// for unambiguous names.
type PathSegment struct {
	Name          string
	Namespace     Namespace
	Disambiguator uint64
}

// Path is an ordered, non-empty sequence of segments rooted at a crate
// identifier. GenericArgs, when present, turn the path into an
// instantiation production `I <path> {<generic-arg>} E`.
// InstantiatingCrate, when set, names the crate the instantiation
// originates from; EncodeSymbol appends it after the path.
type Path struct {
	Segments           []PathSegment
	GenericArgs        []GenericArg
	InstantiatingCrate *PathSegment
}

func validateSegments(segs []PathSegment) error {
	if len(segs) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}
	if segs[0].Namespace != NamespaceCrate {
		return fmt.Errorf("%w: path must be rooted at a crate segment, got namespace %q",
			ErrInvalidArgument, segs[0].Namespace)
	}
	for _, s := range segs[1:] {
		if !s.Namespace.valid() || s.Namespace == NamespaceCrate {
			return fmt.Errorf("%w: namespace %q in path segment %q",
				ErrInvalidArgument, s.Namespace, s.Name)
		}
	}
	return nil
}

// prefixKey builds the structural identity of a path prefix. Keys are
// semantic, not textual: segment names are length-prefixed so that two
// different paths can never produce the same key, even when their
// rendered text would coincide.
func prefixKey(segs []PathSegment) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteByte(byte(s.Namespace))
		sb.WriteString(strconv.Itoa(len(s.Name)))
		sb.WriteByte(':')
		sb.WriteString(s.Name)
		sb.WriteByte('#')
		sb.WriteString(strconv.FormatUint(s.Disambiguator, 10))
		sb.WriteByte(';')
	}
	return sb.String()
}

func instantiationKey(segs []PathSegment, args []GenericArg) string {
	var sb strings.Builder
	sb.WriteString(prefixKey(segs))
	sb.WriteString("I[")
	for _, a := range args {
		a.argKey(&sb)
		sb.WriteByte(',')
	}
	sb.WriteByte(']')
	return sb.String()
}

// printPath renders a full path, wrapping it in an instantiation
// production when generic arguments are present.
func (m *Mangler) printPath(p Path) error {
	if err := validateSegments(p.Segments); err != nil {
		return err
	}
	if len(p.GenericArgs) == 0 {
		return m.printPathPrefix(p.Segments)
	}
	key := instantiationKey(p.Segments, p.GenericArgs)
	if pos, ok := m.paths[key]; ok {
		m.pushBackref(pos)
		return nil
	}
	start := m.out.Len()
	m.out.WriteByte('I')
	if err := m.printPathPrefix(p.Segments); err != nil {
		return err
	}
	for _, a := range p.GenericArgs {
		if err := a.printArg(m); err != nil {
			return err
		}
	}
	m.out.WriteByte('E')
	m.paths[key] = start
	return nil
}

// printPathPrefix renders the prefix segs[0:n], replacing it with a
// back-reference when the identical prefix was already emitted in this
// symbol. The replacement is unconditional: an eligible node is always
// compressed, which keeps encodings deterministic and minimal for the
// given traversal order.
func (m *Mangler) printPathPrefix(segs []PathSegment) error {
	key := prefixKey(segs)
	if pos, ok := m.paths[key]; ok {
		tracer().Debugf("backref to path prefix at offset %d", pos)
		m.pushBackref(pos)
		return nil
	}
	start := m.out.Len()
	last := segs[len(segs)-1]
	if len(segs) == 1 {
		m.out.WriteByte('C')
		m.PushDisambiguator(last.Disambiguator)
		if err := m.PushIdent(last.Name); err != nil {
			return err
		}
	} else {
		err := m.PathAppendNS(func(m *Mangler) error {
			return m.printPathPrefix(segs[:len(segs)-1])
		}, last.Namespace, last.Disambiguator, last.Name)
		if err != nil {
			return err
		}
	}
	m.paths[key] = start
	return nil
}

// EncodeCrateRoot renders a bare crate-root production, e.g.
// ("mycrate", 0) becomes "C7mycrate".
func EncodeCrateRoot(name string, disambiguator uint64) (string, error) {
	m := newMangler("")
	seg := PathSegment{Name: name, Namespace: NamespaceCrate, Disambiguator: disambiguator}
	if err := m.printPathPrefix([]PathSegment{seg}); err != nil {
		return "", err
	}
	return m.String(), nil
}

// EncodeSimplePath renders a flat segment list as a path production
// without the symbol prefix, e.g. mycrate::module::function becomes
// "NvNtC7mycrate6module8function". The first segment must be the crate
// root. An empty segment list returns ErrInvalidArgument.
func EncodeSimplePath(segments []PathSegment) (string, error) {
	m := newMangler("")
	if err := m.printPath(Path{Segments: segments}); err != nil {
		return "", err
	}
	return m.String(), nil
}

// EncodeSymbol assembles a complete linker-legal symbol: the `_R`
// prefix, the mangled path, and, when the path names a generic
// instantiation with a known originating crate, the instantiating-crate
// suffix (which normally collapses to a back-reference).
func EncodeSymbol(p Path) (string, error) {
	m := NewMangler()
	if err := m.printPath(p); err != nil {
		return "", err
	}
	if p.InstantiatingCrate != nil {
		ic := *p.InstantiatingCrate
		if ic.Namespace != NamespaceCrate {
			return "", fmt.Errorf("%w: instantiating crate must be a crate segment, got namespace %q",
				ErrInvalidArgument, ic.Namespace)
		}
		if err := m.printPathPrefix([]PathSegment{ic}); err != nil {
			return "", err
		}
	}
	return m.String(), nil
}
