package mangle

import (
	"fmt"
	"strconv"
	"strings"
)

// GenericArg is one argument of an instantiation production: a bound
// lifetime, a type, or a const value.
type GenericArg interface {
	printArg(m *Mangler) error
	argKey(sb *strings.Builder)
}

// Lifetime is a bound lifetime in generic-argument position, given as
// its de Bruijn index. The erased lifetime is Lifetime(0).
type Lifetime uint64

func (l Lifetime) printArg(m *Mangler) error {
	m.out.WriteByte('L')
	m.PushInteger62(uint64(l))
	return nil
}

func (l Lifetime) argKey(sb *strings.Builder) {
	sb.WriteString("L[")
	sb.WriteString(strconv.FormatUint(uint64(l), 10))
	sb.WriteByte(']')
}

// Type is a mangled type node. Basic types render as single tag
// letters; compound types nest and participate in back-reference
// compression.
type Type interface {
	GenericArg
	isType()
}

// BasicType is a primitive type with a fixed single-letter encoding.
type BasicType byte

const (
	Bool  BasicType = 'b'
	Char  BasicType = 'c'
	Str   BasicType = 'e'
	I8    BasicType = 'a'
	I16   BasicType = 's'
	I32   BasicType = 'l'
	I64   BasicType = 'x'
	I128  BasicType = 'n'
	Isize BasicType = 'i'
	U8    BasicType = 'h'
	U16   BasicType = 't'
	U32   BasicType = 'm'
	U64   BasicType = 'y'
	U128  BasicType = 'o'
	Usize BasicType = 'j'
	F32   BasicType = 'f'
	F64   BasicType = 'd'
	Unit  BasicType = 'u'
	Never BasicType = 'z'
	// Placeholder stands for an inferred or elided type.
	Placeholder BasicType = 'p'
	// Variadic marks C-variadic argument lists.
	Variadic BasicType = 'v'
)

func (t BasicType) valid() bool {
	switch t {
	case Bool, Char, Str, I8, I16, I32, I64, I128, Isize,
		U8, U16, U32, U64, U128, Usize, F32, F64, Unit, Never,
		Placeholder, Variadic:
		return true
	}
	return false
}

// RefType is a reference `&T` (R) or `&mut T` (Q). Erased lifetimes are
// omitted from the production, matching the reference toolchain.
type RefType struct {
	Mutable bool
	Elem    Type
}

// PtrType is a raw pointer `*const T` (P) or `*mut T` (O).
type PtrType struct {
	Mutable bool
	Elem    Type
}

// ArrayType is `[T; N]`: the element type followed by the length const.
type ArrayType struct {
	Elem Type
	Len  Const
}

// SliceType is `[T]`.
type SliceType struct {
	Elem Type
}

// TupleType is `(T1, ..., Tn)`, rendered as `T` <types> `E`.
type TupleType struct {
	Elems []Type
}

// NamedType is a nominal type, rendered as a path production
// (instantiated when the path carries generic arguments).
type NamedType struct {
	Path Path
}

func (t BasicType) isType() {}
func (t RefType) isType()   {}
func (t PtrType) isType()   {}
func (t ArrayType) isType() {}
func (t SliceType) isType() {}
func (t TupleType) isType() {}
func (t NamedType) isType() {}

func (t BasicType) printArg(m *Mangler) error { return m.printType(t) }
func (t RefType) printArg(m *Mangler) error   { return m.printType(t) }
func (t PtrType) printArg(m *Mangler) error   { return m.printType(t) }
func (t ArrayType) printArg(m *Mangler) error { return m.printType(t) }
func (t SliceType) printArg(m *Mangler) error { return m.printType(t) }
func (t TupleType) printArg(m *Mangler) error { return m.printType(t) }
func (t NamedType) printArg(m *Mangler) error { return m.printType(t) }

func (t BasicType) argKey(sb *strings.Builder) {
	sb.WriteByte(byte(t))
}

func (t RefType) argKey(sb *strings.Builder) {
	if t.Mutable {
		sb.WriteString("Q[")
	} else {
		sb.WriteString("R[")
	}
	t.Elem.argKey(sb)
	sb.WriteByte(']')
}

func (t PtrType) argKey(sb *strings.Builder) {
	if t.Mutable {
		sb.WriteString("O[")
	} else {
		sb.WriteString("P[")
	}
	t.Elem.argKey(sb)
	sb.WriteByte(']')
}

func (t ArrayType) argKey(sb *strings.Builder) {
	sb.WriteString("A[")
	t.Elem.argKey(sb)
	sb.WriteByte(',')
	t.Len.argKey(sb)
	sb.WriteByte(']')
}

func (t SliceType) argKey(sb *strings.Builder) {
	sb.WriteString("S[")
	t.Elem.argKey(sb)
	sb.WriteByte(']')
}

func (t TupleType) argKey(sb *strings.Builder) {
	sb.WriteString("T[")
	for _, e := range t.Elems {
		e.argKey(sb)
		sb.WriteByte(',')
	}
	sb.WriteByte(']')
}

func (t NamedType) argKey(sb *strings.Builder) {
	sb.WriteString("N[")
	if len(t.Path.GenericArgs) == 0 {
		sb.WriteString(prefixKey(t.Path.Segments))
	} else {
		sb.WriteString(instantiationKey(t.Path.Segments, t.Path.GenericArgs))
	}
	sb.WriteByte(']')
}

// Const is a const value in generic-argument position or an array
// length. The value renders as the type tag followed by lowercase hex
// const-data, `n`-prefixed when negative: 5usize is "j5_".
type Const struct {
	Type  BasicType
	Neg   bool
	Value uint64
}

// UsizeConst is shorthand for the usize const v, the common case for
// array lengths and const generics.
func UsizeConst(v uint64) Const {
	return Const{Type: Usize, Value: v}
}

func (c Const) printArg(m *Mangler) error {
	m.out.WriteByte('K')
	return m.printConst(c)
}

func (c Const) argKey(sb *strings.Builder) {
	sb.WriteString("K[")
	sb.WriteByte(byte(c.Type))
	if c.Neg {
		sb.WriteByte('n')
	}
	sb.WriteString(strconv.FormatUint(c.Value, 10))
	sb.WriteByte(']')
}

// printType renders one type node. Basic types are single letters and
// never cached; compound types consult and update the type
// back-reference table.
func (m *Mangler) printType(t Type) error {
	if bt, ok := t.(BasicType); ok {
		if !bt.valid() {
			return fmt.Errorf("%w: unknown basic type tag %q", ErrInvalidArgument, byte(bt))
		}
		m.out.WriteByte(byte(bt))
		return nil
	}
	var kb strings.Builder
	t.argKey(&kb)
	key := kb.String()
	if pos, ok := m.types[key]; ok {
		tracer().Debugf("backref to type at offset %d", pos)
		m.pushBackref(pos)
		return nil
	}
	start := m.out.Len()
	switch t := t.(type) {
	case RefType:
		if t.Mutable {
			m.out.WriteByte('Q')
		} else {
			m.out.WriteByte('R')
		}
		if err := m.printType(t.Elem); err != nil {
			return err
		}
	case PtrType:
		if t.Mutable {
			m.out.WriteByte('O')
		} else {
			m.out.WriteByte('P')
		}
		if err := m.printType(t.Elem); err != nil {
			return err
		}
	case ArrayType:
		m.out.WriteByte('A')
		if err := m.printType(t.Elem); err != nil {
			return err
		}
		if err := m.printConst(t.Len); err != nil {
			return err
		}
	case SliceType:
		m.out.WriteByte('S')
		if err := m.printType(t.Elem); err != nil {
			return err
		}
	case TupleType:
		m.out.WriteByte('T')
		for _, e := range t.Elems {
			if err := m.printType(e); err != nil {
				return err
			}
		}
		m.out.WriteByte('E')
	case NamedType:
		if err := m.printPath(t.Path); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unsupported type node %T", ErrInvalidArgument, t)
	}
	m.types[key] = start
	return nil
}

// printConst renders one const value, with back-reference compression
// over the (type, value) identity.
func (m *Mangler) printConst(c Const) error {
	if !c.Type.valid() {
		return fmt.Errorf("%w: unknown const type tag %q", ErrInvalidArgument, byte(c.Type))
	}
	var kb strings.Builder
	c.argKey(&kb)
	key := kb.String()
	if pos, ok := m.consts[key]; ok {
		m.pushBackref(pos)
		return nil
	}
	start := m.out.Len()
	m.out.WriteByte(byte(c.Type))
	if c.Neg {
		m.out.WriteByte('n')
	}
	m.out.WriteString(strconv.FormatUint(c.Value, 16))
	m.out.WriteByte('_')
	m.consts[key] = start
	return nil
}
