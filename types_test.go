package mangle

import (
	"errors"
	"testing"
)

func mangleType(t *testing.T, ty Type) string {
	t.Helper()
	m := NewMangler()
	if err := m.printType(ty); err != nil {
		t.Fatal(err)
	}
	return m.String()
}

func TestBasicTypeTags(t *testing.T) {
	cases := []struct {
		ty   BasicType
		want string
	}{
		{U8, "_Rh"},
		{U16, "_Rt"},
		{U32, "_Rm"},
		{U64, "_Ry"},
		{I8, "_Ra"},
		{I32, "_Rl"},
		{I64, "_Rx"},
		{F32, "_Rf"},
		{F64, "_Rd"},
		{Bool, "_Rb"},
		{Char, "_Rc"},
		{Str, "_Re"},
		{Unit, "_Ru"},
		{Never, "_Rz"},
		{Usize, "_Rj"},
		{Isize, "_Ri"},
	}
	for _, c := range cases {
		if got := mangleType(t, c.ty); got != c.want {
			t.Fatalf("type %q = %q, want %q", byte(c.ty), got, c.want)
		}
	}
}

func TestReferenceTypes(t *testing.T) {
	if got := mangleType(t, RefType{Elem: Str}); got != "_RRe" {
		t.Fatalf("&str = %q, want %q", got, "_RRe")
	}
	if got := mangleType(t, RefType{Mutable: true, Elem: I32}); got != "_RQl" {
		t.Fatalf("&mut i32 = %q, want %q", got, "_RQl")
	}
	if got := mangleType(t, PtrType{Elem: I32}); got != "_RPl" {
		t.Fatalf("*const i32 = %q, want %q", got, "_RPl")
	}
	if got := mangleType(t, PtrType{Mutable: true, Elem: U8}); got != "_ROh" {
		t.Fatalf("*mut u8 = %q, want %q", got, "_ROh")
	}
}

func TestTupleOfReferences(t *testing.T) {
	ty := TupleType{Elems: []Type{
		RefType{Elem: U32},
		RefType{Mutable: true, Elem: I64},
		RefType{Elem: Bool},
	}}
	if got := mangleType(t, ty); got != "_RTRmQxRbE" {
		t.Fatalf("(&u32, &mut i64, &bool) = %q, want %q", got, "_RTRmQxRbE")
	}
}

func TestNestedArrays(t *testing.T) {
	ty := ArrayType{
		Elem: ArrayType{Elem: U32, Len: UsizeConst(4)},
		Len:  UsizeConst(8),
	}
	if got := mangleType(t, ty); got != "_RAAmj4_j8_" {
		t.Fatalf("[[u32; 4]; 8] = %q, want %q", got, "_RAAmj4_j8_")
	}
}

func TestSliceOfMutableArrayRefs(t *testing.T) {
	ty := RefType{Elem: SliceType{Elem: RefType{
		Mutable: true,
		Elem:    ArrayType{Elem: U32, Len: UsizeConst(10)},
	}}}
	// Array lengths are hex const-data: 10 renders as "a".
	if got := mangleType(t, ty); got != "_RRSQAmja_" {
		t.Fatalf("&[&mut [u32; 10]] = %q, want %q", got, "_RRSQAmja_")
	}
}

func TestRepeatedTypeBackref(t *testing.T) {
	arr := ArrayType{Elem: U32, Len: UsizeConst(4)}
	got := mangleType(t, TupleType{Elems: []Type{arr, arr}})
	if got != "_RTAmj4_B0_E" {
		t.Fatalf("([u32; 4], [u32; 4]) = %q, want %q", got, "_RTAmj4_B0_E")
	}
}

func TestRepeatedConstBackref(t *testing.T) {
	// Two distinct array types sharing a length: the const is
	// compressed, the arrays are not.
	got := mangleType(t, TupleType{Elems: []Type{
		ArrayType{Elem: U32, Len: UsizeConst(4)},
		ArrayType{Elem: U16, Len: UsizeConst(4)},
	}})
	if got != "_RTAmj4_AtB2_E" {
		t.Fatalf("([u32; 4], [u16; 4]) = %q, want %q", got, "_RTAmj4_AtB2_E")
	}
}

func TestNegativeConst(t *testing.T) {
	m := NewMangler()
	if err := m.printConst(Const{Type: I32, Neg: true, Value: 1}); err != nil {
		t.Fatal(err)
	}
	if m.String() != "_Rln1_" {
		t.Fatalf("-1i32 = %q, want %q", m.String(), "_Rln1_")
	}
}

func TestNamedTypeArgument(t *testing.T) {
	// Generic ADT in type position: Vec<i32> as
	// std::vec::Vec<i32>, rendered as an instantiated path.
	vec := NamedType{Path: Path{
		Segments: []PathSegment{
			{Name: "std", Namespace: NamespaceCrate},
			{Name: "vec", Namespace: NamespaceType},
			{Name: "Vec", Namespace: NamespaceType},
		},
		GenericArgs: []GenericArg{I32},
	}}
	if got := mangleType(t, vec); got != "_RINtNtC3std3vec3VeclE" {
		t.Fatalf("Vec<i32> = %q, want %q", got, "_RINtNtC3std3vec3VeclE")
	}
}

func TestLifetimeArgument(t *testing.T) {
	crate := PathSegment{Name: "mycrate", Namespace: NamespaceCrate}
	got, err := EncodeSymbol(Path{
		Segments: []PathSegment{
			crate,
			{Name: "lifetime_fn", Namespace: NamespaceValue},
		},
		GenericArgs: []GenericArg{Lifetime(0), Str},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "_RINvC7mycrate11lifetime_fnL_eE" {
		t.Fatalf("got %q, want %q", got, "_RINvC7mycrate11lifetime_fnL_eE")
	}
}

func TestUnknownTypeTag(t *testing.T) {
	m := NewMangler()
	err := m.printType(BasicType('q'))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("unknown tag should report ErrInvalidArgument, got %v", err)
	}
}
