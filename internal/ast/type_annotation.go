package ast

import "strings"

// TypeAnnotation is the surface syntax for TypeScript-style structural
// type annotations (spec §1). It mirrors the shape of internal/types.Type
// one-for-one but lives in the untyped AST, before alias resolution and
// fresh-variable allocation.
type TypeAnnotation interface {
	Node
	typeAnnNode()
}

// TypeAnnBase supplies Span/Position bookkeeping for concrete annotations.
type TypeAnnBase struct {
	Span Span
}

func (t *TypeAnnBase) typeAnnNode()   {}
func (t *TypeAnnBase) Position() Span { return t.Span }

// KeywordAnn is one of Number, String, Boolean, Symbol, Null, Undefined,
// Never.
type KeywordAnn struct {
	TypeAnnBase
	Name string
}

func (k *KeywordAnn) String() string { return k.Name }

// LitAnn is a singleton literal type annotation, e.g. `"red"` or `5`.
type LitAnn struct {
	TypeAnnBase
	Value string
}

func (l *LitAnn) String() string { return l.Value }

// RefAnn is a named alias reference, optionally parameterized.
type RefAnn struct {
	TypeAnnBase
	Name     string
	TypeArgs []TypeAnnotation
}

func (r *RefAnn) String() string { return r.Name }

// FnParamAnn is one parameter of a FuncAnn.
type FnParamAnn struct {
	Name     string
	Ann      TypeAnnotation
	Optional bool
}

// FuncAnn is a function type annotation `(params) => ret`.
type FuncAnn struct {
	TypeAnnBase
	Params     []FnParamAnn
	Return     TypeAnnotation
	TypeParams []string
}

func (f *FuncAnn) String() string { return "(...) => " + f.Return.String() }

// ObjPropAnnKind enumerates the forms an Object annotation element can take.
type ObjPropAnnKind int

const (
	ObjAnnProp ObjPropAnnKind = iota
	ObjAnnIndex
	ObjAnnCall
	ObjAnnConstructor
)

// ObjAnnElem is one element of an ObjectAnn.
type ObjAnnElem struct {
	Kind ObjPropAnnKind
	// Prop
	Name     string
	Optional bool
	Mutable  bool
	// Index
	KeyAnn TypeAnnotation
	// Prop/Index value, or Call/Constructor signature
	Ann      TypeAnnotation
	Callable *FuncAnn
}

// ObjectAnn is a structural object type annotation `{ ... }`.
type ObjectAnn struct {
	TypeAnnBase
	Elems []ObjAnnElem
}

func (o *ObjectAnn) String() string { return "{...}" }

// ThisAnn is the `this` type annotation (no payload).
type ThisAnn struct {
	TypeAnnBase
}

func (t *ThisAnn) String() string { return "this" }

// TupleAnn is a tuple type annotation `[A, B, C]`.
type TupleAnn struct {
	TypeAnnBase
	Elems []TypeAnnotation
}

func (t *TupleAnn) String() string { return "[...]" }

// ArrayAnn is `T[]`.
type ArrayAnn struct {
	TypeAnnBase
	Elem TypeAnnotation
}

func (a *ArrayAnn) String() string { return a.Elem.String() + "[]" }

// RestAnn is `...T`, legal inside TupleAnn.
type RestAnn struct {
	TypeAnnBase
	Elem TypeAnnotation
}

func (r *RestAnn) String() string { return "..." + r.Elem.String() }

// UnionAnn is `A | B | C`.
type UnionAnn struct {
	TypeAnnBase
	Members []TypeAnnotation
}

func (u *UnionAnn) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// IntersectionAnn is `A & B & C`.
type IntersectionAnn struct {
	TypeAnnBase
	Members []TypeAnnotation
}

func (i *IntersectionAnn) String() string {
	parts := make([]string, len(i.Members))
	for idx, m := range i.Members {
		parts[idx] = m.String()
	}
	return strings.Join(parts, " & ")
}

// KeyOfAnn is `keyof T`.
type KeyOfAnn struct {
	TypeAnnBase
	X TypeAnnotation
}

func (k *KeyOfAnn) String() string { return "keyof " + k.X.String() }

// IndexAccessAnn is `T[K]`.
type IndexAccessAnn struct {
	TypeAnnBase
	Object TypeAnnotation
	Index  TypeAnnotation
}

func (i *IndexAccessAnn) String() string { return i.Object.String() + "[" + i.Index.String() + "]" }
