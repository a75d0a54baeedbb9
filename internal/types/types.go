// Package types implements crochet's semantic type representation:
// the algebraic type term, free-type-variable computation, substitution,
// the environment, the unifier's supporting machinery, and normalization
// (spec §3.2, §3.3, §4.1.4, §4.1.5).
package types

import (
	"fmt"
	"strings"

	"github.com/crochet-lang/crochet/internal/ast"
)

// Meta carries the bookkeeping every Type variant shares: a monotonically
// allocated id, whether it is frozen against unification, an optional
// source provenance, and whether the binding it types is mutable.
type Meta struct {
	ID         int
	Frozen     bool
	Mutable    bool
	Provenance *ast.Span
}

// Type is the closed sum of type terms described in spec §3.2. The
// unexported marker method keeps the sum closed to this package.
type Type interface {
	fmt.Stringer
	Equals(Type) bool
	Substitute(Substitution) Type
	meta() *Meta
	typeNode()
}

// MetaOf exposes the Meta of any Type for callers outside this package
// (the unifier, the inferencer) that need id/frozen/provenance without
// a type switch.
func MetaOf(t Type) *Meta { return t.meta() }

// KeywordName enumerates the primitive keyword types.
type KeywordName string

const (
	KNumber    KeywordName = "Number"
	KString    KeywordName = "String"
	KBoolean   KeywordName = "Boolean"
	KSymbol    KeywordName = "Symbol"
	KNull      KeywordName = "Null"
	KUndefined KeywordName = "Undefined"
	KNever     KeywordName = "Never"
)

// LitKind enumerates the bases a Lit type may singleton over.
type LitKind int

const (
	LitNumber LitKind = iota
	LitString
	LitBoolean
)

// Base returns the Keyword a literal of this kind widens to.
func (k LitKind) Base() KeywordName {
	switch k {
	case LitNumber:
		return KNumber
	case LitString:
		return KString
	default:
		return KBoolean
	}
}

// ---- Var -------------------------------------------------------------

// Var is a unification variable, optionally constrained.
type Var struct {
	M          Meta
	Constraint Type // optional
}

func (t *Var) meta() *Meta  { return &t.M }
func (t *Var) typeNode()    {}
func (t *Var) String() string {
	return fmt.Sprintf("t%d", t.M.ID)
}
func (t *Var) Equals(o Type) bool {
	ov, ok := o.(*Var)
	return ok && ov.M.ID == t.M.ID
}
func (t *Var) Substitute(s Substitution) Type {
	if repl, ok := s[t.M.ID]; ok {
		return repl
	}
	return t
}

// ---- Generic -----------------------------------------------------------

// Generic wraps a type with the list of variables a scheme quantifies
// over. It must only occur at the root of a Scheme (invariant I2). It is
// produced by Generalize, and by internal/infer for generic type aliases
// and for function annotations with their own type parameters.
type Generic struct {
	M      Meta
	Inner  Type
	Params []*Var
}

func (t *Generic) meta() *Meta { return &t.M }
func (t *Generic) typeNode()   {}
func (t *Generic) String() string {
	names := make([]string, len(t.Params))
	for i, p := range t.Params {
		names[i] = p.String()
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(names, " "), t.Inner)
}
func (t *Generic) Equals(o Type) bool {
	og, ok := o.(*Generic)
	if !ok || len(og.Params) != len(t.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equals(og.Params[i]) {
			return false
		}
	}
	return t.Inner.Equals(og.Inner)
}
func (t *Generic) Substitute(s Substitution) Type {
	// Quantified variables are bound, not free; strip them from s before
	// substituting into the body so capture cannot occur.
	inner := make(Substitution, len(s))
	for k, v := range s {
		inner[k] = v
	}
	for _, p := range t.Params {
		delete(inner, p.M.ID)
	}
	return &Generic{M: t.M, Inner: t.Inner.Substitute(inner), Params: t.Params}
}

// ---- Lit -----------------------------------------------------------

// Lit is a singleton literal type.
type Lit struct {
	M     Meta
	Kind  LitKind
	Value string
}

func (t *Lit) meta() *Meta { return &t.M }
func (t *Lit) typeNode()   {}
func (t *Lit) String() string {
	if t.Kind == LitString {
		return fmt.Sprintf("%q", t.Value)
	}
	return t.Value
}
func (t *Lit) Equals(o Type) bool {
	ol, ok := o.(*Lit)
	return ok && ol.Kind == t.Kind && ol.Value == t.Value
}
func (t *Lit) Substitute(Substitution) Type { return t }

// ---- Keyword -----------------------------------------------------------

// Keyword is one of Number, String, Boolean, Symbol, Null, Undefined, Never.
type Keyword struct {
	M    Meta
	Name KeywordName
}

func (t *Keyword) meta() *Meta          { return &t.M }
func (t *Keyword) typeNode()            {}
func (t *Keyword) String() string       { return string(t.Name) }
func (t *Keyword) Equals(o Type) bool {
	ok, isK := o.(*Keyword)
	return isK && ok.Name == t.Name
}
func (t *Keyword) Substitute(Substitution) Type { return t }

// ---- Lam -----------------------------------------------------------

// FnParam is one parameter of a Lam.
type FnParam struct {
	Name     string
	Type     Type
	Optional bool
}

// Lam is a function type. IsCall marks the synthetic type built at a call
// site; it must never survive outside the unifier (invariant I5).
type Lam struct {
	M      Meta
	Params []FnParam
	Ret    Type
	IsCall bool
}

func (t *Lam) meta() *Meta { return &t.M }
func (t *Lam) typeNode()   {}
func (t *Lam) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		opt := ""
		if p.Optional {
			opt = "?"
		}
		parts[i] = fmt.Sprintf("%s%s: %s", p.Name, opt, p.Type)
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(parts, ", "), t.Ret)
}
func (t *Lam) Equals(o Type) bool {
	ol, ok := o.(*Lam)
	if !ok || len(ol.Params) != len(t.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Type.Equals(ol.Params[i].Type) || t.Params[i].Optional != ol.Params[i].Optional {
			return false
		}
	}
	return t.Ret.Equals(ol.Ret)
}
func (t *Lam) Substitute(s Substitution) Type {
	params := make([]FnParam, len(t.Params))
	for i, p := range t.Params {
		params[i] = FnParam{Name: p.Name, Type: p.Type.Substitute(s), Optional: p.Optional}
	}
	return &Lam{M: t.M, Params: params, Ret: t.Ret.Substitute(s), IsCall: t.IsCall}
}

// ---- App -----------------------------------------------------------

// App is an unresolved type-level application; rarely produced.
type App struct {
	M    Meta
	Args []Type
	Ret  Type
}

func (t *App) meta() *Meta { return &t.M }
func (t *App) typeNode()   {}
func (t *App) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("App(%s) -> %s", strings.Join(parts, ", "), t.Ret)
}
func (t *App) Equals(o Type) bool {
	oa, ok := o.(*App)
	if !ok || len(oa.Args) != len(t.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equals(oa.Args[i]) {
			return false
		}
	}
	return t.Ret.Equals(oa.Ret)
}
func (t *App) Substitute(s Substitution) Type {
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Substitute(s)
	}
	return &App{M: t.M, Args: args, Ret: t.Ret.Substitute(s)}
}

// ---- Object -----------------------------------------------------------

// ObjectElemKind enumerates the forms an Object element can take.
type ObjectElemKind int

const (
	ElemCall ObjectElemKind = iota
	ElemConstructor
	ElemIndex
	ElemProp
)

// ObjectElem is one element of an Object type.
type ObjectElem struct {
	Kind ObjectElemKind
	// ElemProp
	Name     string
	Optional bool
	Mutable  bool
	PropType Type
	// ElemIndex
	KeyType      Type
	IndexMutable bool
	ValueType    Type
	// ElemCall / ElemConstructor
	Callable *Lam
}

func (e ObjectElem) String() string {
	switch e.Kind {
	case ElemProp:
		opt := ""
		if e.Optional {
			opt = "?"
		}
		return fmt.Sprintf("%s%s: %s", e.Name, opt, e.PropType)
	case ElemIndex:
		return fmt.Sprintf("[key: %s]: %s", e.KeyType, e.ValueType)
	case ElemCall:
		return fmt.Sprintf("%s", e.Callable)
	default:
		return fmt.Sprintf("new %s", e.Callable)
	}
}

func (e ObjectElem) equals(o ObjectElem) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case ElemProp:
		return e.Name == o.Name && e.Optional == o.Optional && e.PropType.Equals(o.PropType)
	case ElemIndex:
		return e.KeyType.Equals(o.KeyType) && e.ValueType.Equals(o.ValueType)
	default:
		return e.Callable.Equals(o.Callable)
	}
}

func (e ObjectElem) substitute(s Substitution) ObjectElem {
	out := e
	if e.PropType != nil {
		out.PropType = e.PropType.Substitute(s)
	}
	if e.KeyType != nil {
		out.KeyType = e.KeyType.Substitute(s)
	}
	if e.ValueType != nil {
		out.ValueType = e.ValueType.Substitute(s)
	}
	if e.Callable != nil {
		out.Callable = e.Callable.Substitute(s).(*Lam)
	}
	return out
}

// Object is a structural object type: properties, index signatures, call
// and constructor signatures.
type Object struct {
	M     Meta
	Elems []ObjectElem
}

func (t *Object) meta() *Meta { return &t.M }
func (t *Object) typeNode()   {}
func (t *Object) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, "; ") + "}"
}
func (t *Object) Equals(o Type) bool {
	oo, ok := o.(*Object)
	if !ok || len(oo.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].equals(oo.Elems[i]) {
			return false
		}
	}
	return true
}
func (t *Object) Substitute(s Substitution) Type {
	elems := make([]ObjectElem, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.substitute(s)
	}
	return &Object{M: t.M, Elems: elems}
}

// Prop looks up a named property element.
func (t *Object) Prop(name string) (ObjectElem, bool) {
	for _, e := range t.Elems {
		if e.Kind == ElemProp && e.Name == name {
			return e, true
		}
	}
	return ObjectElem{}, false
}

// ---- Ref -----------------------------------------------------------

// Ref is a named alias reference, resolved through Env.Types.
type Ref struct {
	M        Meta
	Name     string
	TypeArgs []Type
}

func (t *Ref) meta() *Meta { return &t.M }
func (t *Ref) typeNode()   {}
func (t *Ref) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(parts, ", "))
}
func (t *Ref) Equals(o Type) bool {
	or, ok := o.(*Ref)
	if !ok || or.Name != t.Name || len(or.TypeArgs) != len(t.TypeArgs) {
		return false
	}
	for i := range t.TypeArgs {
		if !t.TypeArgs[i].Equals(or.TypeArgs[i]) {
			return false
		}
	}
	return true
}
func (t *Ref) Substitute(s Substitution) Type {
	args := make([]Type, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		args[i] = a.Substitute(s)
	}
	return &Ref{M: t.M, Name: t.Name, TypeArgs: args}
}

// ---- Tuple / Array / Rest ---------------------------------------------

// Tuple is a fixed-length, heterogeneous tuple type.
type Tuple struct {
	M      Meta
	Elems []Type
}

func (t *Tuple) meta() *Meta { return &t.M }
func (t *Tuple) typeNode()   {}
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (t *Tuple) Equals(o Type) bool {
	ot, ok := o.(*Tuple)
	if !ok || len(ot.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equals(ot.Elems[i]) {
			return false
		}
	}
	return true
}
func (t *Tuple) Substitute(s Substitution) Type {
	elems := make([]Type, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.Substitute(s)
	}
	return &Tuple{M: t.M, Elems: elems}
}

// Array is a homogeneous, variable-length array type.
type Array struct {
	M    Meta
	Elem Type
}

func (t *Array) meta() *Meta            { return &t.M }
func (t *Array) typeNode()              {}
func (t *Array) String() string         { return t.Elem.String() + "[]" }
func (t *Array) Equals(o Type) bool {
	oa, ok := o.(*Array)
	return ok && t.Elem.Equals(oa.Elem)
}
func (t *Array) Substitute(s Substitution) Type { return &Array{M: t.M, Elem: t.Elem.Substitute(s)} }

// Rest is the tail-collecting type of a `...rest` pattern or tuple slot.
type Rest struct {
	M    Meta
	Elem Type
}

func (t *Rest) meta() *Meta            { return &t.M }
func (t *Rest) typeNode()              {}
func (t *Rest) String() string         { return "..." + t.Elem.String() }
func (t *Rest) Equals(o Type) bool {
	or, ok := o.(*Rest)
	return ok && t.Elem.Equals(or.Elem)
}
func (t *Rest) Substitute(s Substitution) Type { return &Rest{M: t.M, Elem: t.Elem.Substitute(s)} }

// ---- Union / Intersection ----------------------------------------------

// Union is a disjunction of types; after normalization members are
// pairwise non-equal (invariant I4).
type Union struct {
	M       Meta
	Members []Type
}

func (t *Union) meta() *Meta { return &t.M }
func (t *Union) typeNode()   {}
func (t *Union) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}
func (t *Union) Equals(o Type) bool {
	ou, ok := o.(*Union)
	if !ok || len(ou.Members) != len(t.Members) {
		return false
	}
	for i := range t.Members {
		if !t.Members[i].Equals(ou.Members[i]) {
			return false
		}
	}
	return true
}
func (t *Union) Substitute(s Substitution) Type {
	members := make([]Type, len(t.Members))
	for i, m := range t.Members {
		members[i] = m.Substitute(s)
	}
	return &Union{M: t.M, Members: members}
}

// Intersection is a conjunction of types.
type Intersection struct {
	M       Meta
	Members []Type
}

func (t *Intersection) meta() *Meta { return &t.M }
func (t *Intersection) typeNode()   {}
func (t *Intersection) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " & ")
}
func (t *Intersection) Equals(o Type) bool {
	oi, ok := o.(*Intersection)
	if !ok || len(oi.Members) != len(t.Members) {
		return false
	}
	for i := range t.Members {
		if !t.Members[i].Equals(oi.Members[i]) {
			return false
		}
	}
	return true
}
func (t *Intersection) Substitute(s Substitution) Type {
	members := make([]Type, len(t.Members))
	for i, m := range t.Members {
		members[i] = m.Substitute(s)
	}
	return &Intersection{M: t.M, Members: members}
}

// ---- This / KeyOf / IndexAccess ---------------------------------------

// This is the `this` type.
type This struct{ M Meta }

func (t *This) meta() *Meta            { return &t.M }
func (t *This) typeNode()              {}
func (t *This) String() string         { return "this" }
func (t *This) Equals(o Type) bool     { _, ok := o.(*This); return ok }
func (t *This) Substitute(Substitution) Type { return t }

// KeyOf is `keyof T`.
type KeyOf struct {
	M Meta
	X Type
}

func (t *KeyOf) meta() *Meta    { return &t.M }
func (t *KeyOf) typeNode()      {}
func (t *KeyOf) String() string { return "keyof " + t.X.String() }
func (t *KeyOf) Equals(o Type) bool {
	ok2, ok := o.(*KeyOf)
	return ok && t.X.Equals(ok2.X)
}
func (t *KeyOf) Substitute(s Substitution) Type { return &KeyOf{M: t.M, X: t.X.Substitute(s)} }

// IndexAccess is `T[K]`.
type IndexAccess struct {
	M      Meta
	Object Type
	Index  Type
}

func (t *IndexAccess) meta() *Meta { return &t.M }
func (t *IndexAccess) typeNode()   {}
func (t *IndexAccess) String() string {
	return t.Object.String() + "[" + t.Index.String() + "]"
}
func (t *IndexAccess) Equals(o Type) bool {
	oi, ok := o.(*IndexAccess)
	return ok && t.Object.Equals(oi.Object) && t.Index.Equals(oi.Index)
}
func (t *IndexAccess) Substitute(s Substitution) Type {
	return &IndexAccess{M: t.M, Object: t.Object.Substitute(s), Index: t.Index.Substitute(s)}
}
