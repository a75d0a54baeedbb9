package ast

import (
	"fmt"
	"strings"
)

// Pattern is the common interface for the pattern sublanguage used by
// VarDecl, Lambda parameters, LetExpr, and Match arms (spec §3.1).
type Pattern interface {
	Node
	patternNode()
}

// PatternBase supplies Span/Position bookkeeping for concrete patterns.
type PatternBase struct {
	Span Span
}

func (p *PatternBase) patternNode()      {}
func (p *PatternBase) Position() Span    { return p.Span }

// IdentPattern binds a single name, optionally as a mutable binding.
type IdentPattern struct {
	PatternBase
	Name    string
	Mutable bool
}

func (p *IdentPattern) String() string {
	if p.Mutable {
		return "mut " + p.Name
	}
	return p.Name
}

// RestPattern is `...inner`, legal inside Array and Object patterns.
type RestPattern struct {
	PatternBase
	Inner Pattern
}

func (p *RestPattern) String() string { return "..." + p.Inner.String() }

// ObjPatternPropKind enumerates the three forms of object-pattern property.
type ObjPatternPropKind int

const (
	ObjPropKeyValue ObjPatternPropKind = iota
	ObjPropShorthand
	ObjPropRest
)

// ObjPatternProp is one property of an ObjectPattern.
type ObjPatternProp struct {
	Kind ObjPatternPropKind
	// KeyValue: Key + Sub are set.
	Key string
	Sub Pattern
	// Shorthand: Ident + optional Default are set.
	Ident   string
	Default Expr
	// Rest: Arg is set.
	Arg Pattern
}

// ArrayElem is one element slot of an ArrayPattern; a gap has Pat == nil.
type ArrayElem struct {
	Pat Pattern
}

// ObjectPattern is `{ props... }`, optionally carrying a structural
// annotation.
type ObjectPattern struct {
	PatternBase
	Props      []ObjPatternProp
	Annotation TypeAnnotation // optional
}

func (p *ObjectPattern) String() string {
	parts := make([]string, len(p.Props))
	for i, prop := range p.Props {
		switch prop.Kind {
		case ObjPropKeyValue:
			parts[i] = fmt.Sprintf("%s: %s", prop.Key, prop.Sub)
		case ObjPropShorthand:
			parts[i] = prop.Ident
		case ObjPropRest:
			parts[i] = "..." + prop.Arg.String()
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ArrayPattern is `[elems...]`, optionally carrying a structural
// annotation. Gaps (`[a, , c]`) are represented by a nil Pat.
type ArrayPattern struct {
	PatternBase
	Elems      []ArrayElem
	Annotation TypeAnnotation // optional
}

func (p *ArrayPattern) String() string {
	parts := make([]string, len(p.Elems))
	for i, e := range p.Elems {
		if e.Pat == nil {
			parts[i] = ""
			continue
		}
		parts[i] = e.Pat.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// LitPattern matches a literal value exactly.
type LitPattern struct {
	PatternBase
	Lit *Lit
}

func (p *LitPattern) String() string { return p.Lit.String() }

// IsPattern is `name is Kind`, binding name and constraining its type:
// Kind one of "string"/"number"/"boolean" maps to the corresponding
// primitive; any other name is a named type reference.
type IsPattern struct {
	PatternBase
	Bind string
	Kind string
}

func (p *IsPattern) String() string { return fmt.Sprintf("%s is %s", p.Bind, p.Kind) }

// WildcardPattern is `_`: matches anything, binds nothing.
type WildcardPattern struct {
	PatternBase
}

func (p *WildcardPattern) String() string { return "_" }
