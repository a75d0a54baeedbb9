// Package refutability classifies patterns as refutable or irrefutable and
// extracts the path-indexed runtime checks a refutable pattern compiles to
// (spec §4.2). Grounded on the original implementation's build_cond_for_pat
// / get_conds_for_pat walk, generalized into its own package the way the
// teacher splits each analysis pass into its own directory.
package refutability

import (
	"fmt"

	"github.com/crochet-lang/crochet/internal/ast"
)

// ArrayGapIsRefutable resolves the open question in spec §9 over whether an
// array-pattern gap (`[a, , c]`) should be treated as always-matching
// (irrefutable, the original implementation's behavior) or as an implicit
// `undefined` check (refutable). Defaults to the original's irrefutable
// reading; exposed as a variable rather than a constant so a caller can
// opt into the stricter behavior without a second code path through this
// package. No CLI flag or config key sets it.
var ArrayGapIsRefutable = false

// IsRefutable reports whether matching pat against a value can fail at
// runtime.
func IsRefutable(pat ast.Pattern) bool {
	switch p := pat.(type) {
	case *ast.IdentPattern, *ast.RestPattern, *ast.WildcardPattern:
		return false
	case *ast.LitPattern, *ast.IsPattern:
		return true
	case *ast.ObjectPattern:
		for _, prop := range p.Props {
			switch prop.Kind {
			case ast.ObjPropKeyValue:
				if IsRefutable(prop.Sub) {
					return true
				}
			case ast.ObjPropRest:
				if IsRefutable(prop.Arg) {
					return true
				}
			case ast.ObjPropShorthand:
				// irrefutable, with or without a default.
			}
		}
		return false
	case *ast.ArrayPattern:
		for _, e := range p.Elems {
			if e.Pat == nil {
				if ArrayGapIsRefutable {
					return true
				}
				continue
			}
			if IsRefutable(e.Pat) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// PathElemKind distinguishes the two ways a Path step navigates a value.
type PathElemKind int

const (
	ObjProp PathElemKind = iota
	ArrayIndex
)

// PathElem is one step of a Path: either an object property name or an
// array index.
type PathElem struct {
	Kind  PathElemKind
	Name  string
	Index int
}

// Path is a sequence of selectors from the match scrutinee down to the
// position a Check examines.
type Path []PathElem

func (p Path) String() string {
	s := "$"
	for _, e := range p {
		switch e.Kind {
		case ObjProp:
			s += "." + e.Name
		case ArrayIndex:
			s += fmt.Sprintf("[%d]", e.Index)
		}
	}
	return s
}

// CheckKind enumerates the runtime predicates a refutable sub-pattern
// compiles to.
type CheckKind int

const (
	EqualLit CheckKind = iota
	Typeof
	Instanceof
)

// Check is a runtime predicate paired implicitly with the Path it was
// discovered at in a Condition.
type Check struct {
	Kind CheckKind
	// EqualLit
	Lit *ast.Lit
	// Typeof: one of "string", "number", "boolean"
	// Instanceof: a type name
	Name string
}

// Condition is one (Path, Check) pair produced by ConditionsFor.
type Condition struct {
	Path  Path
	Check Check
}

// primitiveIsKinds are the `is` pattern kinds that compile to a typeof
// check rather than an instanceof check.
var primitiveIsKinds = map[string]bool{"string": true, "number": true, "boolean": true}

// ConditionsFor walks pat and returns the list of (Path, Check) conditions
// that must all hold for pat to match its scrutinee (spec §4.2). An
// irrefutable pattern always yields an empty slice.
func ConditionsFor(pat ast.Pattern) []Condition {
	var conds []Condition
	var path Path
	walk(pat, &conds, path)
	return conds
}

func walk(pat ast.Pattern, conds *[]Condition, path Path) {
	switch p := pat.(type) {
	case *ast.IdentPattern, *ast.RestPattern, *ast.WildcardPattern:
		// irrefutable, no conditions contributed.
	case *ast.ObjectPattern:
		for _, prop := range p.Props {
			if prop.Kind != ast.ObjPropKeyValue {
				continue
			}
			walk(prop.Sub, conds, append(append(Path{}, path...), PathElem{Kind: ObjProp, Name: prop.Key}))
		}
	case *ast.ArrayPattern:
		for i, e := range p.Elems {
			if e.Pat == nil {
				continue
			}
			walk(e.Pat, conds, append(append(Path{}, path...), PathElem{Kind: ArrayIndex, Index: i}))
		}
	case *ast.LitPattern:
		*conds = append(*conds, Condition{Path: append(Path{}, path...), Check: Check{Kind: EqualLit, Lit: p.Lit}})
	case *ast.IsPattern:
		if primitiveIsKinds[p.Kind] {
			*conds = append(*conds, Condition{Path: append(Path{}, path...), Check: Check{Kind: Typeof, Name: p.Kind}})
		} else {
			*conds = append(*conds, Condition{Path: append(Path{}, path...), Check: Check{Kind: Instanceof, Name: p.Kind}})
		}
	}
}
