package lower

import (
	"github.com/crochet-lang/crochet/internal/ast"
	"github.com/crochet-lang/crochet/internal/jsast"
)

// Assignable reports whether pat may sit at the root of a destructuring
// declaration. Literal and wildcard root patterns are rejected (spec
// §4.3, diag.NonAssignablePattern / LOW002) since they bind nothing and a
// `const` declaration requires a binding target.
func Assignable(pat ast.Pattern) bool {
	switch pat.(type) {
	case *ast.LitPattern, *ast.WildcardPattern:
		return false
	default:
		return true
	}
}

// convertPattern translates a source Pattern into a JS destructuring
// Pattern. The second return value is false when pat binds no name of its
// own (a bare literal or wildcard) — callers use this to omit the
// position from the enclosing destructure entirely, since its semantics
// are already covered by a refutability.Condition check.
func convertPattern(pat ast.Pattern) (jsast.Pattern, bool) {
	switch p := pat.(type) {
	case *ast.IdentPattern:
		return &jsast.IdentPattern{Name: p.Name}, true
	case *ast.IsPattern:
		return &jsast.IdentPattern{Name: p.Bind}, true
	case *ast.LitPattern, *ast.WildcardPattern:
		return nil, false
	case *ast.RestPattern:
		return convertPattern(p.Inner)
	case *ast.ObjectPattern:
		out := &jsast.ObjectPattern{}
		for _, prop := range p.Props {
			switch prop.Kind {
			case ast.ObjPropShorthand:
				out.Props = append(out.Props, jsast.ObjectPatternProp{Key: prop.Ident})
			case ast.ObjPropKeyValue:
				sub, ok := convertPattern(prop.Sub)
				if !ok {
					continue
				}
				out.Props = append(out.Props, jsast.ObjectPatternProp{Key: prop.Key, Value: sub})
			case ast.ObjPropRest:
				if ident, ok := prop.Arg.(*ast.IdentPattern); ok {
					out.Rest = ident.Name
				}
			}
		}
		return out, true
	case *ast.ArrayPattern:
		out := &jsast.ArrayPattern{}
		for _, e := range p.Elems {
			if e.Pat == nil {
				out.Elems = append(out.Elems, jsast.ArrayPatternElem{})
				continue
			}
			if rest, ok := e.Pat.(*ast.RestPattern); ok {
				if ident, ok := rest.Inner.(*ast.IdentPattern); ok {
					out.Rest = ident.Name
				}
				continue
			}
			sub, ok := convertPattern(e.Pat)
			if !ok {
				out.Elems = append(out.Elems, jsast.ArrayPatternElem{})
				continue
			}
			out.Elems = append(out.Elems, jsast.ArrayPatternElem{Pat: sub})
		}
		return out, true
	default:
		return nil, false
	}
}
