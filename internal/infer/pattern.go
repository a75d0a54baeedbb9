package infer

import (
	"github.com/crochet-lang/crochet/internal/ast"
	"github.com/crochet-lang/crochet/internal/diag"
	"github.com/crochet-lang/crochet/internal/unify"
	ty "github.com/crochet-lang/crochet/internal/types"
)

// InferPattern implements infer_pattern (spec §4.1.3): it walks pat,
// producing the substitution accumulated along the way, a set of fresh
// assumptions (binder name -> scheme) the caller should extend its env
// with, and the pattern's own type.
func InferPattern(env *ty.Env, pat ast.Pattern, typeParams map[string]*ty.Var) (ty.Substitution, map[string]*ty.Scheme, ty.Type, error) {
	seen := map[string]bool{}
	sub, assumptions, t, err := inferPattern(env, pat, typeParams, seen)
	if err != nil {
		return nil, nil, nil, err
	}

	annotated, ok := withAnnotation(pat)
	if !ok || annotated == nil {
		return sub, assumptions, t, nil
	}
	annType, err := typeFromAnnotation(env, annotated, typeParams)
	if err != nil {
		return nil, nil, nil, err
	}
	s2, err := unify.Unify(annType, t, env)
	if err != nil {
		return nil, nil, nil, wrapUnifyErr(err, annType, t, pat.Position())
	}
	sub = ty.Compose(s2, sub)
	for name, scheme := range assumptions {
		assumptions[name] = ty.NewMonoScheme(ty.Apply(sub, scheme.Root))
	}
	return sub, assumptions, ty.Apply(sub, t), nil
}

func withAnnotation(pat ast.Pattern) (ast.TypeAnnotation, bool) {
	switch p := pat.(type) {
	case *ast.ObjectPattern:
		return p.Annotation, p.Annotation != nil
	case *ast.ArrayPattern:
		return p.Annotation, p.Annotation != nil
	default:
		return nil, false
	}
}

func inferPattern(env *ty.Env, pat ast.Pattern, typeParams map[string]*ty.Var, seen map[string]bool) (ty.Substitution, map[string]*ty.Scheme, ty.Type, error) {
	bind := func(name string) error {
		if seen[name] {
			return diag.DuplicateBinder(name, pat.Position())
		}
		seen[name] = true
		return nil
	}

	switch p := pat.(type) {
	case *ast.IdentPattern:
		if err := bind(p.Name); err != nil {
			return nil, nil, nil, err
		}
		v := env.Fresh()
		return ty.Substitution{}, map[string]*ty.Scheme{p.Name: ty.NewMonoScheme(v)}, v, nil

	case *ast.WildcardPattern:
		return ty.Substitution{}, map[string]*ty.Scheme{}, env.Fresh(), nil

	case *ast.LitPattern:
		t, err := astLitToType(p.Lit)
		if err != nil {
			return nil, nil, nil, err
		}
		return ty.Substitution{}, map[string]*ty.Scheme{}, t, nil

	case *ast.IsPattern:
		if err := bind(p.Bind); err != nil {
			return nil, nil, nil, err
		}
		var t ty.Type
		switch p.Kind {
		case "string":
			t = &ty.Keyword{Name: ty.KString}
		case "number":
			t = &ty.Keyword{Name: ty.KNumber}
		case "boolean":
			t = &ty.Keyword{Name: ty.KBoolean}
		default:
			t = &ty.Ref{Name: p.Kind}
		}
		scheme := ty.Generalize(env, t)
		return ty.Substitution{}, map[string]*ty.Scheme{p.Bind: scheme}, t, nil

	case *ast.RestPattern:
		sub, assumptions, t, err := inferPattern(env, p.Inner, typeParams, seen)
		if err != nil {
			return nil, nil, nil, err
		}
		return sub, assumptions, t, nil

	case *ast.ArrayPattern:
		sub := ty.Substitution{}
		assumptions := map[string]*ty.Scheme{}
		elems := make([]ty.Type, 0, len(p.Elems))
		for _, e := range p.Elems {
			if e.Pat == nil {
				return nil, nil, nil, diag.Unsupported("gap in array pattern during inference", p.Position())
			}
			s, a, t, err := inferPattern(env, e.Pat, typeParams, seen)
			if err != nil {
				return nil, nil, nil, err
			}
			sub = ty.Compose(s, sub)
			for k, v := range a {
				assumptions[k] = v
			}
			if _, ok := e.Pat.(*ast.RestPattern); ok {
				elems = append(elems, &ty.Rest{Elem: t})
			} else {
				elems = append(elems, t)
			}
		}
		return sub, assumptions, &ty.Tuple{Elems: elems}, nil

	case *ast.ObjectPattern:
		sub := ty.Substitution{}
		assumptions := map[string]*ty.Scheme{}
		var propElems []ty.ObjectElem
		var restVar *ty.Var
		for _, prop := range p.Props {
			switch prop.Kind {
			case ast.ObjPropShorthand:
				if err := bind(prop.Ident); err != nil {
					return nil, nil, nil, err
				}
				v := env.Fresh()
				assumptions[prop.Ident] = ty.NewMonoScheme(v)
				propElems = append(propElems, ty.ObjectElem{Kind: ty.ElemProp, Name: prop.Ident, PropType: v, Optional: prop.Default != nil})
			case ast.ObjPropKeyValue:
				s, a, t, err := inferPattern(env, prop.Sub, typeParams, seen)
				if err != nil {
					return nil, nil, nil, err
				}
				sub = ty.Compose(s, sub)
				for k, v := range a {
					assumptions[k] = v
				}
				propElems = append(propElems, ty.ObjectElem{Kind: ty.ElemProp, Name: prop.Key, PropType: t})
			case ast.ObjPropRest:
				ident, ok := prop.Arg.(*ast.IdentPattern)
				if !ok {
					return nil, nil, nil, diag.Unsupported("non-identifier rest target in object pattern", p.Position())
				}
				if err := bind(ident.Name); err != nil {
					return nil, nil, nil, err
				}
				restVar = env.Fresh()
				assumptions[ident.Name] = ty.NewMonoScheme(restVar)
			}
		}
		known := &ty.Object{Elems: propElems}
		if restVar == nil {
			return sub, assumptions, known, nil
		}
		return sub, assumptions, &ty.Intersection{Members: []ty.Type{known, restVar}}, nil

	default:
		return nil, nil, nil, diag.Unsupported("pattern form in inference", pat.Position())
	}
}

func extendWithAssumptions(env *ty.Env, assumptions map[string]*ty.Scheme) *ty.Env {
	if len(assumptions) == 0 {
		return env
	}
	child := env
	for name, scheme := range assumptions {
		child = child.Extend(name, scheme)
	}
	return child
}

func astLitToType(l *ast.Lit) (*ty.Lit, error) {
	switch l.Kind {
	case ast.LitNumber:
		return &ty.Lit{Kind: ty.LitNumber, Value: l.Value}, nil
	case ast.LitString:
		return &ty.Lit{Kind: ty.LitString, Value: l.Value}, nil
	default:
		return &ty.Lit{Kind: ty.LitBoolean, Value: l.Value}, nil
	}
}
