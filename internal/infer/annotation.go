package infer

import (
	"strconv"
	"strings"

	"github.com/crochet-lang/crochet/internal/ast"
	"github.com/crochet-lang/crochet/internal/diag"
	ty "github.com/crochet-lang/crochet/internal/types"
)

// TypeFromAnnotation converts a standalone surface annotation (no type
// parameters in scope) into a semantic Type. declloader uses this to
// resolve the `type:` strings in its YAML manifest (spec-full §B.4)
// against the same annotation grammar the inferencer uses for VarDecl
// and Lambda annotations.
func TypeFromAnnotation(env *ty.Env, ann ast.TypeAnnotation) (ty.Type, error) {
	return typeFromAnnotation(env, ann, nil)
}

// typeFromAnnotation converts the untyped surface annotation ann into a
// semantic Type. typeParams maps a type-parameter name currently in scope
// (from an enclosing TypeDecl or declared Lambda) to the fresh Var it was
// allocated as; a RefAnn matching one of those names resolves directly to
// the Var instead of becoming a Ref.
func typeFromAnnotation(env *ty.Env, ann ast.TypeAnnotation, typeParams map[string]*ty.Var) (ty.Type, error) {
	switch a := ann.(type) {
	case *ast.KeywordAnn:
		return &ty.Keyword{Name: keywordByName(a.Name)}, nil
	case *ast.LitAnn:
		return litAnnToType(a)
	case *ast.RefAnn:
		if v, ok := typeParams[a.Name]; ok {
			return v, nil
		}
		args := make([]ty.Type, len(a.TypeArgs))
		for i, arg := range a.TypeArgs {
			t, err := typeFromAnnotation(env, arg, typeParams)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return &ty.Ref{Name: a.Name, TypeArgs: args}, nil
	case *ast.FuncAnn:
		local := typeParams
		var ownParams []*ty.Var
		if len(a.TypeParams) > 0 {
			local = make(map[string]*ty.Var, len(typeParams)+len(a.TypeParams))
			for k, v := range typeParams {
				local[k] = v
			}
			for _, name := range a.TypeParams {
				v := env.Fresh()
				local[name] = v
				ownParams = append(ownParams, v)
			}
		}
		params := make([]ty.FnParam, len(a.Params))
		for i, p := range a.Params {
			t, err := typeFromAnnotation(env, p.Ann, local)
			if err != nil {
				return nil, err
			}
			params[i] = ty.FnParam{Name: p.Name, Type: t, Optional: p.Optional}
		}
		ret, err := typeFromAnnotation(env, a.Return, local)
		if err != nil {
			return nil, err
		}
		lam := &ty.Lam{Params: params, Ret: ret}
		if len(ownParams) == 0 {
			return lam, nil
		}
		return &ty.Generic{Inner: lam, Params: ownParams}, nil
	case *ast.ObjectAnn:
		elems := make([]ty.ObjectElem, len(a.Elems))
		for i, e := range a.Elems {
			switch e.Kind {
			case ast.ObjAnnProp:
				t, err := typeFromAnnotation(env, e.Ann, typeParams)
				if err != nil {
					return nil, err
				}
				elems[i] = ty.ObjectElem{Kind: ty.ElemProp, Name: e.Name, Optional: e.Optional, Mutable: e.Mutable, PropType: t}
			case ast.ObjAnnIndex:
				key, err := typeFromAnnotation(env, e.KeyAnn, typeParams)
				if err != nil {
					return nil, err
				}
				val, err := typeFromAnnotation(env, e.Ann, typeParams)
				if err != nil {
					return nil, err
				}
				elems[i] = ty.ObjectElem{Kind: ty.ElemIndex, KeyType: key, ValueType: val, IndexMutable: e.Mutable}
			case ast.ObjAnnCall, ast.ObjAnnConstructor:
				callable, err := typeFromAnnotation(env, e.Callable, typeParams)
				if err != nil {
					return nil, err
				}
				kind := ty.ElemCall
				if e.Kind == ast.ObjAnnConstructor {
					kind = ty.ElemConstructor
				}
				elems[i] = ty.ObjectElem{Kind: kind, Callable: callable.(*ty.Lam)}
			}
		}
		return &ty.Object{Elems: elems}, nil
	case *ast.ThisAnn:
		return &ty.This{}, nil
	case *ast.TupleAnn:
		elems := make([]ty.Type, len(a.Elems))
		for i, e := range a.Elems {
			t, err := typeFromAnnotation(env, e, typeParams)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return &ty.Tuple{Elems: elems}, nil
	case *ast.ArrayAnn:
		t, err := typeFromAnnotation(env, a.Elem, typeParams)
		if err != nil {
			return nil, err
		}
		return &ty.Array{Elem: t}, nil
	case *ast.RestAnn:
		t, err := typeFromAnnotation(env, a.Elem, typeParams)
		if err != nil {
			return nil, err
		}
		return &ty.Rest{Elem: t}, nil
	case *ast.UnionAnn:
		members := make([]ty.Type, len(a.Members))
		for i, m := range a.Members {
			t, err := typeFromAnnotation(env, m, typeParams)
			if err != nil {
				return nil, err
			}
			members[i] = t
		}
		return &ty.Union{Members: members}, nil
	case *ast.IntersectionAnn:
		members := make([]ty.Type, len(a.Members))
		for i, m := range a.Members {
			t, err := typeFromAnnotation(env, m, typeParams)
			if err != nil {
				return nil, err
			}
			members[i] = t
		}
		return &ty.Intersection{Members: members}, nil
	case *ast.KeyOfAnn:
		t, err := typeFromAnnotation(env, a.X, typeParams)
		if err != nil {
			return nil, err
		}
		return &ty.KeyOf{X: t}, nil
	case *ast.IndexAccessAnn:
		obj, err := typeFromAnnotation(env, a.Object, typeParams)
		if err != nil {
			return nil, err
		}
		idx, err := typeFromAnnotation(env, a.Index, typeParams)
		if err != nil {
			return nil, err
		}
		return &ty.IndexAccess{Object: obj, Index: idx}, nil
	default:
		return nil, diag.Unsupported("type annotation", ann.Position())
	}
}

var keywordNames = map[string]ty.KeywordName{
	"number":    ty.KNumber,
	"string":    ty.KString,
	"boolean":   ty.KBoolean,
	"symbol":    ty.KSymbol,
	"null":      ty.KNull,
	"undefined": ty.KUndefined,
	"never":     ty.KNever,
}

func keywordByName(name string) ty.KeywordName {
	if k, ok := keywordNames[strings.ToLower(name)]; ok {
		return k
	}
	return ty.KeywordName(name)
}

// litAnnToType recovers the literal kind and raw value from an annotation's
// canonical textual form: a leading '"' marks a string (value stored with
// its quotes stripped, matching ty.Lit's storage convention), "true"/"false"
// mark a boolean, anything else is a number.
func litAnnToType(a *ast.LitAnn) (*ty.Lit, error) {
	if strings.HasPrefix(a.Value, `"`) {
		unquoted, err := strconv.Unquote(a.Value)
		if err != nil {
			unquoted = strings.Trim(a.Value, `"`)
		}
		return &ty.Lit{Kind: ty.LitString, Value: unquoted}, nil
	}
	if a.Value == "true" || a.Value == "false" {
		return &ty.Lit{Kind: ty.LitBoolean, Value: a.Value}, nil
	}
	return &ty.Lit{Kind: ty.LitNumber, Value: a.Value}, nil
}
