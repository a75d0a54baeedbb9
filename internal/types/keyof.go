package types

import "fmt"

// ResolveKeyOf computes the type `keyof t` denotes: the union of every key
// t admits. Primitive types resolve through ambient alias declarations
// named "Number", "String", "Boolean", "Symbol", "Function" and
// "ReadonlyArray" in env, the same way the teacher's prelude supplies
// method tables for primitives (Supplemented Feature C.2).
func ResolveKeyOf(t Type, env *Env) (Type, error) {
	switch t := t.(type) {
	case *Var:
		return nil, fmt.Errorf("keyof: cannot infer the keys of an unresolved type variable")
	case *Ref:
		inst, err := lookupNamed(env, t.Name)
		if err != nil {
			return nil, err
		}
		return ResolveKeyOf(inst, env)
	case *Object:
		var keys []Type
		for _, e := range t.Elems {
			switch e.Kind {
			case ElemProp:
				keys = append(keys, &Lit{Kind: LitString, Value: e.Name})
			case ElemIndex:
				return nil, fmt.Errorf("keyof: index signatures are not supported")
			}
		}
		return unionMany(keys), nil
	case *Lit:
		base, err := lookupNamed(env, string(t.Kind.Base()))
		if err != nil {
			return nil, err
		}
		return ResolveKeyOf(base, env)
	case *Tuple:
		keys := make([]Type, 0, len(t.Elems)+1)
		for i := range t.Elems {
			keys = append(keys, &Lit{Kind: LitNumber, Value: fmt.Sprintf("%d", i)})
		}
		arr, err := lookupNamed(env, "ReadonlyArray")
		if err != nil {
			return nil, err
		}
		arrKeys, err := ResolveKeyOf(arr, env)
		if err != nil {
			return nil, err
		}
		keys = append(keys, arrKeys)
		return unionMany(keys), nil
	case *Array:
		arr, err := lookupNamed(env, "ReadonlyArray")
		if err != nil {
			return nil, err
		}
		arrKeys, err := ResolveKeyOf(arr, env)
		if err != nil {
			return nil, err
		}
		return unionMany([]Type{&Keyword{Name: KNumber}, arrKeys}), nil
	case *Lam:
		fn, err := lookupNamed(env, "Function")
		if err != nil {
			return nil, err
		}
		return ResolveKeyOf(fn, env)
	case *Keyword:
		switch t.Name {
		case KNumber, KBoolean, KString, KSymbol:
			base, err := lookupNamed(env, string(t.Name))
			if err != nil {
				return nil, err
			}
			return ResolveKeyOf(base, env)
		default:
			return &Keyword{Name: KNever}, nil
		}
	case *Intersection:
		var keys []Type
		for _, m := range t.Members {
			k, err := ResolveKeyOf(m, env)
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
		}
		return unionMany(keys), nil
	case *KeyOf:
		inner, err := ResolveKeyOf(t.X, env)
		if err != nil {
			return nil, err
		}
		return ResolveKeyOf(inner, env)
	case *Generic:
		return ResolveKeyOf(t.Inner, env)
	case *App:
		return nil, fmt.Errorf("keyof: cannot take the keys of an unresolved application")
	case *Union:
		return nil, fmt.Errorf("keyof: keyof a union is not supported")
	case *Rest:
		return nil, fmt.Errorf("keyof: keyof a rest type is not supported")
	case *This:
		return nil, fmt.Errorf("keyof: keyof `this` depends on its binding site")
	case *IndexAccess:
		return nil, fmt.Errorf("keyof: the index access must be resolved before taking its keys")
	default:
		return nil, fmt.Errorf("keyof: unsupported type %s", t)
	}
}

func lookupNamed(env *Env, name string) (Type, error) {
	scheme, ok := env.LookupType(name)
	if !ok {
		return nil, fmt.Errorf("keyof: no ambient declaration for %q", name)
	}
	return Instantiate(env, scheme), nil
}

// unionMany folds a slice of types into a deduplicated Union, collapsing
// to the sole member (or Never for an empty slice).
func unionMany(members []Type) Type {
	if len(members) == 0 {
		return &Keyword{Name: KNever}
	}
	return simplifyUnion(members)
}

// ResolveIndexAccess computes T[K]: the type of property K on object type T.
// K is expected to already be resolved to one or more Lit/Keyword types
// (a Union of Lit string/number keys, most commonly).
func ResolveIndexAccess(object, index Type, env *Env) (Type, error) {
	switch obj := object.(type) {
	case *Ref:
		inst, err := lookupNamed(env, obj.Name)
		if err != nil {
			return nil, err
		}
		return ResolveIndexAccess(inst, index, env)
	case *Generic:
		return ResolveIndexAccess(obj.Inner, index, env)
	case *Object:
		if lit, ok := index.(*Lit); ok && lit.Kind == LitString {
			if prop, found := obj.Prop(lit.Value); found {
				return prop.PropType, nil
			}
			return nil, fmt.Errorf("indexed access: object has no property %q", lit.Value)
		}
		if union, ok := index.(*Union); ok {
			var results []Type
			for _, m := range union.Members {
				r, err := ResolveIndexAccess(obj, m, env)
				if err != nil {
					return nil, err
				}
				results = append(results, r)
			}
			return unionMany(results), nil
		}
		return nil, fmt.Errorf("indexed access: index must be a string literal or union of string literals")
	case *Tuple:
		if lit, ok := index.(*Lit); ok && lit.Kind == LitNumber {
			var i int
			if _, err := fmt.Sscanf(lit.Value, "%d", &i); err != nil || i < 0 || i >= len(obj.Elems) {
				return nil, fmt.Errorf("indexed access: tuple index %s out of range", lit.Value)
			}
			return obj.Elems[i], nil
		}
		return nil, fmt.Errorf("indexed access: tuple must be indexed by a numeric literal")
	case *Array:
		if _, ok := index.(*Keyword); ok {
			return obj.Elem, nil
		}
		if _, ok := index.(*Lit); ok {
			return obj.Elem, nil
		}
		return nil, fmt.Errorf("indexed access: array must be indexed by number")
	default:
		return nil, fmt.Errorf("indexed access: cannot index into %s", object)
	}
}
