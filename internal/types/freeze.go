package types

// Freeze deep-copies t, marking every Var it contains as frozen so the
// unifier will never bind into it (invariant I1). Declared annotations
// and the schemes produced by `declare` are frozen before they enter the
// environment.
func Freeze(t Type) Type {
	switch t := t.(type) {
	case *Var:
		cp := *t
		cp.M.Frozen = true
		if t.Constraint != nil {
			cp.Constraint = Freeze(t.Constraint)
		}
		return &cp
	case *Generic:
		params := make([]*Var, len(t.Params))
		for i, p := range t.Params {
			params[i] = Freeze(p).(*Var)
		}
		return &Generic{M: t.M, Inner: Freeze(t.Inner), Params: params}
	case *Lam:
		params := make([]FnParam, len(t.Params))
		for i, p := range t.Params {
			params[i] = FnParam{Name: p.Name, Type: Freeze(p.Type), Optional: p.Optional}
		}
		return &Lam{M: t.M, Params: params, Ret: Freeze(t.Ret), IsCall: t.IsCall}
	case *App:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = Freeze(a)
		}
		return &App{M: t.M, Args: args, Ret: Freeze(t.Ret)}
	case *Object:
		elems := make([]ObjectElem, len(t.Elems))
		for i, e := range t.Elems {
			out := e
			if e.PropType != nil {
				out.PropType = Freeze(e.PropType)
			}
			if e.KeyType != nil {
				out.KeyType = Freeze(e.KeyType)
			}
			if e.ValueType != nil {
				out.ValueType = Freeze(e.ValueType)
			}
			if e.Callable != nil {
				out.Callable = Freeze(e.Callable).(*Lam)
			}
			elems[i] = out
		}
		return &Object{M: t.M, Elems: elems}
	case *Ref:
		args := make([]Type, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = Freeze(a)
		}
		return &Ref{M: t.M, Name: t.Name, TypeArgs: args}
	case *Tuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = Freeze(e)
		}
		return &Tuple{M: t.M, Elems: elems}
	case *Array:
		return &Array{M: t.M, Elem: Freeze(t.Elem)}
	case *Rest:
		return &Rest{M: t.M, Elem: Freeze(t.Elem)}
	case *Union:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = Freeze(m)
		}
		return &Union{M: t.M, Members: members}
	case *Intersection:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = Freeze(m)
		}
		return &Intersection{M: t.M, Members: members}
	case *KeyOf:
		return &KeyOf{M: t.M, X: Freeze(t.X)}
	case *IndexAccess:
		return &IndexAccess{M: t.M, Object: Freeze(t.Object), Index: Freeze(t.Index)}
	default:
		return t
	}
}

// FreezeScheme freezes a scheme's body (its quantified Params stay
// logically bound and frozen along with everything else).
func FreezeScheme(s *Scheme) *Scheme {
	return &Scheme{Root: Freeze(s.Root)}
}
