package types

// FreeTypeVars returns the set of free (unquantified) Var ids in t, as a
// stable-ordered slice so callers that renumber ids (the normalizer) get
// deterministic output.
func FreeTypeVars(t Type) []*Var {
	seen := map[int]bool{}
	var order []*Var
	var walk func(Type)
	walk = func(t Type) {
		switch t := t.(type) {
		case *Var:
			if !seen[t.M.ID] {
				seen[t.M.ID] = true
				order = append(order, t)
			}
		case *Generic:
			bound := map[int]bool{}
			for _, p := range t.Params {
				bound[p.M.ID] = true
			}
			var inner func(Type)
			inner = func(it Type) {
				if v, ok := it.(*Var); ok {
					if bound[v.M.ID] {
						return
					}
				}
				walk(it)
			}
			walkChildren(t.Inner, inner)
		case *Lam:
			for _, p := range t.Params {
				walk(p.Type)
			}
			walk(t.Ret)
		case *App:
			for _, a := range t.Args {
				walk(a)
			}
			walk(t.Ret)
		case *Object:
			for _, e := range t.Elems {
				if e.PropType != nil {
					walk(e.PropType)
				}
				if e.KeyType != nil {
					walk(e.KeyType)
				}
				if e.ValueType != nil {
					walk(e.ValueType)
				}
				if e.Callable != nil {
					walk(e.Callable)
				}
			}
		case *Ref:
			for _, a := range t.TypeArgs {
				walk(a)
			}
		case *Tuple:
			for _, e := range t.Elems {
				walk(e)
			}
		case *Array:
			walk(t.Elem)
		case *Rest:
			walk(t.Elem)
		case *Union:
			for _, m := range t.Members {
				walk(m)
			}
		case *Intersection:
			for _, m := range t.Members {
				walk(m)
			}
		case *KeyOf:
			walk(t.X)
		case *IndexAccess:
			walk(t.Object)
			walk(t.Index)
		}
	}
	walk(t)
	return order
}

// walkChildren walks t's immediate Var occurrences through f, used by
// FreeTypeVars to thread a bound-variable-aware visitor through a
// Generic's body without duplicating the full switch above.
func walkChildren(t Type, f func(Type)) {
	switch t := t.(type) {
	case *Var:
		f(t)
	case *Lam:
		for _, p := range t.Params {
			walkChildren(p.Type, f)
		}
		walkChildren(t.Ret, f)
	case *App:
		for _, a := range t.Args {
			walkChildren(a, f)
		}
		walkChildren(t.Ret, f)
	case *Object:
		for _, e := range t.Elems {
			if e.PropType != nil {
				walkChildren(e.PropType, f)
			}
			if e.KeyType != nil {
				walkChildren(e.KeyType, f)
			}
			if e.ValueType != nil {
				walkChildren(e.ValueType, f)
			}
			if e.Callable != nil {
				walkChildren(e.Callable, f)
			}
		}
	case *Ref:
		for _, a := range t.TypeArgs {
			walkChildren(a, f)
		}
	case *Tuple:
		for _, e := range t.Elems {
			walkChildren(e, f)
		}
	case *Array:
		walkChildren(t.Elem, f)
	case *Rest:
		walkChildren(t.Elem, f)
	case *Union:
		for _, m := range t.Members {
			walkChildren(m, f)
		}
	case *Intersection:
		for _, m := range t.Members {
			walkChildren(m, f)
		}
	case *KeyOf:
		walkChildren(t.X, f)
	case *IndexAccess:
		walkChildren(t.Object, f)
		walkChildren(t.Index, f)
	}
}

// ftvIDSet returns the ids of t's free variables as a set, for quick
// membership tests. No code in the repository calls it.
func ftvIDSet(t Type) map[int]bool {
	set := map[int]bool{}
	for _, v := range FreeTypeVars(t) {
		set[v.M.ID] = true
	}
	return set
}
