package types

import "sort"

// Normalize renames a type's free variables (and, for a scheme, its
// quantified parameters) to a canonical, sequential id order and
// simplifies unions/intersections throughout the tree (spec §4.1.5).
// Normalize is idempotent: Normalize(Normalize(t)) == Normalize(t).
func Normalize(t Type) Type {
	return simplify(renameToCanonicalOrder(t))
}

// renameToCanonicalOrder reassigns sequential ids starting at 0 to every
// free variable of t, in the order FreeTypeVars discovers them; if t is a
// Generic, its own quantified Params are then renamed to the ids
// immediately following the free variables.
func renameToCanonicalOrder(t Type) Type {
	mapping := map[int]int{}
	next := 0
	for _, v := range FreeTypeVars(t) {
		if _, ok := mapping[v.M.ID]; !ok {
			mapping[v.M.ID] = next
			next++
		}
	}
	if g, ok := t.(*Generic); ok {
		for _, p := range g.Params {
			if _, ok := mapping[p.M.ID]; !ok {
				mapping[p.M.ID] = next
				next++
			}
		}
	}
	return renameIDs(t, mapping)
}

func renameIDs(t Type, mapping map[int]int) Type {
	switch t := t.(type) {
	case *Var:
		cp := *t
		if newID, ok := mapping[t.M.ID]; ok {
			cp.M.ID = newID
		}
		if t.Constraint != nil {
			cp.Constraint = renameIDs(t.Constraint, mapping)
		}
		return &cp
	case *Generic:
		params := make([]*Var, len(t.Params))
		for i, p := range t.Params {
			params[i] = renameIDs(p, mapping).(*Var)
		}
		return &Generic{M: t.M, Inner: renameIDs(t.Inner, mapping), Params: params}
	case *Lam:
		params := make([]FnParam, len(t.Params))
		for i, p := range t.Params {
			params[i] = FnParam{Name: p.Name, Type: renameIDs(p.Type, mapping), Optional: p.Optional}
		}
		return &Lam{M: t.M, Params: params, Ret: renameIDs(t.Ret, mapping), IsCall: t.IsCall}
	case *App:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = renameIDs(a, mapping)
		}
		return &App{M: t.M, Args: args, Ret: renameIDs(t.Ret, mapping)}
	case *Object:
		elems := make([]ObjectElem, len(t.Elems))
		for i, e := range t.Elems {
			out := e
			if e.PropType != nil {
				out.PropType = renameIDs(e.PropType, mapping)
			}
			if e.KeyType != nil {
				out.KeyType = renameIDs(e.KeyType, mapping)
			}
			if e.ValueType != nil {
				out.ValueType = renameIDs(e.ValueType, mapping)
			}
			if e.Callable != nil {
				out.Callable = renameIDs(e.Callable, mapping).(*Lam)
			}
			elems[i] = out
		}
		return &Object{M: t.M, Elems: elems}
	case *Ref:
		args := make([]Type, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = renameIDs(a, mapping)
		}
		return &Ref{M: t.M, Name: t.Name, TypeArgs: args}
	case *Tuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = renameIDs(e, mapping)
		}
		return &Tuple{M: t.M, Elems: elems}
	case *Array:
		return &Array{M: t.M, Elem: renameIDs(t.Elem, mapping)}
	case *Rest:
		return &Rest{M: t.M, Elem: renameIDs(t.Elem, mapping)}
	case *Union:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = renameIDs(m, mapping)
		}
		return &Union{M: t.M, Members: members}
	case *Intersection:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = renameIDs(m, mapping)
		}
		return &Intersection{M: t.M, Members: members}
	case *KeyOf:
		return &KeyOf{M: t.M, X: renameIDs(t.X, mapping)}
	case *IndexAccess:
		return &IndexAccess{M: t.M, Object: renameIDs(t.Object, mapping), Index: renameIDs(t.Index, mapping)}
	default:
		return t
	}
}

// simplify rebuilds t bottom-up, merging/deduplicating Union and
// Intersection members wherever they occur in the tree.
func simplify(t Type) Type {
	switch t := t.(type) {
	case *Generic:
		return &Generic{M: t.M, Inner: simplify(t.Inner), Params: t.Params}
	case *Lam:
		params := make([]FnParam, len(t.Params))
		for i, p := range t.Params {
			params[i] = FnParam{Name: p.Name, Type: simplify(p.Type), Optional: p.Optional}
		}
		return &Lam{M: t.M, Params: params, Ret: simplify(t.Ret), IsCall: t.IsCall}
	case *App:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = simplify(a)
		}
		return &App{M: t.M, Args: args, Ret: simplify(t.Ret)}
	case *Object:
		elems := make([]ObjectElem, len(t.Elems))
		for i, e := range t.Elems {
			out := e
			if e.PropType != nil {
				out.PropType = simplify(e.PropType)
			}
			if e.KeyType != nil {
				out.KeyType = simplify(e.KeyType)
			}
			if e.ValueType != nil {
				out.ValueType = simplify(e.ValueType)
			}
			elems[i] = out
		}
		return &Object{M: t.M, Elems: sortedElems(elems)}
	case *Tuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = simplify(e)
		}
		return &Tuple{M: t.M, Elems: elems}
	case *Array:
		return &Array{M: t.M, Elem: simplify(t.Elem)}
	case *Rest:
		return &Rest{M: t.M, Elem: simplify(t.Elem)}
	case *Union:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = simplify(m)
		}
		return simplifyUnion(members)
	case *Intersection:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = simplify(m)
		}
		return simplifyIntersection(members)
	default:
		return t
	}
}

// simplifyUnion implements invariant I4 for unions: literal members are
// absorbed by their base keyword when both are present, duplicates are
// removed, and a singleton union collapses to its one element.
func simplifyUnion(members []Type) Type {
	keywordPresent := map[KeywordName]bool{}
	for _, m := range members {
		if k, ok := m.(*Keyword); ok {
			keywordPresent[k.Name] = true
		}
	}
	var out []Type
	for _, m := range members {
		if lit, ok := m.(*Lit); ok && keywordPresent[lit.Kind.Base()] {
			continue
		}
		dup := false
		for _, o := range out {
			if o.Equals(m) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, m)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return &Union{Members: out}
}

// simplifyIntersection merges any Object members into one (deduplicating
// and sorting properties) and drops exact duplicates among the rest.
func simplifyIntersection(members []Type) Type {
	var objs []*Object
	var rest []Type
	for _, m := range members {
		if o, ok := m.(*Object); ok {
			objs = append(objs, o)
			continue
		}
		dup := false
		for _, r := range rest {
			if r.Equals(m) {
				dup = true
				break
			}
		}
		if !dup {
			rest = append(rest, m)
		}
	}
	if len(objs) > 0 {
		merged := mergeObjects(objs)
		rest = append([]Type{merged}, rest...)
	}
	if len(rest) == 1 {
		return rest[0]
	}
	return &Intersection{Members: rest}
}

func mergeObjects(objs []*Object) *Object {
	byName := map[string]ObjectElem{}
	var order []string
	var nonProps []ObjectElem
	for _, o := range objs {
		for _, e := range o.Elems {
			if e.Kind != ElemProp {
				nonProps = append(nonProps, e)
				continue
			}
			if _, ok := byName[e.Name]; !ok {
				order = append(order, e.Name)
			}
			byName[e.Name] = e
		}
	}
	sort.Strings(order)
	elems := make([]ObjectElem, 0, len(order)+len(nonProps))
	for _, name := range order {
		elems = append(elems, byName[name])
	}
	elems = append(elems, nonProps...)
	return &Object{Elems: elems}
}

// sortedElems sorts an Object's property elements by name for a
// deterministic String()/Equals(), leaving call/construct/index elements
// in their original relative order after the (sorted) properties.
func sortedElems(elems []ObjectElem) []ObjectElem {
	var props []ObjectElem
	var others []ObjectElem
	for _, e := range elems {
		if e.Kind == ElemProp {
			props = append(props, e)
		} else {
			others = append(others, e)
		}
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	return append(props, others...)
}
