package lower

import (
	"fmt"

	"github.com/crochet-lang/crochet/internal/ast"
	"github.com/crochet-lang/crochet/internal/diag"
	"github.com/crochet-lang/crochet/internal/jsast"
	"github.com/crochet-lang/crochet/internal/refutability"
)

// buildCondExpr joins the path-checks refutability.ConditionsFor derives
// for pat, rooted at the JS identifier named root, with the logical
// operator op: buildIfLet passes "||", buildMatch passes "&&". Returns nil
// for an irrefutable pattern.
func buildCondExpr(pat ast.Pattern, root, op string) jsast.Expr {
	conds := refutability.ConditionsFor(pat)
	if len(conds) == 0 {
		return nil
	}
	var combined jsast.Expr
	for _, c := range conds {
		e := condToExpr(c, root)
		if combined == nil {
			combined = e
			continue
		}
		combined = &jsast.Logical{Op: op, Left: combined, Right: e}
	}
	return combined
}

func condToExpr(c refutability.Condition, root string) jsast.Expr {
	path := pathToExpr(c.Path, root)
	switch c.Check.Kind {
	case refutability.EqualLit:
		return &jsast.Binary{Op: "===", Left: path, Right: buildLit(c.Check.Lit)}
	case refutability.Typeof:
		return &jsast.Binary{
			Op:    "===",
			Left:  &jsast.Unary{Op: "typeof", X: path},
			Right: &jsast.Lit{Kind: jsast.LitString, Value: c.Check.Name},
		}
	default: // Instanceof
		return &jsast.Binary{Op: "instanceof", Left: path, Right: &jsast.Ident{Name: c.Check.Name}}
	}
}

func pathToExpr(path refutability.Path, root string) jsast.Expr {
	cur := jsast.Expr(&jsast.Ident{Name: root})
	for _, e := range path {
		switch e.Kind {
		case refutability.ObjProp:
			cur = &jsast.Member{Obj: cur, Prop: &jsast.Ident{Name: e.Name}}
		case refutability.ArrayIndex:
			cur = &jsast.Member{Obj: cur, Prop: &jsast.Lit{Kind: jsast.LitNumber, Value: fmt.Sprintf("%d", e.Index)}, Computed: true}
		}
	}
	return cur
}

// buildIfLet lowers `if let pat = x { cons } else { alt }` per spec §4.3.1.
func buildIfLet(letExpr *ast.LetExpr, cons, alt ast.Expr, stmts *[]jsast.Stmt, ctx *Context) jsast.Expr {
	ret := ctx.FreshRet()
	*stmts = append(*stmts, &jsast.Decl{Kind: jsast.DeclLet, Target: &jsast.IdentPattern{Name: ret}})

	tmp := ctx.FreshTmp()
	scrutinee := BuildExpr(letExpr.X, stmts, ctx)
	*stmts = append(*stmts, &jsast.Decl{Kind: jsast.DeclConst, Target: &jsast.IdentPattern{Name: tmp}, Init: scrutinee})

	condExpr := buildCondExpr(letExpr.Pattern, tmp, "||")

	consBlock := buildExprInNewScope(cons, ret, ctx)
	if target, ok := convertPattern(letExpr.Pattern); ok {
		destructure := &jsast.Decl{Kind: jsast.DeclConst, Target: target, Init: &jsast.Ident{Name: tmp}}
		consBlock.Stmts = append([]jsast.Stmt{destructure}, consBlock.Stmts...)
	}

	var altBlock *jsast.Block
	if alt != nil {
		altBlock = buildExprInNewScope(alt, ret, ctx)
	}

	if condExpr != nil {
		*stmts = append(*stmts, &jsast.If{Cond: condExpr, Cons: consBlock, Alt: altBlock})
	} else {
		*stmts = append(*stmts, consBlock)
	}
	return &jsast.Ident{Name: ret}
}

// buildMatch lowers `match scrutinee { arms... }` into a right-to-left
// if/else-if/.../else cascade (spec §4.3.2). A catch-all arm (no checks,
// no guard) must be last; violating that records a LOW001 error on ctx
// and the cascade is built up to the offending arm.
func buildMatch(m *ast.Match, stmts *[]jsast.Stmt, ctx *Context) jsast.Expr {
	ret := ctx.FreshRet()
	*stmts = append(*stmts, &jsast.Decl{Kind: jsast.DeclLet, Target: &jsast.IdentPattern{Name: ret}})

	tmp := ctx.FreshTmp()
	scrutinee := BuildExpr(m.Scrutinee, stmts, ctx)
	*stmts = append(*stmts, &jsast.Decl{Kind: jsast.DeclConst, Target: &jsast.IdentPattern{Name: tmp}, Init: scrutinee})

	type builtArm struct {
		cond  jsast.Expr // nil for a catch-all
		block *jsast.Block
	}

	var built []builtArm
	hasCatchAll := false
	for _, arm := range m.Arms {
		if hasCatchAll {
			ctx.Fail(diag.MisplacedCatchAll(arm.Pattern.Position()))
			break
		}

		cond := buildCondExpr(arm.Pattern, tmp, "&&")
		block := buildExprInNewScope(arm.Body, ret, ctx)
		if target, ok := convertPattern(arm.Pattern); ok {
			destructure := &jsast.Decl{Kind: jsast.DeclConst, Target: target, Init: &jsast.Ident{Name: tmp}}
			block.Stmts = append([]jsast.Stmt{destructure}, block.Stmts...)
		}

		if arm.Guard != nil {
			var guardStmts []jsast.Stmt
			guard := BuildExpr(arm.Guard, &guardStmts, ctx)
			// The guard is evaluated in the arm's own lexical position; any
			// statements it needs are folded into the arm block ahead of the
			// condition test would require a rewrite of the cascade, so — as
			// in the original implementation — guards are expected to be
			// expression-only and their hoisted statements (if any) are
			// prepended to the arm's block instead.
			block.Stmts = append(guardStmts, block.Stmts...)
			if cond != nil {
				cond = &jsast.Logical{Op: "&&", Left: cond, Right: guard}
			} else {
				cond = guard
			}
		}

		if cond == nil {
			hasCatchAll = true
		}
		built = append(built, builtArm{cond: cond, block: block})
	}

	if len(built) == 0 {
		ctx.Fail(fmt.Errorf("lower: match has no arms"))
		return &jsast.Ident{Name: ret}
	}

	var chain jsast.Stmt
	last := built[len(built)-1]
	if last.cond == nil {
		chain = last.block
	} else {
		chain = &jsast.If{Cond: last.cond, Cons: last.block}
	}
	for i := len(built) - 2; i >= 0; i-- {
		arm := built[i]
		altBlock, ok := chain.(*jsast.Block)
		var alt *jsast.Block
		if ok {
			alt = altBlock
		} else {
			alt = &jsast.Block{Stmts: []jsast.Stmt{chain}}
		}
		chain = &jsast.If{Cond: arm.cond, Cons: arm.block, Alt: alt}
	}
	*stmts = append(*stmts, chain)
	return &jsast.Ident{Name: ret}
}
