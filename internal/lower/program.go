package lower

import (
	"github.com/crochet-lang/crochet/internal/ast"
	"github.com/crochet-lang/crochet/internal/diag"
	"github.com/crochet-lang/crochet/internal/jsast"
)

// BuildProgram lowers every top-level statement of prog into the JS-AST,
// in source order, sharing a single Context so fresh-name counters don't
// collide across statements. A `declare` VarDecl has no JS representation
// (it only exists to seed the inferencer's ambient environment) and
// produces no statement at all; no jsast.Empty is emitted for it. TypeDecl
// is erased the same way: type aliases are a compile-time-only construct
// with no runtime counterpart.
func BuildProgram(prog *ast.Program, ctx *Context) []jsast.Stmt {
	var out []jsast.Stmt
	for _, stmt := range prog.Statements {
		out = append(out, buildStmt(stmt, ctx)...)
	}
	return out
}

func buildStmt(stmt ast.Statement, ctx *Context) []jsast.Stmt {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return buildVarDecl(s, ctx)
	case *ast.TypeDecl:
		return nil
	case *ast.ExprStmt:
		var hoisted []jsast.Stmt
		x := BuildExpr(s.X, &hoisted, ctx)
		return append(hoisted, &jsast.ExprStmt{X: x})
	default:
		ctx.Fail(diag.Unsupported("top-level statement form", stmt.Position()))
		return nil
	}
}

func buildVarDecl(v *ast.VarDecl, ctx *Context) []jsast.Stmt {
	if v.Declare {
		return nil
	}
	if !Assignable(v.Pattern) {
		ctx.Fail(diag.NonAssignablePattern(v.Pattern.Position()))
		return nil
	}
	var hoisted []jsast.Stmt
	init := BuildExpr(v.Init, &hoisted, ctx)
	target, ok := convertPattern(v.Pattern)
	if !ok {
		ctx.Fail(diag.NonAssignablePattern(v.Pattern.Position()))
		return nil
	}
	return append(hoisted, &jsast.Decl{Kind: jsast.DeclConst, Target: target, Init: init})
}
