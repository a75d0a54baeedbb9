package jsast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/crochet-lang/crochet/internal/jsast"
	"github.com/crochet-lang/crochet/internal/lower"
	"github.com/crochet-lang/crochet/internal/parser"
)

// lowerProgram parses and lowers src, matching the teacher's
// internal/parser/testutil.go convention of exercising a real parse
// before comparing the resulting tree structurally with go-cmp.
func lowerProgram(t *testing.T, src string) []jsast.Stmt {
	t.Helper()
	prog, err := parser.ParseProgram(src, "t.croc")
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", src, err)
	}
	ctx := lower.NewContext()
	stmts := lower.BuildProgram(prog, ctx)
	if ctx.Err() != nil {
		t.Fatalf("BuildProgram(%q): %v", src, ctx.Err())
	}
	return stmts
}

func TestBuildProgramVarDeclTree(t *testing.T) {
	got := lowerProgram(t, `let x = 1 + 2;`)
	want := []jsast.Stmt{
		&jsast.Decl{
			Kind:   jsast.DeclConst,
			Target: &jsast.IdentPattern{Name: "x"},
			Init: &jsast.Binary{
				Op:    "+",
				Left:  &jsast.Lit{Kind: jsast.LitNumber, Value: "1"},
				Right: &jsast.Lit{Kind: jsast.LitNumber, Value: "2"},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildProgram tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildProgramCallTree(t *testing.T) {
	got := lowerProgram(t, `f(x, y);`)
	want := []jsast.Stmt{
		&jsast.ExprStmt{
			X: &jsast.Call{
				Callee: &jsast.Ident{Name: "f"},
				Args: []jsast.Arg{
					{Value: &jsast.Ident{Name: "x"}},
					{Value: &jsast.Ident{Name: "y"}},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildProgram tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildProgramObjectPatternTree(t *testing.T) {
	got := lowerProgram(t, `let { a, b: c } = obj;`)
	want := []jsast.Stmt{
		&jsast.Decl{
			Kind: jsast.DeclConst,
			Target: &jsast.ObjectPattern{
				Props: []jsast.ObjectPatternProp{
					{Key: "a"},
					{Key: "b", Value: &jsast.IdentPattern{Name: "c"}},
				},
			},
			Init: &jsast.Ident{Name: "obj"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildProgram tree mismatch (-want +got):\n%s", diff)
	}
}
