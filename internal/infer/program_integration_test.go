package infer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crochet-lang/crochet/internal/infer"
	"github.com/crochet-lang/crochet/internal/parser"
	ty "github.com/crochet-lang/crochet/internal/types"
)

// These exercise internal/infer against real parser output rather than
// hand-built ASTs, so a mismatch between the parser's and the
// inferencer's expectations of internal/ast surfaces as a test failure
// here rather than only at runtime in cmd/crochet.

func mustInfer(t *testing.T, src string) (*ty.Env, error) {
	t.Helper()
	prog, err := parser.ParseProgram(src, "t.croc")
	require.NoError(t, err)
	return infer.InferProgram(prog, ty.NewEnv())
}

func TestInferSimpleLetChain(t *testing.T) {
	_, err := mustInfer(t, `let x = 1; let y = x + 2;`)
	assert.NoError(t, err)
}

func TestInferDeclareRequiresAnnotation(t *testing.T) {
	_, err := mustInfer(t, `declare let x;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INF005")
}

func TestInferTypeMismatchReportsINF002(t *testing.T) {
	_, err := mustInfer(t, `let x: string = 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INF002")
}

func TestInferUnboundNameReportsINF001(t *testing.T) {
	_, err := mustInfer(t, `let x = y;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INF001")
}

func TestInferLambdaAndApplication(t *testing.T) {
	_, err := mustInfer(t, `let double = (x) => x + x; let y = double(3);`)
	assert.NoError(t, err)
}

func TestInferMemberAccessIsUnsupportedStub(t *testing.T) {
	// internal/infer stubs Member/Await/JSXElement as INF009 per spec's
	// explicit non-goal list; Match and object literals are fully
	// modeled, so this documents the boundary rather than asserting a
	// blanket failure.
	_, err := mustInfer(t, `let p = { x: 1, y: 2 }; let z = p.x;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INF009")
}
