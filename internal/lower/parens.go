package lower

import "github.com/crochet-lang/crochet/internal/jsast"

// binaryPrecedence gives each binary operator's relative precedence.
// Only the relative ordering matters: multiplicative binds tighter than
// additive, which binds tighter than relational, which binds tighter than
// equality.
func binaryPrecedence(op string) int {
	switch op {
	case "*", "/":
		return 5
	case "+", "-":
		return 4
	case "<", "<=", ">", ">=":
		return 3
	case "===", "!==", "==", "!=":
		return 2
	default:
		return 1
	}
}

// wrapChild parenthesizes child if it is a Binary whose own precedence is
// strictly lower than parentOp's, or — for the two non-associative cases
// a/(b/c) and a-(b-c) — when it sits on the right with equal precedence
// and a matching operator.
func wrapChild(child jsast.Expr, parentOp string, isRight bool) jsast.Expr {
	b, ok := child.(*jsast.Binary)
	if !ok {
		return child
	}
	if isRight && ((parentOp == "/" && b.Op == "/") || (parentOp == "-" && b.Op == "-")) {
		return &jsast.Paren{X: child}
	}
	if binaryPrecedence(b.Op) < binaryPrecedence(parentOp) {
		return &jsast.Paren{X: child}
	}
	return child
}
