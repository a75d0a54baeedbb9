// Package diag provides centralized, structured error reporting for
// crochet, grounded on the teacher's internal/errors package. The
// inferencer and lowerer report most errors through this package's builders,
// which wrap a *Report carrying a stable code; the unifier returns its own
// span-free error types, which the inferencer converts into Reports.
package diag

// Error code constants grouped by phase. Each constant corresponds to one
// of the taxonomy entries in spec.md §7.
const (
	// ========================================================================
	// Inference errors (INF###)
	// ========================================================================

	// INF001: identifier lookup failed (UnboundName).
	INF001 = "INF001"

	// INF002: structural mismatch during unification (UnificationFailure).
	INF002 = "INF002"

	// INF003: occurs-check failure (InfiniteType).
	INF003 = "INF003"

	// INF004: same identifier bound twice in one pattern (DuplicateBinder).
	INF004 = "INF004"

	// INF005: `declare` statement missing a type annotation.
	INF005 = "INF005"

	// INF006: non-declare VarDecl missing an initializer.
	INF006 = "INF006"

	// INF007: a refutable pattern used where only an irrefutable one is
	// allowed (top-level let, lambda parameter).
	INF007 = "INF007"

	// INF008: an irrefutable pattern used where a refutable one was
	// expected (reserved for future context-specific checks).
	INF008 = "INF008"

	// INF009: a feature the inferencer does not model yet (Await, Member,
	// JSXElement).
	INF009 = "INF009"

	// INF010: LetExpr appearing outside an IfElse condition (internal
	// error class; indicates a malformed AST from the parser collaborator).
	INF010 = "INF010"

	// ========================================================================
	// Lowering errors (LOW###)
	// ========================================================================

	// LOW001: a non-terminal catch-all match arm (MisplacedCatchAll).
	LOW001 = "LOW001"

	// LOW002: a literal or wildcard pattern used as the root of an
	// assignable VarDecl pattern.
	LOW002 = "LOW002"

	// ========================================================================
	// Parse errors (PAR###)
	// ========================================================================

	// PAR001: the parser collaborator hit an unexpected token.
	PAR001 = "PAR001"
)
