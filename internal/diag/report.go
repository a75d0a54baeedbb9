package diag

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/crochet-lang/crochet/internal/ast"
)

// Report is the canonical structured error type for crochet. The error
// builders in this package, used by internal/infer and internal/lower,
// build a *Report and return it through WrapReport as a plain error;
// AsReport recovers it for callers that want the structured form back.
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Span    *ast.Span      `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     string         `json:"fix,omitempty"`
}

// ReportError wraps a Report as an error so structured reports survive
// errors.As() unwrapping through ordinary Go error-handling paths.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	if e.Rep.Span != nil {
		return fmt.Sprintf("%s: %s: %s", e.Rep.Span, e.Rep.Code, e.Rep.Message)
	}
	return fmt.Sprintf("%s: %s", e.Rep.Code, e.Rep.Message)
}

// AsReport attempts to extract a Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as an error.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON renders the report as JSON with deterministic field ordering.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newReport(code, phase, msg string, span *ast.Span) *Report {
	return &Report{Schema: "crochet.error/v1", Code: code, Phase: phase, Message: msg, Span: span}
}

// UnboundName reports §7 UnboundName.
func UnboundName(name string, span ast.Span) error {
	r := newReport(INF001, "infer", fmt.Sprintf("unbound name: %s", name), &span)
	r.Data = map[string]any{"name": name}
	return WrapReport(r)
}

// UnificationFailure reports §7 UnificationFailure. t1/t2 are rendered via
// fmt.Stringer to avoid internal/diag depending on internal/types.
func UnificationFailure(t1, t2 fmt.Stringer, span ast.Span) error {
	r := newReport(INF002, "infer",
		fmt.Sprintf("cannot use %s where %s is expected", t1, t2), &span)
	r.Data = map[string]any{"t1": t1.String(), "t2": t2.String()}
	r.Fix = "check the operand and annotation types for a structural mismatch"
	return WrapReport(r)
}

// InfiniteType reports §7 InfiniteType.
func InfiniteType(varName string, t fmt.Stringer, span ast.Span) error {
	r := newReport(INF003, "infer",
		fmt.Sprintf("infinite type: %s occurs in %s", varName, t), &span)
	r.Fix = "this would create an infinite type; check for recursion without a base case"
	return WrapReport(r)
}

// DuplicateBinder reports §7 DuplicateBinder.
func DuplicateBinder(name string, span ast.Span) error {
	return WrapReport(newReport(INF004, "infer", fmt.Sprintf("duplicate binder: %s", name), &span))
}

// DeclareWithoutAnnotation reports §7 DeclareWithoutAnnotation.
func DeclareWithoutAnnotation(span ast.Span) error {
	return WrapReport(newReport(INF005, "infer", "declare statement is missing a type annotation", &span))
}

// NonDeclareWithoutInitializer reports §7 NonDeclareWithoutInitializer.
func NonDeclareWithoutInitializer(span ast.Span) error {
	return WrapReport(newReport(INF006, "infer", "let binding is missing an initializer", &span))
}

// IrrefutableRequired reports §7 IrrefutableRequired.
func IrrefutableRequired(span ast.Span) error {
	return WrapReport(newReport(INF007, "infer", "this context requires an irrefutable pattern", &span))
}

// RefutableNotAllowed reports §7 RefutableNotAllowed.
func RefutableNotAllowed(span ast.Span) error {
	return WrapReport(newReport(INF008, "infer", "a refutable pattern is not allowed here", &span))
}

// Unsupported reports §7 Unsupported.
func Unsupported(feature string, span ast.Span) error {
	return WrapReport(newReport(INF009, "infer", fmt.Sprintf("unsupported: %s", feature), &span))
}

// InternalLetExprMisplaced reports a LetExpr found outside an IfElse
// condition; this is a bug in the parser collaborator, not a user error.
func InternalLetExprMisplaced(span ast.Span) error {
	return WrapReport(newReport(INF010, "infer", "internal error: LetExpr outside IfElse.Cond", &span))
}

// MisplacedCatchAll reports §7 MisplacedCatchAll.
func MisplacedCatchAll(span ast.Span) error {
	return WrapReport(newReport(LOW001, "lower", "catch-all match arm must be last", &span))
}

// NonAssignablePattern reports a literal/wildcard pattern at the root of a
// VarDecl, which the lowerer rejects per spec §4.3.
func NonAssignablePattern(span ast.Span) error {
	return WrapReport(newReport(LOW002, "lower", "pattern is not assignable: literal and wildcard patterns may not be the root of a let binding", &span))
}

// SyntaxError reports §7 Syntax (PAR001): the parser collaborator could
// not make sense of the token stream.
func SyntaxError(msg string, span ast.Span) error {
	return WrapReport(newReport(PAR001, "parse", msg, &span))
}
