// Package jsprinter renders the internal/jsast model that internal/lower
// produces back into JavaScript source text (spec §6's build_js output).
// It is a thin, mechanical collaborator: every precedence and
// parenthesization decision has already been made by internal/lower
// (jsast.Paren marks exactly where parentheses are required), so the
// printer never needs to reason about operator precedence itself.
package jsprinter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crochet-lang/crochet/internal/jsast"
)

// Print renders a full statement sequence (one crochet program's lowered
// output) as JavaScript source.
func Print(stmts []jsast.Stmt) string {
	p := &printer{}
	for _, s := range stmts {
		p.stmt(s)
	}
	return p.b.String()
}

// PrintExpr renders a single expression, useful for REPL-style one-shot
// evaluation where there is no enclosing statement sequence.
func PrintExpr(e jsast.Expr) string {
	p := &printer{}
	p.expr(e)
	return p.b.String()
}

type printer struct {
	b      strings.Builder
	indent int
}

func (p *printer) writeIndent() {
	p.b.WriteString(strings.Repeat("  ", p.indent))
}

func (p *printer) line(format string, args ...any) {
	p.writeIndent()
	fmt.Fprintf(&p.b, format, args...)
	p.b.WriteByte('\n')
}

func (p *printer) stmt(s jsast.Stmt) {
	switch s := s.(type) {
	case *jsast.Decl:
		kw := "const"
		if s.Kind == jsast.DeclLet {
			kw = "let"
		}
		export := ""
		if s.Exported {
			export = "export "
		}
		target := p.patternString(s.Target)
		if s.Init == nil {
			p.line("%s%s %s;", export, kw, target)
			return
		}
		p.line("%s%s %s = %s;", export, kw, target, p.exprString(s.Init))
	case *jsast.ExprStmt:
		p.line("%s;", p.exprString(s.X))
	case *jsast.Return:
		if s.X == nil {
			p.line("return;")
			return
		}
		p.line("return %s;", p.exprString(s.X))
	case *jsast.If:
		p.writeIndent()
		fmt.Fprintf(&p.b, "if (%s) ", p.exprString(s.Cond))
		p.block(s.Cons)
		if s.Alt != nil {
			p.b.WriteString(" else ")
			p.blockInline(s.Alt)
		} else {
			p.b.WriteByte('\n')
		}
	case *jsast.Block:
		p.writeIndent()
		p.block(s)
		p.b.WriteByte('\n')
	case *jsast.Empty:
		// declare/type statements have no JS representation
	default:
		p.line("/* unsupported statement */")
	}
}

// block renders a brace-delimited statement sequence without a leading
// newline, so callers can chain `if (...) { ... } else { ... }` on one
// visual unit. It writes no newline after the closing brace; blockInline
// is block followed by that newline.
func (p *printer) block(b *jsast.Block) {
	p.b.WriteString("{\n")
	p.indent++
	for _, s := range b.Stmts {
		p.stmt(s)
	}
	p.indent--
	p.writeIndent()
	p.b.WriteString("}")
}

func (p *printer) blockInline(b *jsast.Block) {
	p.block(b)
	p.b.WriteByte('\n')
}

func (p *printer) exprString(e jsast.Expr) string {
	sub := &printer{indent: p.indent}
	sub.expr(e)
	return sub.b.String()
}

func (p *printer) patternString(pat jsast.Pattern) string {
	sub := &printer{indent: p.indent}
	sub.pattern(pat)
	return sub.b.String()
}

func (p *printer) expr(e jsast.Expr) {
	switch e := e.(type) {
	case *jsast.Ident:
		p.b.WriteString(e.Name)
	case *jsast.Lit:
		p.lit(e)
	case *jsast.Paren:
		p.b.WriteByte('(')
		p.expr(e.X)
		p.b.WriteByte(')')
	case *jsast.Member:
		p.expr(e.Obj)
		if e.Computed {
			p.b.WriteByte('[')
			p.expr(e.Prop)
			p.b.WriteByte(']')
		} else {
			p.b.WriteByte('.')
			p.expr(e.Prop)
		}
	case *jsast.Call:
		p.expr(e.Callee)
		p.b.WriteByte('(')
		for i, a := range e.Args {
			if i > 0 {
				p.b.WriteString(", ")
			}
			if a.Spread {
				p.b.WriteString("...")
			}
			p.expr(a.Value)
		}
		p.b.WriteByte(')')
	case *jsast.Arrow:
		if e.Async {
			p.b.WriteString("async ")
		}
		p.b.WriteByte('(')
		for i, param := range e.Params {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.pattern(param)
		}
		p.b.WriteString(") => ")
		switch {
		case e.BodyBlock != nil:
			p.block(e.BodyBlock)
		case e.BodyExpr != nil:
			p.expr(e.BodyExpr)
		default:
			p.b.WriteString("undefined")
		}
	case *jsast.Binary:
		p.expr(e.Left)
		fmt.Fprintf(&p.b, " %s ", e.Op)
		p.expr(e.Right)
	case *jsast.Logical:
		p.expr(e.Left)
		fmt.Fprintf(&p.b, " %s ", e.Op)
		p.expr(e.Right)
	case *jsast.Assign:
		p.expr(e.Left)
		fmt.Fprintf(&p.b, " %s ", e.Op)
		p.expr(e.Right)
	case *jsast.Unary:
		p.b.WriteString(e.Op)
		if e.Op == "typeof" || e.Op == "await" {
			p.b.WriteByte(' ')
		}
		p.expr(e.X)
	case *jsast.Object:
		p.b.WriteString("{ ")
		for i, prop := range e.Props {
			if i > 0 {
				p.b.WriteString(", ")
			}
			fmt.Fprintf(&p.b, "%s: ", prop.Key)
			p.expr(prop.Value)
		}
		p.b.WriteString(" }")
	case *jsast.Array:
		p.b.WriteByte('[')
		for i, el := range e.Elems {
			if i > 0 {
				p.b.WriteString(", ")
			}
			if el == nil {
				continue
			}
			p.expr(el)
		}
		p.b.WriteByte(']')
	case *jsast.Tpl:
		p.tpl(e)
	case *jsast.TaggedTpl:
		p.expr(e.Tag)
		p.tpl(e.Template)
	case *jsast.JSXElement:
		p.jsx(e)
	default:
		p.b.WriteString("undefined")
	}
}

func (p *printer) lit(l *jsast.Lit) {
	switch l.Kind {
	case jsast.LitString:
		p.b.WriteString(strconv.Quote(l.Value))
	case jsast.LitNull:
		p.b.WriteString("null")
	case jsast.LitUndefined:
		p.b.WriteString("undefined")
	default:
		p.b.WriteString(l.Value)
	}
}

func (p *printer) tpl(t *jsast.Tpl) {
	p.b.WriteByte('`')
	for i, q := range t.Quasis {
		p.b.WriteString(q.Raw)
		if i < len(t.Exprs) {
			p.b.WriteString("${")
			p.expr(t.Exprs[i])
			p.b.WriteByte('}')
		}
	}
	p.b.WriteByte('`')
}

func (p *printer) jsx(j *jsast.JSXElement) {
	fmt.Fprintf(&p.b, "<%s", j.Tag)
	for _, a := range j.Attrs {
		if a.Value == nil {
			fmt.Fprintf(&p.b, " %s", a.Name)
			continue
		}
		fmt.Fprintf(&p.b, " %s={", a.Name)
		p.expr(a.Value)
		p.b.WriteByte('}')
	}
	if len(j.Children) == 0 {
		p.b.WriteString(" />")
		return
	}
	p.b.WriteByte('>')
	for _, c := range j.Children {
		p.expr(c)
	}
	fmt.Fprintf(&p.b, "</%s>", j.Tag)
}

func (p *printer) pattern(pat jsast.Pattern) {
	switch pat := pat.(type) {
	case *jsast.IdentPattern:
		p.b.WriteString(pat.Name)
	case *jsast.ObjectPattern:
		p.b.WriteString("{ ")
		for i, prop := range pat.Props {
			if i > 0 {
				p.b.WriteString(", ")
			}
			if prop.Value == nil {
				p.b.WriteString(prop.Key)
			} else {
				fmt.Fprintf(&p.b, "%s: ", prop.Key)
				p.pattern(prop.Value)
			}
			if prop.Default != nil {
				p.b.WriteString(" = ")
				p.expr(prop.Default)
			}
		}
		if pat.Rest != "" {
			if len(pat.Props) > 0 {
				p.b.WriteString(", ")
			}
			fmt.Fprintf(&p.b, "...%s", pat.Rest)
		}
		p.b.WriteString(" }")
	case *jsast.ArrayPattern:
		p.b.WriteByte('[')
		for i, el := range pat.Elems {
			if i > 0 {
				p.b.WriteString(", ")
			}
			if el.Pat == nil {
				continue
			}
			p.pattern(el.Pat)
			if el.Default != nil {
				p.b.WriteString(" = ")
				p.expr(el.Default)
			}
		}
		if pat.Rest != "" {
			if len(pat.Elems) > 0 {
				p.b.WriteString(", ")
			}
			fmt.Fprintf(&p.b, "...%s", pat.Rest)
		}
		p.b.WriteByte(']')
	}
}
