// Package expr evaluates the small arithmetic formulas cabinet templates
// use for part dimensions, e.g. "carcass_width_mm - 2 * material_thickness_mm".
//
// Grammar:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | primary
//	primary = number | ident | "(" expr ")"
//
// Identifiers are looked up in a caller-supplied variable map; nothing else
// is callable.
package expr

import (
	"fmt"
	"strconv"
)

// SyntaxError reports a malformed expression or an unbound identifier.
type SyntaxError struct {
	Pos int // byte offset into the source
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expr: position %d: %s", e.Pos, e.Msg)
}

// Vars binds identifier names to values.
type Vars map[string]float64

// Eval parses and evaluates src against vars. Division by zero follows
// IEEE-754 and may return an infinity or NaN; callers decide what a
// non-finite result means.
func Eval(src string, vars Vars) (float64, error) {
	p := &parser{lex: lexer{src: src}, vars: vars}
	p.next()
	if p.tok.kind == tokEOF {
		return 0, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.tok.kind != tokEOF {
		return 0, &SyntaxError{Pos: p.tok.pos, Msg: fmt.Sprintf("unexpected %s", p.tok)}
	}
	return v, nil
}

type parser struct {
	lex  lexer
	tok  token
	vars Vars
}

func (p *parser) next() {
	p.tok = p.lex.next()
}

func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for p.tok.kind == tokOp && (p.tok.op == '+' || p.tok.op == '-') {
		op := p.tok.op
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for p.tok.kind == tokOp && (p.tok.op == '*' || p.tok.op == '/') {
		op := p.tok.op
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
		} else {
			left /= right
		}
	}
	return left, nil
}

func (p *parser) parseUnary() (float64, error) {
	if p.tok.kind == tokOp && (p.tok.op == '+' || p.tok.op == '-') {
		op := p.tok.op
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '-' {
			return -v, nil
		}
		return v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	tok := p.tok
	switch tok.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return 0, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("bad number %q", tok.text)}
		}
		p.next()
		return v, nil
	case tokIdent:
		v, ok := p.vars[tok.text]
		if !ok {
			return 0, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("unknown variable %q", tok.text)}
		}
		p.next()
		return v, nil
	case tokLParen:
		p.next()
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.tok.kind != tokRParen {
			return 0, &SyntaxError{Pos: p.tok.pos, Msg: fmt.Sprintf("expected ')', got %s", p.tok)}
		}
		p.next()
		return v, nil
	case tokIllegal:
		return 0, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("illegal character %q", tok.text)}
	}
	return 0, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %s", tok)}
}
