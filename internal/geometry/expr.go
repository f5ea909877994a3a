package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// evalExpr evaluates a restricted arithmetic expression: decimal literals,
// the constant π (also spelled "pi"), + - * /, exponentiation (^ or **) and
// parentheses. The grammar is closed by construction: no identifiers, no
// calls, so hostile input cannot evaluate anything beyond arithmetic.
// Callers are expected to lowercase the input first.
func evalExpr(input string) (float64, error) {
	p := &exprParser{input: input}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
		return 0, fmt.Errorf("unexpected %q at offset %d", r, p.pos)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("expression is not a finite number")
	}
	return v, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *exprParser) peek() byte {
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

func (p *exprParser) peekAt(off int) byte {
	if p.pos+off < len(p.input) {
		return p.input[p.pos+off]
	}
	return 0
}

// expr = term { ('+'|'-') term }
func (p *exprParser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.term()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.term()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

// term = unary { ('*'|'/') unary }, where a lone '*' must not be the start
// of a '**' exponent.
func (p *exprParser) term() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch {
		case p.peek() == '*' && p.peekAt(1) != '*':
			p.pos++
			rhs, err := p.unary()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case p.peek() == '/':
			p.pos++
			rhs, err := p.unary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			v /= rhs
		default:
			return v, nil
		}
	}
}

// unary = ('+'|'-') unary | power
func (p *exprParser) unary() (float64, error) {
	p.skipSpaces()
	switch p.peek() {
	case '+':
		p.pos++
		return p.unary()
	case '-':
		p.pos++
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.power()
}

// power = atom [ ('**'|'^') unary ]; exponentiation is right-associative
// and binds tighter than a leading unary minus, matching the usual
// convention (-2^2 is -4).
func (p *exprParser) power() (float64, error) {
	base, err := p.atom()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	switch {
	case p.peek() == '^':
		p.pos++
	case p.peek() == '*' && p.peekAt(1) == '*':
		p.pos += 2
	default:
		return base, nil
	}
	exp, err := p.unary()
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exp), nil
}

// atom = number | 'π' | "pi" | '(' expr ')'
func (p *exprParser) atom() (float64, error) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, fmt.Errorf("unexpected end of expression")
	}
	c := p.input[p.pos]
	switch {
	case c == '(':
		p.pos++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case c >= '0' && c <= '9' || c == '.':
		return p.number()
	}
	if strings.HasPrefix(p.input[p.pos:], "pi") {
		p.pos += 2
		return math.Pi, nil
	}
	if r, size := utf8.DecodeRuneInString(p.input[p.pos:]); r == 'π' {
		p.pos += size
		return math.Pi, nil
	}
	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
	return 0, fmt.Errorf("unexpected %q at offset %d", r, p.pos)
}

func (p *exprParser) number() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		p.pos++
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed number %q", p.input[start:p.pos])
	}
	return v, nil
}
