package equation

import (
	"strings"

	"eqsolve/pkg/serrors"
	"eqsolve/pkg/symath"
)

// parser turns a token stream into a symath expression. The grammar is the
// usual arithmetic one with ** binding tightest and right-associative:
//
//	expr   = term   { ("+" | "-") term }
//	term   = unary  { ("*" | "/") unary }
//	unary  = { "-" | "+" } power
//	power  = atom { "!" } [ "**" unary ]
//	atom   = number | unknown | fn "(" expr ")" | "(" expr ")"
//
// Identifiers are restricted to the unknown and the fixed function set; the
// parser never evaluates anything and never accepts a token the lexer did not
// allow-list.
type parser struct {
	tokens  []token
	pos     int
	unknown string
}

// Parse parses a single expression in the given unknown.
func Parse(input, unknown string) (symath.Expr, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, unknown: unknown}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, serrors.With(serrors.ErrParse,
			"unexpected %s at position %d", tok.kind, tok.pos+1)
	}

	return expr.Simplify(), nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}

	return tok
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.peek()
	if tok.kind != kind {
		return token{}, serrors.With(serrors.ErrParse,
			"expected %s but found %s at position %d", kind, tok.kind, tok.pos+1)
	}

	return p.next(), nil
}

func (p *parser) parseExpr() (symath.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = symath.Add(left, right)
		case tokMinus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = symath.Subtract(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (symath.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = symath.Mul(left, right)
		case tokSlash:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			if n, ok := right.(*symath.Num); ok && n.IsZero() {
				return nil, serrors.With(serrors.ErrParse,
					"division by zero at position %d", p.peek().pos)
			}
			left = symath.Divide(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (symath.Expr, error) {
	negative := false
	for {
		tok := p.peek()
		if tok.kind == tokMinus {
			p.next()
			negative = !negative

			continue
		}
		if tok.kind == tokPlus {
			p.next()

			continue
		}

		break
	}

	expr, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	if negative {
		expr = symath.Neg(expr)
	}

	return expr, nil
}

func (p *parser) parsePower() (symath.Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	// postfix factorial binds tighter than **, so 3!**2 is (3!)**2
	for p.peek().kind == tokBang {
		p.next()
		base = symath.Factorial(base)
	}

	if p.peek().kind == tokPower {
		p.next()
		// right-associative, and the exponent may carry its own sign
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if bn, ok := base.(*symath.Num); ok && bn.IsZero() {
			if en, ok := exp.(*symath.Num); ok && en.Sign() < 0 {
				return nil, serrors.With(serrors.ErrParse,
					"division by zero at position %d", p.peek().pos)
			}
		}

		return symath.Power(base, exp), nil
	}

	return base, nil
}

func (p *parser) parseAtom() (symath.Expr, error) {
	tok := p.peek()

	switch tok.kind {
	case tokNumber:
		p.next()
		n, ok := symath.ParseNum(tok.text)
		if !ok {
			return nil, serrors.With(serrors.ErrParse,
				"malformed number %q at position %d", tok.text, tok.pos+1)
		}

		return n, nil

	case tokIdent:
		p.next()

		return p.parseIdent(tok)

	case tokLParen:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}

		return inner, nil

	default:
		return nil, serrors.With(serrors.ErrParse,
			"unexpected %s at position %d", tok.kind, tok.pos+1)
	}
}

// parseIdent resolves an identifier as either the unknown or a call to one of
// the fixed named functions. Any other identifier is rejected.
func (p *parser) parseIdent(tok token) (symath.Expr, error) {
	name := strings.ToLower(tok.text)

	if ctor, ok := functions[name]; ok {
		if _, err := p.expect(tokLParen); err != nil {
			return nil, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}

		return ctor(arg), nil
	}

	if tok.text == p.unknown {
		if p.peek().kind == tokLParen {
			return nil, serrors.With(serrors.ErrParse,
				"%q is not a function (position %d)", tok.text, tok.pos+1)
		}

		return symath.NewVar(tok.text), nil
	}

	return nil, serrors.With(serrors.ErrParse,
		"unsupported identifier %q at position %d (only %q and the functions sqrt, sin, cos, tan, exp, ln, log, factorial are allowed)",
		tok.text, tok.pos+1, p.unknown)
}

// functions is the fixed allow-list of named functions; log is an alias for
// the natural logarithm.
var functions = map[string]func(symath.Expr) symath.Expr{ //nolint: gochecknoglobals
	"sqrt":      symath.Sqrt,
	"sin":       symath.Sin,
	"cos":       symath.Cos,
	"tan":       symath.Tan,
	"exp":       symath.Exp,
	"ln":        symath.Ln,
	"log":       symath.Ln,
	"factorial": symath.Factorial,
}
