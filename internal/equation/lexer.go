package equation

import (
	"strings"
	"unicode"

	"eqsolve/pkg/serrors"
)

// tokenKind enumerates the token allow-list. Anything the lexer cannot map to
// one of these kinds is a parse error; there is no escape hatch for arbitrary
// input.
type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPower // the two-character operator **
	tokBang  // postfix factorial
	tokLParen
	tokRParen
	tokEOF
)

func (k tokenKind) String() string {
	switch k {
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokPower:
		return "'**'"
	case tokBang:
		return "'!'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokEOF:
		return "end of input"
	}

	return "unknown"
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits the input into tokens. Only decimal number literals, bare
// identifiers, the arithmetic operators + - * / **, postfix !, and
// parentheses are admitted. In particular '^' is not an exponent operator here and '=' never
// reaches the lexer (normalization strips it).
func lex(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)

	i := 0
	for i < len(runes) {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case r == '+':
			tokens = append(tokens, token{kind: tokPlus, text: "+", pos: i})
			i++

		case r == '-':
			tokens = append(tokens, token{kind: tokMinus, text: "-", pos: i})
			i++

		case r == '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				tokens = append(tokens, token{kind: tokPower, text: "**", pos: i})
				i += 2

				break
			}
			tokens = append(tokens, token{kind: tokStar, text: "*", pos: i})
			i++

		case r == '/':
			tokens = append(tokens, token{kind: tokSlash, text: "/", pos: i})
			i++

		case r == '!':
			tokens = append(tokens, token{kind: tokBang, text: "!", pos: i})
			i++

		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i})
			i++

		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i})
			i++

		case unicode.IsDigit(r) || r == '.':
			start := i
			sawDot := false
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				if runes[i] == '.' {
					if sawDot {
						return nil, serrors.With(serrors.ErrParse,
							"malformed number at position %d", start+1)
					}
					sawDot = true
				}
				i++
			}
			text := string(runes[start:i])
			if text == "." {
				return nil, serrors.With(serrors.ErrParse,
					"malformed number at position %d", start+1)
			}
			tokens = append(tokens, token{kind: tokNumber, text: text, pos: start})

		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			text := string(runes[start:i])
			// accept and strip sympy/math qualifiers so inputs like
			// "sympy.sqrt(x)" keep working
			if i < len(runes) && runes[i] == '.' && isNamespace(text) {
				i++
				inner := i
				for i < len(runes) && unicode.IsLetter(runes[i]) {
					i++
				}
				if inner == i {
					return nil, serrors.With(serrors.ErrParse,
						"incomplete name at position %d", start+1)
				}
				text = string(runes[inner:i])
			}
			tokens = append(tokens, token{kind: tokIdent, text: text, pos: start})

		default:
			return nil, serrors.With(serrors.ErrParse,
				"disallowed token %q at position %d", string(r), i+1)
		}
	}

	tokens = append(tokens, token{kind: tokEOF, text: "", pos: len(runes)})

	return tokens, nil
}

func isNamespace(s string) bool {
	switch strings.ToLower(s) {
	case "sympy", "math":
		return true
	}

	return false
}
