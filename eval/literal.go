package eval

import (
	"strconv"
	"strings"

	"github.com/gitofleonardo/soxscript/token"
	"github.com/gitofleonardo/soxscript/value"
)

// parseIntLexeme converts a raw numeric lexeme into an Int, picking the
// base explicitly from its prefix (0x, 0b, leading-zero octal, decimal)
// rather than handing the whole string to a base-10-only parser.
func parseIntLexeme(lexeme string) (value.Int, error) {
	switch {
	case strings.HasPrefix(lexeme, "0x") || strings.HasPrefix(lexeme, "0X"):
		n, err := strconv.ParseInt(lexeme[2:], 16, 64)
		return value.Int(n), err
	case strings.HasPrefix(lexeme, "0b") || strings.HasPrefix(lexeme, "0B"):
		n, err := strconv.ParseInt(lexeme[2:], 2, 64)
		return value.Int(n), err
	case len(lexeme) > 1 && lexeme[0] == '0':
		n, err := strconv.ParseInt(lexeme, 8, 64)
		return value.Int(n), err
	default:
		n, err := strconv.ParseInt(lexeme, 10, 64)
		return value.Int(n), err
	}
}

func parseDoubleLexeme(lexeme string) (value.Double, error) {
	f, err := strconv.ParseFloat(lexeme, 64)
	return value.Double(f), err
}

// literalValue converts a token carried by an *ast.Literal into a Value.
func (in *Interpreter) literalValue(tok token.Token) (value.Value, error) {
	switch tok.Kind {
	case token.TRUE:
		return value.Bool(true), nil
	case token.FALSE:
		return value.Bool(false), nil
	case token.NULL_PTR:
		return value.Null{}, nil
	case token.INT:
		n, err := parseIntLexeme(tok.Lexeme)
		if err != nil {
			return nil, in.runtimeErrorf(tok.Line, "malformed integer literal '%s'", tok.Lexeme)
		}
		return n, nil
	case token.DOUBLE:
		d, err := parseDoubleLexeme(tok.Lexeme)
		if err != nil {
			return nil, in.runtimeErrorf(tok.Line, "malformed double literal '%s'", tok.Lexeme)
		}
		return d, nil
	case token.STRING:
		return value.String(tok.Lexeme), nil
	default:
		return nil, in.runtimeErrorf(tok.Line, "unhandled literal token %s", tok.Kind)
	}
}
