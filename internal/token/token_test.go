package token_test

import (
	"testing"

	"github.com/cwbudde/lark/internal/token"
)

func TestKindStringCoversEveryNamedKind(t *testing.T) {
	cases := map[token.Kind]string{
		token.ILLEGAL:     "ILLEGAL",
		token.EOF:         "EOF",
		token.IDENT:       "IDENT",
		token.NUMBER:      "NUMBER",
		token.PLUS:        "+",
		token.ARROW:       "=>",
		token.EQUAL:       "=",
		token.EQUAL_EQUAL: "==",
		token.INTERFACE:   "interface",
		token.ENUM:        "enum",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestKindStringFallsBackForUnnamedKind(t *testing.T) {
	unnamed := token.Kind(9999)
	if got, want := unnamed.String(), "Kind(9999)"; got != want {
		t.Errorf("unnamed Kind.String() = %q, want %q", got, want)
	}
}

func TestKeywordsTableAgreesWithKindNames(t *testing.T) {
	for lexeme, kind := range token.Keywords {
		if got := kind.String(); got != lexeme {
			t.Errorf("Keywords[%q] = %v, whose String() is %q, want %q", lexeme, kind, got, lexeme)
		}
	}
}

func TestKeywordsContainsEveryReservedWord(t *testing.T) {
	want := []string{
		"and", "class", "else", "false", "fun", "for", "if", "nil", "or",
		"return", "super", "this", "true", "var", "while", "yield", "break",
		"import", "as", "type", "extends", "interface", "enum",
	}
	if len(token.Keywords) != len(want) {
		t.Fatalf("len(Keywords) = %d, want %d", len(token.Keywords), len(want))
	}
	for _, lexeme := range want {
		if _, ok := token.Keywords[lexeme]; !ok {
			t.Errorf("Keywords missing %q", lexeme)
		}
	}
}

func TestPositionString(t *testing.T) {
	pos := token.Position{Line: 3, Column: 7, Offset: 42}
	if got, want := pos.String(), "3:7"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}

func TestTokenString(t *testing.T) {
	tok := token.Token{Kind: token.IDENT, Lexeme: "foo", Pos: token.Position{Line: 1, Column: 1}}
	if got, want := tok.String(), `IDENT "foo"`; got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}
