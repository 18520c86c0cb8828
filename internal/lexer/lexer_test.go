package lexer_test

import (
	"testing"

	"github.com/cwbudde/lark/internal/lexer"
	"github.com/cwbudde/lark/internal/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := lexer.New(src)
	var toks []token.Token
	for {
		tok := l.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	want = append(want, token.EOF)
	got := kinds(scanAll(t, src))
	if len(got) != len(want) {
		t.Fatalf("scanning %q: got %d tokens %v, want %d %v", src, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("scanning %q: token %d = %v, want %v", src, i, got[i], want[i])
		}
	}
}

func TestScanSingleAndDoubleCharTokens(t *testing.T) {
	assertKinds(t, "( ) { } [ ] , . - + % ; * : |",
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.COMMA, token.DOT,
		token.MINUS, token.PLUS, token.PERCENT, token.SEMICOLON,
		token.STAR, token.COLON, token.PIPE)

	assertKinds(t, "! != = == => < <= > >=",
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.ARROW, token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL)
}

func TestScanKeywordsAndIdentifiersAreDisjoint(t *testing.T) {
	assertKinds(t, "var x = fun", token.VAR, token.IDENT, token.EQUAL, token.FUN)
	assertKinds(t, "variable", token.IDENT)
	assertKinds(t, "interface_impl", token.IDENT)
}

func TestScanNumberLiteral(t *testing.T) {
	toks := scanAll(t, "42 3.14")
	if toks[0].Kind != token.NUMBER || toks[0].Literal != float64(42) {
		t.Fatalf("first token = %+v, want NUMBER 42", toks[0])
	}
	if toks[1].Kind != token.NUMBER || toks[1].Literal != float64(3.14) {
		t.Fatalf("second token = %+v, want NUMBER 3.14", toks[1])
	}
}

func TestScanStringLiteral(t *testing.T) {
	toks := scanAll(t, `"hello world"`)
	if toks[0].Kind != token.STRING || toks[0].Literal != "hello world" {
		t.Fatalf("token = %+v, want STRING \"hello world\"", toks[0])
	}
}

func TestScanUnterminatedStringProducesIllegalToken(t *testing.T) {
	l := lexer.New(`"unterminated`)
	tok := l.Scan()
	if tok.Kind != token.ILLEGAL {
		t.Fatalf("Scan() = %+v, want ILLEGAL", tok)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("Errors() = %v, want exactly one error", l.Errors())
	}
	if l.Errors()[0].Message != "Unterminated string." {
		t.Fatalf("error message = %q", l.Errors()[0].Message)
	}
}

func TestScanAtomLiteral(t *testing.T) {
	toks := scanAll(t, "#ok #error")
	if toks[0].Kind != token.ATOM || toks[0].Literal != "ok" {
		t.Fatalf("first token = %+v, want ATOM ok", toks[0])
	}
	if toks[1].Kind != token.ATOM || toks[1].Literal != "error" {
		t.Fatalf("second token = %+v, want ATOM error", toks[1])
	}
}

func TestScanBareAtomIsIllegal(t *testing.T) {
	l := lexer.New("# ")
	tok := l.Scan()
	if tok.Kind != token.ILLEGAL {
		t.Fatalf("Scan() = %+v, want ILLEGAL", tok)
	}
}

func TestScanSkipsLineCommentsAndWhitespace(t *testing.T) {
	src := "var x = 1; // trailing comment\nvar y = 2;"
	assertKinds(t, src,
		token.VAR, token.IDENT, token.EQUAL, token.NUMBER, token.SEMICOLON,
		token.VAR, token.IDENT, token.EQUAL, token.NUMBER, token.SEMICOLON)
}

func TestScanLoneSlashIsDivision(t *testing.T) {
	assertKinds(t, "a / b", token.IDENT, token.SLASH, token.IDENT)
}

func TestScanUnexpectedCharacterIsIllegal(t *testing.T) {
	l := lexer.New("@")
	tok := l.Scan()
	if tok.Kind != token.ILLEGAL {
		t.Fatalf("Scan() = %+v, want ILLEGAL", tok)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("Errors() = %v, want exactly one error", l.Errors())
	}
}

func TestScanTracksLineNumbers(t *testing.T) {
	l := lexer.New("a\nb")
	first := l.Scan()
	if first.Pos.Line != 1 {
		t.Fatalf("first token line = %d, want 1", first.Pos.Line)
	}
	second := l.Scan()
	if second.Pos.Line != 2 {
		t.Fatalf("second token line = %d, want 2", second.Pos.Line)
	}
}

func TestScanNormalizesToNFC(t *testing.T) {
	// "e" + U+0301 COMBINING ACUTE ACCENT (NFD, two runes) should scan as
	// a single IDENT in its NFC-composed form U+00E9 (one rune), since
	// New normalizes the buffer before scanning.
	decomposed := "é"
	composed := "é"
	toks := scanAll(t, decomposed)
	if toks[0].Kind != token.IDENT {
		t.Fatalf("token = %+v, want IDENT", toks[0])
	}
	if toks[0].Lexeme != composed {
		t.Fatalf("lexeme = %q, want NFC-composed %q", toks[0].Lexeme, composed)
	}
}

func TestScanEOFIsIdempotentlyReturned(t *testing.T) {
	l := lexer.New("")
	tok := l.Scan()
	if tok.Kind != token.EOF {
		t.Fatalf("Scan() on empty source = %+v, want EOF", tok)
	}
	again := l.Scan()
	if again.Kind != token.EOF {
		t.Fatalf("second Scan() past EOF = %+v, want EOF", again)
	}
}
