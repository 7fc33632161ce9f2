package lex

import (
	"testing"

	apperrors "github.com/nlnetlabs/zonescan/internal/errors"
)

func collect(t *testing.T, l *Lexer, n int) []Token {
	t.Helper()
	toks := make([]Token, 0, n)
	for i := 0; i < n; i++ {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next() #%d: unexpected error: %v", i, err)
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return toks
}

func TestContiguousTokens(t *testing.T) {
	l := New("z", []byte("www IN A\n"))
	toks := collect(t, l, 10)

	want := []string{"www", "IN", "A"}
	for i, w := range want {
		if toks[i].Kind != Contiguous {
			t.Fatalf("token %d: Kind = %v, want Contiguous", i, toks[i].Kind)
		}
		if string(toks[i].Text) != w {
			t.Errorf("token %d: Text = %q, want %q", i, toks[i].Text, w)
		}
	}
	if !toks[0].AtLineStart {
		t.Error("first token should be AtLineStart")
	}
	if toks[1].AtLineStart || toks[2].AtLineStart {
		t.Error("non-owner tokens should not be AtLineStart")
	}
	if toks[3].Kind != Delimiter {
		t.Fatalf("token 3: Kind = %v, want Delimiter", toks[3].Kind)
	}
	if toks[4].Kind != EOF {
		t.Fatalf("token 4: Kind = %v, want EOF", toks[4].Kind)
	}
}

func TestQuotedToken(t *testing.T) {
	l := New("z", []byte(`"hello world"` + "\n"))
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("Next(): %v", err)
	}
	if tok.Kind != Quoted {
		t.Fatalf("Kind = %v, want Quoted", tok.Kind)
	}
	if string(tok.Text) != "hello world" {
		t.Errorf("Text = %q, want %q", tok.Text, "hello world")
	}
}

func TestEscapedQuoteStaysInsideString(t *testing.T) {
	l := New("z", []byte(`"a\"b"` + "\n"))
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("Next(): %v", err)
	}
	if tok.Kind != Quoted {
		t.Fatalf("Kind = %v, want Quoted", tok.Kind)
	}
	want := `a\"b`
	if string(tok.Text) != want {
		t.Errorf("Text = %q, want %q", tok.Text, want)
	}
}

func TestUnterminatedQuoteIsSyntaxError(t *testing.T) {
	l := New("z", []byte(`"never closes`))
	_, err := l.Next()
	pe, ok := err.(*apperrors.ParseError)
	if !ok {
		t.Fatalf("err = %v (%T), want *apperrors.ParseError", err, err)
	}
	if pe.Kind != apperrors.Syntax {
		t.Errorf("Kind = %v, want Syntax", pe.Kind)
	}
}

func TestCommentSkippedToEndOfLine(t *testing.T) {
	l := New("z", []byte("a ; this is a comment\nb\n"))
	toks := collect(t, l, 10)
	if toks[0].Kind != Contiguous || string(toks[0].Text) != "a" {
		t.Fatalf("token 0 = %+v, want Contiguous \"a\"", toks[0])
	}
	if toks[1].Kind != Delimiter {
		t.Fatalf("token 1: Kind = %v, want Delimiter", toks[1].Kind)
	}
	if toks[2].Kind != Contiguous || string(toks[2].Text) != "b" {
		t.Fatalf("token 2 = %+v, want Contiguous \"b\"", toks[2])
	}
}

func TestGroupSuspendsNewlineAsDelimiter(t *testing.T) {
	l := New("z", []byte("a ( b\nc )\nd\n"))
	toks := collect(t, l, 10)
	// a b c should all come through as contiguous with no delimiter
	// between them; the delimiter only appears after the closing paren's
	// line ends, before d.
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	wantUpTo := []Kind{Contiguous, Contiguous, Contiguous, Delimiter, Contiguous, Delimiter, EOF}
	if len(kinds) != len(wantUpTo) {
		t.Fatalf("got %d tokens %v, want %d %v", len(kinds), kinds, len(wantUpTo), wantUpTo)
	}
	for i, w := range wantUpTo {
		if kinds[i] != w {
			t.Errorf("token %d: Kind = %v, want %v", i, kinds[i], w)
		}
	}
}

func TestNestedOpenBraceIsError(t *testing.T) {
	l := New("z", []byte("a ( b ( c ) )\n"))
	for i := 0; i < 10; i++ {
		_, err := l.Next()
		if err != nil {
			pe, ok := err.(*apperrors.ParseError)
			if !ok || pe.Kind != apperrors.NestedOpenBrace {
				t.Fatalf("err = %v, want NestedOpenBrace ParseError", err)
			}
			return
		}
	}
	t.Fatal("expected a NestedOpenBrace error, got none")
}

func TestUnmatchedCloseBraceIsError(t *testing.T) {
	l := New("z", []byte("a ) b\n"))
	for i := 0; i < 10; i++ {
		_, err := l.Next()
		if err != nil {
			pe, ok := err.(*apperrors.ParseError)
			if !ok || pe.Kind != apperrors.UnmatchedCloseBrace {
				t.Fatalf("err = %v, want UnmatchedCloseBrace ParseError", err)
			}
			return
		}
	}
	t.Fatal("expected an UnmatchedCloseBrace error, got none")
}

func TestEOFInsideGroupIsSyntaxError(t *testing.T) {
	l := New("z", []byte("a ( b\nc"))
	var lastErr error
	for i := 0; i < 10; i++ {
		_, err := l.Next()
		if err != nil {
			lastErr = err
			break
		}
	}
	pe, ok := lastErr.(*apperrors.ParseError)
	if !ok || pe.Kind != apperrors.Syntax {
		t.Fatalf("err = %v, want Syntax ParseError", lastErr)
	}
}

func TestEOFIsIdempotent(t *testing.T) {
	l := New("z", []byte("a\n"))
	collect(t, l, 10)
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next() at EOF: %v", err)
		}
		if tok.Kind != EOF {
			t.Fatalf("Kind = %v, want EOF", tok.Kind)
		}
	}
}

func TestBlankLineProducesMultiNewlineDelimiter(t *testing.T) {
	l := New("z", []byte("a\n\nb\n"))
	toks := collect(t, l, 10)
	if toks[1].Kind != Delimiter {
		t.Fatalf("token 1: Kind = %v, want Delimiter", toks[1].Kind)
	}
	if toks[2].Kind != Contiguous || string(toks[2].Text) != "b" {
		t.Fatalf("token 2 = %+v, want Contiguous \"b\"", toks[2])
	}
}
