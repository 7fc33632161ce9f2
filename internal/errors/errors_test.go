package errors

import (
	stderrors "errors"
	"testing"
)

func TestParseErrorMessage(t *testing.T) {
	pos := Position{File: "db.example", Line: 4, Column: 12}
	err := New(Syntax, pos, "unexpected token")
	want := "db.example:4:12: syntax: unexpected token"
	if got := err.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestParseErrorFieldAnnotation(t *testing.T) {
	pos := Position{Line: 1, Column: 1}
	err := Field(Semantic, pos, "ttl", "value out of range")
	if err.Field != "ttl" {
		t.Fatalf("Field = %q, want ttl", err.Field)
	}
	if err.Error() == "" {
		t.Fatal("Error() returned empty string")
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := stderrors.New("disk gone")
	pos := Position{Line: 1, Column: 1}
	err := Wrap(ReadError, pos, "refill failed", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("errors.Is did not find wrapped cause")
	}
	if stderrors.Unwrap(err) != cause {
		t.Fatal("Unwrap did not return the wrapped cause")
	}
}

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{Syntax, "syntax"},
		{Semantic, "semantic"},
		{NotAFile, "not-a-file"},
		{ReadError, "read-error"},
		{OutOfMemory, "out-of-memory"},
		{NotPermitted, "not-permitted"},
		{UnsupportedType, "unsupported-type"},
		{NestedOpenBrace, "nested-open-brace"},
		{UnmatchedCloseBrace, "unmatched-close-brace"},
		{Kind(99), "unknown"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 7}
	if got, want := p.String(), "3:7"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
	p.File = "zone.db"
	if got, want := p.String(), "zone.db:3:7"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}
