package finnaxml

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	finnaerrors "github.com/NatLibFi/finna-xml/errors"
)

func TestParsePathSplitsOnSlash(t *testing.T) {
	p, err := ParsePath("{urn:test}a/b")
	if err != nil {
		t.Fatalf("ParsePath() error = %v", err)
	}
	want := []string{"{urn:test}a", "b"}
	if diff := cmp.Diff(want, p.Segments()); diff != "" {
		t.Fatalf("ParsePath() segments mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePathSlashInsideBraces(t *testing.T) {
	p, err := ParsePath("{http://example.org/ns}a/b")
	if err != nil {
		t.Fatalf("ParsePath() error = %v", err)
	}
	want := []string{"{http://example.org/ns}a", "b"}
	if diff := cmp.Diff(want, p.Segments()); diff != "" {
		t.Fatalf("ParsePath() segments mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePathRepeatedOpenBrace(t *testing.T) {
	_, err := ParsePath("{{urn:test}a")
	if err == nil {
		t.Fatal("ParsePath({{...) error = nil, want error")
	}
	if code := finnaerrors.CodeOf(err); code != finnaerrors.ErrPathSyntax {
		t.Fatalf("ParsePath() code = %q, want %q", code, finnaerrors.ErrPathSyntax)
	}
}

func TestParsePathUnmatchedCloseBrace(t *testing.T) {
	_, err := ParsePath("{urn:test}a}")
	if err == nil {
		t.Fatal("ParsePath(...}) error = nil, want error")
	}
	if code := finnaerrors.CodeOf(err); code != finnaerrors.ErrPathSyntax {
		t.Fatalf("ParsePath() code = %q, want %q", code, finnaerrors.ErrPathSyntax)
	}
}

func TestParsePathEmpty(t *testing.T) {
	p, err := ParsePath("")
	if err != nil {
		t.Fatalf("ParsePath(\"\") error = %v", err)
	}
	if !p.IsEmpty() {
		t.Fatalf("ParsePath(\"\").IsEmpty() = false, want true")
	}
}

func TestNewPathKeepsSegments(t *testing.T) {
	p := NewPath("urn:test a", "b")
	want := []string{"urn:test a", "b"}
	if diff := cmp.Diff(want, p.Segments()); diff != "" {
		t.Fatalf("NewPath() segments mismatch (-want +got):\n%s", diff)
	}
}
