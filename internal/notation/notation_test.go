package notation

import (
	"testing"

	finnaerrors "github.com/NatLibFi/finna-xml/errors"
)

func TestTryParseSpaced(t *testing.T) {
	namespace, local, ok := TryParse("urn:test item")
	if !ok {
		t.Fatalf("TryParse() ok = false, want true")
	}
	if namespace != "urn:test" || local != "item" {
		t.Fatalf("TryParse() = (%q, %q), want (urn:test, item)", namespace, local)
	}
}

func TestTryParseBracketed(t *testing.T) {
	namespace, local, ok := TryParse("{urn:test}item")
	if !ok {
		t.Fatalf("TryParse() ok = false, want true")
	}
	if namespace != "urn:test" || local != "item" {
		t.Fatalf("TryParse() = (%q, %q), want (urn:test, item)", namespace, local)
	}
}

func TestTryParseEmptyNamespace(t *testing.T) {
	namespace, local, ok := TryParse("{}item")
	if !ok || namespace != "" || local != "item" {
		t.Fatalf("TryParse({}item) = (%q, %q, %v), want (\"\", item, true)", namespace, local, ok)
	}
}

func TestTryParseRejects(t *testing.T) {
	for _, name := range []string{
		"plainword",
		"too many spaces",
		"{unclosed",
		"",
	} {
		if _, _, ok := TryParse(name); ok {
			t.Fatalf("TryParse(%q) ok = true, want false", name)
		}
	}
}

func TestParseNotationsAgree(t *testing.T) {
	spacedNS, spacedLocal, err := Parse("urn:test item")
	if err != nil {
		t.Fatalf("Parse(spaced) error = %v", err)
	}
	bracketNS, bracketLocal, err := Parse("{urn:test}item")
	if err != nil {
		t.Fatalf("Parse(bracketed) error = %v", err)
	}
	if spacedNS != bracketNS || spacedLocal != bracketLocal {
		t.Fatalf("Parse() disagree: (%q,%q) vs (%q,%q)", spacedNS, spacedLocal, bracketNS, bracketLocal)
	}
}

func TestParsePlainWordFails(t *testing.T) {
	_, _, err := Parse("plainword")
	if err == nil {
		t.Fatal("Parse(plainword) error = nil, want error")
	}
	if code := finnaerrors.CodeOf(err); code != finnaerrors.ErrInvalidNotation {
		t.Fatalf("Parse(plainword) code = %q, want %q", code, finnaerrors.ErrInvalidNotation)
	}
}

func TestEnsureValidNormalizes(t *testing.T) {
	got, err := EnsureValid("urn:test item", "")
	if err != nil {
		t.Fatalf("EnsureValid() error = %v", err)
	}
	if got != "{urn:test}item" {
		t.Fatalf("EnsureValid() = %q, want {urn:test}item", got)
	}
}

func TestEnsureValidDefaultNamespace(t *testing.T) {
	got, err := EnsureValid("item", "urn:default")
	if err != nil {
		t.Fatalf("EnsureValid() error = %v", err)
	}
	if got != "{urn:default}item" {
		t.Fatalf("EnsureValid() = %q, want {urn:default}item", got)
	}
}

func TestEnsureValidRequiresNamespace(t *testing.T) {
	_, err := EnsureValid("item", "")
	if err == nil {
		t.Fatal("EnsureValid() error = nil, want error")
	}
	if code := finnaerrors.CodeOf(err); code != finnaerrors.ErrNamespaceRequired {
		t.Fatalf("EnsureValid() code = %q, want %q", code, finnaerrors.ErrNamespaceRequired)
	}
}
