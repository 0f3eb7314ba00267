package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessageCarriesPosition(t *testing.T) {
	err := Parse("unexpected EOF", 3, 7)
	msg := err.Error()
	if !strings.Contains(msg, "line 3") || !strings.Contains(msg, "column 7") {
		t.Fatalf("Error() = %q, want line and column", msg)
	}
	if !strings.Contains(msg, string(ErrParse)) {
		t.Fatalf("Error() = %q, want code %q", msg, ErrParse)
	}
}

func TestErrorMessageCarriesLiteral(t *testing.T) {
	err := InvalidNotation("plainword")
	if !strings.Contains(err.Error(), "plainword") {
		t.Fatalf("Error() = %q, want offending literal", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(NoDocument()); got != ErrNoDocument {
		t.Fatalf("CodeOf() = %q, want %q", got, ErrNoDocument)
	}
	if got := CodeOf(fmt.Errorf("wrapped: %w", NamespaceRequired("x"))); got != ErrNamespaceRequired {
		t.Fatalf("CodeOf(wrapped) = %q, want %q", got, ErrNamespaceRequired)
	}
	if got := CodeOf(errors.New("foreign")); got != "" {
		t.Fatalf("CodeOf(foreign) = %q, want empty", got)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	if !errors.Is(PathSyntax("unexpected } in path", "a}"), &Error{Code: ErrPathSyntax}) {
		t.Fatal("errors.Is failed to match by code")
	}
	if errors.Is(PathSyntax("unexpected } in path", "a}"), &Error{Code: ErrNoDocument}) {
		t.Fatal("errors.Is matched different codes")
	}
}
