package errors

import (
	stdErrors "errors"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code     Code
		level    string
		redirect string
	}{
		{code: CodeValidation, level: FlashDanger, redirect: ""},
		{code: CodeUnauthorized, level: FlashWarning, redirect: "/login"},
		{code: CodeForbidden, level: FlashDanger, redirect: "/home"},
		{code: CodeNotFound, level: FlashDanger, redirect: "/home"},
		{code: CodeEmptyCart, level: FlashWarning, redirect: "/home"},
		{code: CodeAlreadyExists, level: FlashDanger, redirect: "/signup"},
		{code: CodeInvalidCredentials, level: FlashDanger, redirect: "/login"},
		{code: CodeInvalidCategory, level: FlashDanger, redirect: "/admin/add_product"},
		{code: CodeUnsupportedFile, level: FlashDanger, redirect: "/admin/add_product"},
		{code: CodeInternal, level: FlashDanger, redirect: "/home"},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.FlashLevel != tt.level {
			t.Fatalf("code %s expected flash level %q got %q", tt.code, tt.level, meta.FlashLevel)
		}
		if meta.Redirect != tt.redirect {
			t.Fatalf("code %s expected redirect %q got %q", tt.code, tt.redirect, meta.Redirect)
		}
		if meta.PublicMessage == "" {
			t.Fatalf("code %s has no public message", tt.code)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.PublicMessage != metadataByCode[CodeInternal].PublicMessage {
		t.Fatalf("expected internal metadata, got %+v", meta)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}

	detail := map[string]any{"field": "foo"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestPublicMessage(t *testing.T) {
	if got := PublicMessage(New(CodeValidation, "Passwords do not match")); got != "Passwords do not match" {
		t.Fatalf("validation message should pass through, got %q", got)
	}
	if got := PublicMessage(New(CodeUnauthorized, "Please login to checkout")); got != "Please login to checkout" {
		t.Fatalf("unauthorized message should pass through, got %q", got)
	}
	// other codes always use the canonical flash text
	if got := PublicMessage(New(CodeInvalidCredentials, "unknown email")); got != "Invalid email or password" {
		t.Fatalf("internal reason leaked: %q", got)
	}
	if got := PublicMessage(New(CodeEmptyCart, "")); got != "Your cart is empty" {
		t.Fatalf("expected fallback message, got %q", got)
	}
	if got := PublicMessage(Wrap(CodeInternal, stdErrors.New("pq: broken"), "save cart")); got != "Something went wrong, please try again" {
		t.Fatalf("internal message leaked: %q", got)
	}
	if got := PublicMessage(stdErrors.New("raw")); got != "Something went wrong, please try again" {
		t.Fatalf("untyped error should map to internal, got %q", got)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(CodeForbidden, "no entry")); got != CodeForbidden {
		t.Fatalf("unexpected code %s", got)
	}
	if got := CodeOf(stdErrors.New("raw")); got != CodeInternal {
		t.Fatalf("untyped error should map to internal, got %s", got)
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeForbidden, "no entry")
	if got := As(err); got == nil || got.Code() != CodeForbidden {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}
