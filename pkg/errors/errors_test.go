package errors

import (
	stdErrors "errors"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		severity  Severity
		publicMsg string
		retryable bool
	}{
		{code: CodeValidation, severity: SeverityInfo, publicMsg: "validation failed"},
		{code: CodeUnauthorized, severity: SeverityWarning, publicMsg: "please sign in to continue"},
		{code: CodeNotFound, severity: SeverityInfo, publicMsg: "resource not found"},
		{code: CodeStockExceeded, severity: SeverityInfo, publicMsg: "requested quantity is not available"},
		{code: CodePaymentDeclined, severity: SeverityWarning, publicMsg: "payment failed. Please try again"},
		{code: CodeOrderNotRecorded, severity: SeverityCritical, publicMsg: "order creation failed. Please contact support with your payment confirmation"},
		{code: CodeDependency, severity: SeverityWarning, publicMsg: "service unavailable. Please try again", retryable: true},
		{code: CodeInternal, severity: SeverityCritical, publicMsg: "internal error", retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.Severity != tt.severity {
			t.Fatalf("code %s expected severity %s got %s", tt.code, tt.severity, meta.Severity)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.Severity != SeverityCritical {
		t.Fatalf("expected critical severity, got %s", meta.Severity)
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
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]any{"available": 1}
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

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeStockExceeded, "only 1 left")
	if got := As(err); got == nil || got.Code() != CodeStockExceeded {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestCodeHelpers(t *testing.T) {
	err := New(CodeOrderNotRecorded, "order not saved")
	if !IsCode(err, CodeOrderNotRecorded) {
		t.Fatalf("IsCode should match")
	}
	if IsCode(err, CodeValidation) {
		t.Fatalf("IsCode should not match other codes")
	}
	if CodeOf(stdErrors.New("plain")) != CodeInternal {
		t.Fatalf("plain errors should map to internal")
	}
}
