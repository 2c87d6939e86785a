package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeNotFound         Code = "NOT_FOUND"
	CodeStockExceeded    Code = "STOCK_EXCEEDED"
	CodePaymentDeclined  Code = "PAYMENT_DECLINED"
	CodeOrderNotRecorded Code = "ORDER_NOT_RECORDED"
	CodeDependency       Code = "DEPENDENCY_ERROR"
	CodeInternal         Code = "INTERNAL_ERROR"
)

// Severity buckets drive how the CLI surfaces a failure to the user.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

type Metadata struct {
	Severity      Severity
	Retryable     bool
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Severity:      SeverityInfo,
		Retryable:     false,
		PublicMessage: "validation failed",
	},
	CodeUnauthorized: {
		Severity:      SeverityWarning,
		Retryable:     false,
		PublicMessage: "please sign in to continue",
	},
	CodeNotFound: {
		Severity:      SeverityInfo,
		Retryable:     false,
		PublicMessage: "resource not found",
	},
	CodeStockExceeded: {
		Severity:      SeverityInfo,
		Retryable:     false,
		PublicMessage: "requested quantity is not available",
	},
	CodePaymentDeclined: {
		Severity:      SeverityWarning,
		Retryable:     false,
		PublicMessage: "payment failed. Please try again",
	},
	CodeOrderNotRecorded: {
		Severity:      SeverityCritical,
		Retryable:     false,
		PublicMessage: "order creation failed. Please contact support with your payment confirmation",
	},
	CodeDependency: {
		Severity:      SeverityWarning,
		Retryable:     true,
		PublicMessage: "service unavailable. Please try again",
	},
	CodeInternal: {
		Severity:      SeverityCritical,
		Retryable:     true,
		PublicMessage: "internal error",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf extracts the code from any error, defaulting to internal.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}
