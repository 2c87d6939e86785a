package validate

import (
	"testing"

	pkgerrors "github.com/mediguide/storefront-client/pkg/errors"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Month int    `json:"month" validate:"min=1,max=12"`
}

func TestStructPasses(t *testing.T) {
	if err := Struct(sample{Name: "ok", Month: 6}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Month: 13})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("err = %v, want validation", err)
	}

	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("not an app error: %v", err)
	}
	details, ok := appErr.Details().(map[string]string)
	if !ok {
		t.Fatalf("details = %#v", appErr.Details())
	}
	if details["name"] != "is required" {
		t.Fatalf("name detail = %q", details["name"])
	}
	if details["month"] != "must be at most 12" {
		t.Fatalf("month detail = %q", details["month"])
	}
}
