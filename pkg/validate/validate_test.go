package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/sokoni/pkg/validate"
)

type checkoutInput struct {
	Address string  `json:"address" validate:"required,min=5,max=500"`
	Method  string  `json:"method"  validate:"required,in=cash|mobile_money"`
	Fee     float64 `json:"fee"     validate:"gte=0"`
	Notes   string  `json:"notes"   validate:"nullable,max=10"`
	Email   string  `json:"email"   validate:"required,email"`
	Qty     int     `json:"qty"     validate:"required,gt=0,lte=100"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(checkoutInput{
		Address: "12 Market Street",
		Method:  "cash",
		Fee:     0,
		Notes:   "", // nullable, empty allowed
		Email:   "buyer@example.com",
		Qty:     3,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(checkoutInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	for _, field := range []string{"address", "method", "email", "qty"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required", field)
		}
	}
}

func TestInRule(t *testing.T) {
	errs := validate.Struct(checkoutInput{
		Address: "12 Market Street",
		Method:  "cheque",
		Email:   "buyer@example.com",
		Qty:     1,
	})
	if _, ok := errs["method"]; !ok {
		t.Error("expected method to be rejected")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Qty int `json:"qty" validate:"gt=0,lte=100"`
	}
	if errs := validate.Struct(in{Qty: 0}); len(errs) == 0 {
		t.Error("expected gt=0 to fail for 0")
	}
	if errs := validate.Struct(in{Qty: 101}); len(errs) == 0 {
		t.Error("expected lte=100 to fail for 101")
	}
	if errs := validate.Struct(in{Qty: 50}); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestMinMaxOnStrings(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=2,max=5"`
	}
	if errs := validate.Struct(in{Name: "a"}); len(errs) == 0 {
		t.Error("expected min to fail")
	}
	if errs := validate.Struct(in{Name: "abcdef"}); len(errs) == 0 {
		t.Error("expected max to fail")
	}
	if errs := validate.Struct(in{Name: "abc"}); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Link string `json:"link" validate:"nullable,min=10"`
	}
	if errs := validate.Struct(in{Link: ""}); len(errs) != 0 {
		t.Errorf("expected empty nullable field to pass, got %v", errs)
	}
	if errs := validate.Struct(in{Link: "short"}); len(errs) == 0 {
		t.Error("expected non-empty nullable field to be validated")
	}
}

func TestPointerAndNonStructInputs(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required"`
	}
	if errs := validate.Struct(&in{Name: "ok"}); len(errs) != 0 {
		t.Errorf("pointer input: expected no errors, got %v", errs)
	}
	if errs := validate.Struct(42); len(errs) != 0 {
		t.Errorf("non-struct input: expected no errors, got %v", errs)
	}
}
