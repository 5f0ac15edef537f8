package validator

import (
	"errors"
	"testing"
)

type sample struct {
	Code    string `validate:"product_code"`
	TaxCode string `validate:"tax_cd"`
	Store   string `validate:"required,max=5"`
}

func TestCustomRules(t *testing.T) {
	v := New()

	t.Run("valid", func(t *testing.T) {
		if err := v.Struct(sample{Code: "4901234567890", TaxCode: "08", Store: "S001"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("short_code", func(t *testing.T) {
		err := v.Struct(sample{Code: "1234567", TaxCode: "10", Store: "S001"})
		fields, _ := Describe(err)
		if len(fields) != 1 || fields[0].Field != "Code" || fields[0].Rule != "product_code" {
			t.Errorf("expected a product_code failure on Code, got %+v", fields)
		}
	})

	t.Run("non_digit_code", func(t *testing.T) {
		if err := v.Struct(sample{Code: "49012345678AB", TaxCode: "10", Store: "S001"}); err == nil {
			t.Error("expected an error for a non-digit code")
		}
	})

	t.Run("bad_tax_code", func(t *testing.T) {
		err := v.Struct(sample{Code: "4901234567890", TaxCode: "05", Store: "S001"})
		fields, summary := Describe(err)
		if len(fields) != 1 || fields[0].Rule != "tax_cd" {
			t.Errorf("expected a tax_cd failure, got %+v", fields)
		}
		if summary == "" {
			t.Error("expected a summary")
		}
	})

	t.Run("param_in_summary", func(t *testing.T) {
		err := v.Struct(sample{Code: "4901234567890", TaxCode: "10", Store: "TOOLONG"})
		_, summary := Describe(err)
		if summary != "Store failed max=5" {
			t.Errorf("unexpected summary %q", summary)
		}
	})
}

func TestDescribe_NonValidationError(t *testing.T) {
	fields, summary := Describe(errors.New("boom"))
	if fields != nil {
		t.Errorf("expected no fields, got %+v", fields)
	}
	if summary != "boom" {
		t.Errorf("expected summary boom, got %q", summary)
	}
}

func TestValidProductCode(t *testing.T) {
	cases := map[string]bool{
		"12345678":                   true,
		"1234567890123456789012345":  true,
		"12345678901234567890123456": false,
		"":                           false,
		" 12345678":                  false,
	}
	for code, want := range cases {
		if got := ValidProductCode(code); got != want {
			t.Errorf("ValidProductCode(%q) = %v, want %v", code, got, want)
		}
	}
}
