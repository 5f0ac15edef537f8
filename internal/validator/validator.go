// Package validator provides the validator instance used by the service
// layer, with the product master rules registered.
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"posapi/internal/tax"
)

var productCodeRegex = regexp.MustCompile(`^[0-9]{8,25}$`)

// New returns a standalone validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	registerRules(v)
	return v
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation("product_code", validateProductCode)
	_ = v.RegisterValidation("tax_cd", validateTaxCode)
}

// ValidProductCode reports whether code is 8 to 25 ASCII digits.
func ValidProductCode(code string) bool {
	return productCodeRegex.MatchString(code)
}

func validateProductCode(fl validator.FieldLevel) bool {
	return ValidProductCode(fl.Field().String())
}

func validateTaxCode(fl validator.FieldLevel) bool {
	return tax.ValidTaxCategory(fl.Field().String())
}

// FieldError describes one failed rule in a client-friendly way.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Describe flattens validation errors into field errors and a one-line
// summary. Errors that are not validator.ValidationErrors yield no fields.
func Describe(err error) ([]FieldError, string) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err.Error()
	}

	fields := make([]FieldError, 0, len(verrs))
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		fields = append(fields, FieldError{Field: ns, Rule: fe.Tag(), Param: fe.Param()})
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", ns, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", ns, fe.Tag()))
		}
	}
	return fields, strings.Join(parts, "; ")
}
