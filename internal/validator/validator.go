// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	}
}

// validateCurrencyCode accepts codes that normalize to exactly three
// characters. Case and surrounding whitespace are ignored here; the service
// layer upper-cases the value before it is stored.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	return len(strings.TrimSpace(fl.Field().String())) == 3
}
