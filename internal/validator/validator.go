// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"math"
	"reflect"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// symbolRegex accepts tickers such as "TCS", "BRK.B", "^NSEI" and "GC=F".
var symbolRegex = regexp.MustCompile(`^[A-Za-z0-9.\-^=]{1,20}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("symbol", validateSymbol)
	_ = v.RegisterValidation("finite", validateFinite)
}

func validateSymbol(fl validator.FieldLevel) bool {
	return ValidSymbol(fl.Field().String())
}

func validateFinite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return true
}

// ValidSymbol reports whether s is a well-formed ticker symbol.
func ValidSymbol(s string) bool {
	return symbolRegex.MatchString(s)
}
