package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DecimalPositive reports whether a decimal.Decimal field is strictly positive.
// Registered as the "dpositive" binding rule; the stock validator tags cannot
// compare decimal.Decimal values.
func DecimalPositive(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.IsPositive()
}

// RegisterValidations installs the custom binding rules on gin's validator
// engine. Must run before any handler binds a request body.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("dpositive", DecimalPositive)
}
