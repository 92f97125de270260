package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	vo "tonpay/internal/domain/shared/valueobjects"
)

// registerValidations adds the custom binding validations used by the
// request structs.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("tonaddress", func(fl validator.FieldLevel) bool {
			return vo.ValidAddress(fl.Field().String())
		})
	}
}
