package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phonePattern is the national mobile format the booking form collects:
// country code 7 plus ten digits, no separators.
var phonePattern = regexp.MustCompile(`^7\d{10}$`)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("phonenumber", phoneNumberValidator); err != nil {
			log.Fatal("register phonenumber validator failed")
		}
	}
}

var phoneNumberValidator validator.Func = func(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}
