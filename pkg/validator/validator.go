package validator

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report fields by their json/form names so messages match the payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Namespace()
			if i := strings.Index(field, "."); i >= 0 {
				field = field[i+1:]
			}
			name := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = name + " is required"
			case "email":
				errors[field] = name + " must be a valid email address"
			case "min":
				errors[field] = name + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = name + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = name + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = name + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = name + " must be one of: " + e.Param()
			case "isodate":
				errors[field] = name + " must use the YYYY-MM-DD format"
			default:
				errors[field] = name + " is invalid"
			}
		}
	}

	return errors
}
