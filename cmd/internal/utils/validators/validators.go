package validators

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// IsIso8601 accepts RFC 3339 timestamps, the only ISO 8601 profile the API speaks.
func IsIso8601(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.RFC3339, fl.Field().String())
	return err == nil
}

func NoWhiteSpaces(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), " \t\r\n")
}

// Register installs the custom tags used by request DTOs.
func Register(validate *validator.Validate) {
	_ = validate.RegisterValidation("iso8601", IsIso8601)
	_ = validate.RegisterValidation("nospaces", NoWhiteSpaces)
}

func New() *validator.Validate {
	validate := validator.New()
	Register(validate)
	return validate
}
