package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describe un campo que falló la validación estructural.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: falla la regla %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s: falla la regla %s", e.Field, e.Tag)
}

var validate = validator.New()

// ValidateStruct valida un struct según sus tags `validate` y devuelve los campos fallidos.
func ValidateStruct(data interface{}) []FieldError {
	var errs []FieldError
	err := validate.Struct(data)
	if err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errs = append(errs, FieldError{
				Field: fe.StructNamespace(),
				Tag:   fe.Tag(),
				Param: fe.Param(),
			})
		}
	}
	return errs
}

// Describe concatena los errores de campo en un mensaje legible.
func Describe(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "; ")
}
