package http

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate instancia compartida; los tags viven en los DTOs.
var validate = validator.New()

// validateStruct valida un DTO y devuelve un mensaje legible por campo.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: regla %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
