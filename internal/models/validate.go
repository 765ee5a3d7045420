package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("fieldname", func(fl validator.FieldLevel) bool {
		return validFieldName(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", common.ErrValidation, err)
}

func checkStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

// validFieldName accepts any non-blank name without surrounding whitespace.
// Names key the stored custom values, so " lr" and "lr" must not both exist.
func validFieldName(name string) bool {
	return name != "" && strings.TrimSpace(name) == name
}
