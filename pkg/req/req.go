package req

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode читает JSON-тело запроса и проверяет теги validate
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	if err := render.DecodeJSON(body, &payload); err != nil {
		return payload, fmt.Errorf("failed to decode request body: %w", err)
	}
	if err := validate.Struct(payload); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return payload, errors.New(ValidationMessage(verrs))
		}
		return payload, err
	}
	return payload, nil
}

// ValidationMessage склеивает ошибки валидации в одну строку
func ValidationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", err.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of [%s]", err.Field(), err.Param()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("field %s must be a date in format %s", err.Field(), err.Param()))
		case "max", "min", "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("field %s is out of range (%s %s)", err.Field(), err.ActualTag(), err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", err.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
