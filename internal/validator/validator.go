package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired  = "%s should not be empty"
	ErrMaxLength = "%s must be shorter than or equal to %s characters"
	ErrMinLength = "%s must be longer than or equal to %s characters"
	ErrMinItems  = "%s must contain at least %s elements"
	ErrUUID      = "%s must be a UUID"
	ErrOneOf     = "%s must be one of the following values: %s"
	ErrInvalid   = "%s is invalid"
)

var defaultValidator = NewValidator()

// FieldMessage is one readable validation failure, keyed by the field's JSON name.
type FieldMessage struct {
	Field   string
	Message string
}

func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterValidation("notblank", validateNotBlank)

	return v
}

// Validate checks s against its struct tags with the shared validator.
func Validate(s any) []FieldMessage {
	return Messages(defaultValidator.Struct(s))
}

// Messages converts validator errors into readable messages. Errors that are
// not validation errors are reported under an empty field.
func Messages(err error) []FieldMessage {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []FieldMessage{{Message: err.Error()}}
	}

	messages := make([]FieldMessage, 0, len(validationErrs))
	for _, fe := range validationErrs {
		field := fieldPath(fe)
		messages = append(messages, FieldMessage{
			Field:   field,
			Message: ValidationMessage(field, fe),
		})
	}

	return messages
}

// ValidationMessage converts a validator error into a readable message
func ValidationMessage(field string, err validator.FieldError) string {
	switch err.Tag() {
	case "required", "notblank":
		return fmt.Sprintf(ErrRequired, field)
	case "max":
		return fmt.Sprintf(ErrMaxLength, field, err.Param())
	case "min":
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf(ErrMinItems, field, err.Param())
		}
		return fmt.Sprintf(ErrMinLength, field, err.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf(ErrUUID, field)
	case "oneof":
		return fmt.Sprintf(ErrOneOf, field, err.Param())
	default:
		return fmt.Sprintf(ErrInvalid, field)
	}
}

// fieldPath drops the struct name and any slice index so errors from dive
// rules land on the slice field itself.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}

	if i := strings.Index(ns, "["); i >= 0 {
		ns = ns[:i]
	}

	return ns
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	if name == "" {
		return fld.Name
	}

	return name
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
