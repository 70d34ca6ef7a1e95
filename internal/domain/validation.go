package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MinPasswordLength es la longitud minima aceptada para passwords.
const MinPasswordLength = 6

var validate = validator.New(validator.WithRequiredStructEnabled())

type credentialsInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type todoTextInput struct {
	Text string `validate:"required"`
}

// NormalizeEmail recorta espacios; el email se compara tal cual se guarda.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// ValidateCredentials valida email y password de un registro.
func ValidateCredentials(email, password string) error {
	return toValidationError(validate.Struct(credentialsInput{
		Email:    NormalizeEmail(email),
		Password: password,
	}))
}

// ValidateTodoText exige texto no vacio tras recortar espacios.
func ValidateTodoText(text string) error {
	return toValidationError(validate.Struct(todoTextInput{Text: strings.TrimSpace(text)}))
}

// IsValidID reporta si id tiene la sintaxis de un identificador del store.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out.Fields[field] = "is required"
		case "email":
			out.Fields[field] = "is not a valid email"
		case "min":
			out.Fields[field] = "must be at least " + fe.Param() + " characters"
		default:
			out.Fields[field] = "is invalid"
		}
	}
	return out
}
