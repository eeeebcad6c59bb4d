package utils

import (
	"SaudeSync/models"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const minPasswordLength = 3

// Mock sign-in messages shown to the user as is.
const (
	MsgCredentialsRequired = "Email e senha são obrigatórios"
	MsgInvalidEmail        = "Email inválido"
	MsgPasswordTooShort    = "Senha deve ter pelo menos 3 caracteres"
)

// ValidateCredentials applies the mock sign-in rules. Any well-formed email with a
// password of at least three characters is accepted.
func ValidateCredentials(email, password string) *models.AuthError {
	if strings.TrimSpace(email) == "" || password == "" {
		return &models.AuthError{Message: MsgCredentialsRequired, Status: http.StatusBadRequest}
	}
	if err := validation.Validate(email, is.EmailFormat); err != nil {
		return &models.AuthError{Message: MsgInvalidEmail, Status: http.StatusBadRequest}
	}
	if err := validation.Validate(password, validation.RuneLength(minPasswordLength, 0)); err != nil {
		return &models.AuthError{Message: MsgPasswordTooShort, Status: http.StatusBadRequest}
	}
	return nil
}
