package auth

import (
	"strings"
	"unicode/utf8"

	"github.com/acerto/acerto/internal/apperr"
	"github.com/acerto/acerto/internal/email"
)

var (
	ErrWeakPassword       = apperr.Validation("A senha precisa ter 8+ caracteres, 1 letra maiúscula e 1 número.")
	ErrPasswordMismatch   = apperr.Validation("As senhas não conferem.")
	ErrTermsNotAccepted   = apperr.Validation("Você precisa aceitar os Termos para criar a conta.")
	ErrInvalidEmail       = apperr.Validation("Digite um e-mail válido.")
	ErrMissingName        = apperr.Validation("Informe seu nome.")
	ErrMissingCredentials = apperr.Validation("Preencha e-mail e senha.")
)

// ValidatePassword requires 8+ characters with an upper-case ASCII letter
// and a digit.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return ErrWeakPassword
	}
	var upper, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper || !digit {
		return ErrWeakPassword
	}
	return nil
}

// ValidateSignup checks the form in the order its fields are shown.
func ValidateSignup(in SignupInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrMissingName
	}
	if !email.Valid(in.Email) {
		return ErrInvalidEmail
	}
	if err := ValidatePassword(in.Password); err != nil {
		return err
	}
	if in.Password != in.Confirm {
		return ErrPasswordMismatch
	}
	if !in.AcceptTerms {
		return ErrTermsNotAccepted
	}
	return nil
}

// ValidateLogin applies the login form rules before any lookup.
func ValidateLogin(addr, password string) error {
	if addr == "" || password == "" {
		return ErrMissingCredentials
	}
	if !email.Valid(addr) {
		return ErrInvalidEmail
	}
	return ValidatePassword(password)
}
