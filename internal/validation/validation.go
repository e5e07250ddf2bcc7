// Package validation valida los bodies de entrada antes de que lleguen al
// gateway. Errores de acá se responden como envelope de fallo con 400.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomart/gomart/internal/store"
)

// emailPattern replica la semántica del validador histórico de emails.
var emailPattern = regexp.MustCompile(`^[^\s@"<>()\[\]\\.,;:]+(\.[^\s@"<>()\[\]\\.,;:]+)*@([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}$`)

// ValidateEmail normaliza y valida una dirección. Devuelve el email
// trimmeado si es válido.
func ValidateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if len(email) < 6 {
		return "", fmt.Errorf("email address is too short")
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("invalid email address")
	}
	return email, nil
}

// requireString exige un campo string no vacío con largo mínimo.
func requireString(doc store.Document, field string, min int) error {
	v, ok := doc[field]
	if !ok || v == nil {
		return fmt.Errorf("%s is required", field)
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%s must be a string", field)
	}
	if len(strings.TrimSpace(s)) < min {
		return fmt.Errorf("%s must be at least %d characters", field, min)
	}
	return nil
}

// optionalString valida largo mínimo solo si el campo está presente.
func optionalString(doc store.Document, field string, min int) error {
	if _, ok := doc[field]; !ok {
		return nil
	}
	return requireString(doc, field, min)
}

// requireNumber exige un campo numérico (acepta string numérico, como
// hacían los validadores históricos).
func requireNumber(doc store.Document, field string) error {
	v, ok := doc[field]
	if !ok || v == nil {
		return fmt.Errorf("%s is required", field)
	}
	if _, ok := store.AsFloat64(v); !ok {
		return fmt.Errorf("%s must be a number", field)
	}
	return nil
}

// optionalNumber valida tipo numérico solo si el campo está presente.
func optionalNumber(doc store.Document, field string) error {
	if _, ok := doc[field]; !ok {
		return nil
	}
	return requireNumber(doc, field)
}
