package validation

import "github.com/gomart/gomart/internal/store"

// CreateUser valida el body de registro de un usuario.
func CreateUser(doc store.Document) error {
	if err := requireString(doc, "firstName", 3); err != nil {
		return err
	}
	if err := requireString(doc, "lastName", 3); err != nil {
		return err
	}
	if err := requireString(doc, "userName", 6); err != nil {
		return err
	}
	if err := requireString(doc, "password", 8); err != nil {
		return err
	}
	if err := requireString(doc, "email", 1); err != nil {
		return err
	}
	email, _ := doc["email"].(string)
	_, err := ValidateEmail(email)
	return err
}

// UserLogin valida el body de login.
func UserLogin(doc store.Document) error {
	if err := requireString(doc, "email", 1); err != nil {
		return err
	}
	return requireString(doc, "password", 3)
}
