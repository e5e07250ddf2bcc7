package validation

import "github.com/gomart/gomart/internal/store"

// CreateCategory valida el alta de una categoría.
func CreateCategory(doc store.Document) error {
	if err := requireString(doc, "name", 3); err != nil {
		return err
	}
	return optionalString(doc, "description", 1)
}
