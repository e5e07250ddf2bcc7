package validation

import "github.com/gomart/gomart/internal/store"

// CreateStore valida el alta de una tienda.
func CreateStore(doc store.Document) error {
	if err := requireString(doc, "name", 3); err != nil {
		return err
	}
	if err := requireString(doc, "description", 1); err != nil {
		return err
	}
	return requireNumber(doc, "sellerId")
}

// UpdateStore valida un update parcial de tienda.
func UpdateStore(doc store.Document) error {
	if err := optionalString(doc, "name", 3); err != nil {
		return err
	}
	return optionalString(doc, "description", 1)
}
