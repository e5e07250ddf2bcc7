package validation

import "github.com/gomart/gomart/internal/store"

// CreateInventory valida la publicación de un producto.
func CreateInventory(doc store.Document) error {
	if err := requireNumber(doc, "categoryId"); err != nil {
		return err
	}
	if err := requireNumber(doc, "sellerId"); err != nil {
		return err
	}
	if err := requireString(doc, "name", 3); err != nil {
		return err
	}
	if err := requireNumber(doc, "quantity"); err != nil {
		return err
	}
	return requireNumber(doc, "price")
}

// UpdateInventory valida un update parcial de producto.
func UpdateInventory(doc store.Document) error {
	if err := optionalNumber(doc, "categoryId"); err != nil {
		return err
	}
	if err := optionalNumber(doc, "sellerId"); err != nil {
		return err
	}
	if err := optionalString(doc, "name", 3); err != nil {
		return err
	}
	if err := optionalNumber(doc, "quantity"); err != nil {
		return err
	}
	return optionalNumber(doc, "price")
}
