package validation

import (
	"fmt"

	"github.com/gomart/gomart/internal/store"
)

// CreateCart valida el alta de un carrito.
func CreateCart(doc store.Document) error {
	if err := requireNumber(doc, "userId"); err != nil {
		return err
	}
	if v, ok := doc["products"]; ok && v != nil {
		if _, ok := v.([]any); !ok {
			return fmt.Errorf("products must be a list")
		}
	}
	return nil
}
