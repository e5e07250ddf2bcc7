package validation

import (
	"fmt"

	"github.com/gomart/gomart/internal/store"
)

// CreateOrder valida el alta de una orden.
func CreateOrder(doc store.Document) error {
	if err := requireNumber(doc, "userId"); err != nil {
		return err
	}
	if err := requireNumber(doc, "amount"); err != nil {
		return err
	}
	v, ok := doc["products"]
	if !ok || v == nil {
		return fmt.Errorf("products is required")
	}
	if _, ok := v.(map[string]any); !ok {
		return fmt.Errorf("products must be a mapping")
	}
	return nil
}
