package validation

import (
	"testing"

	"github.com/gomart/gomart/internal/store"
)

func validRegistration() store.Document {
	return store.Document{
		"firstName": "Paula",
		"lastName":  "Moreno",
		"userName":  "paulam99",
		"password":  "clave-larga-1",
		"email":     "paula@example.com",
	}
}

func TestCreateUser_Valid(t *testing.T) {
	if err := CreateUser(validRegistration()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateUser_FieldRules(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value any
	}{
		{"nombre corto", "firstName", "Al"},
		{"userName corto", "userName", "abc"},
		{"password corto", "password", "1234567"},
		{"email inválido", "email", "no-es-email"},
		{"campo no string", "lastName", 42},
	}
	for _, tc := range cases {
		doc := validRegistration()
		doc[tc.field] = tc.value
		if err := CreateUser(doc); err == nil {
			t.Fatalf("%s: se esperaba error", tc.name)
		}
	}

	doc := validRegistration()
	delete(doc, "email")
	if err := CreateUser(doc); err == nil {
		t.Fatal("email faltante: se esperaba error")
	}
}

func TestValidateEmail(t *testing.T) {
	if got, err := ValidateEmail("  ana@example.com  "); err != nil || got != "ana@example.com" {
		t.Fatalf("got %q, %v", got, err)
	}
	for _, bad := range []string{"", "a@b", "sin-arroba.com", "dos@@example.com"} {
		if _, err := ValidateEmail(bad); err == nil {
			t.Fatalf("%q: se esperaba error", bad)
		}
	}
}

func TestCreateInventory_NumericStringsAccepted(t *testing.T) {
	doc := store.Document{
		"categoryId": "3",
		"sellerId":   float64(7),
		"name":       "Luminaria",
		"quantity":   "12",
		"price":      "99.90",
	}
	if err := CreateInventory(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc["price"] = "gratis"
	if err := CreateInventory(doc); err == nil {
		t.Fatal("price no numérico: se esperaba error")
	}
}

func TestCreateOrderAndCartShapes(t *testing.T) {
	order := store.Document{
		"userId":   1,
		"amount":   150.0,
		"products": map[string]any{"3": map[string]any{"qty": 2}},
	}
	if err := CreateOrder(order); err != nil {
		t.Fatalf("order: %v", err)
	}
	order["products"] = []any{"no", "es", "mapping"}
	if err := CreateOrder(order); err == nil {
		t.Fatal("products como lista: se esperaba error")
	}

	cart := store.Document{"userId": 1, "products": []any{map[string]any{"id": 3}}}
	if err := CreateCart(cart); err != nil {
		t.Fatalf("cart: %v", err)
	}
	cart["products"] = "texto"
	if err := CreateCart(cart); err == nil {
		t.Fatal("products como string: se esperaba error")
	}
}
