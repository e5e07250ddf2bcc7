// Package model define los registros de dominio y su metadata común.
// Todas las entidades se registran estáticamente en Entities (nada de
// registro dinámico por side effects).
package model

import "time"

// Metadata son los campos obligatorios de todo registro persistido.
// UID es el identificador nativo del motor (único de verdad); ID es el
// secuencial visible para clientes, asignado al crear.
type Metadata struct {
	UID       string    `json:"uid,omitempty"`
	ID        int64     `json:"id,omitempty"`
	IsActive  bool      `json:"isActive"`
	IsDeleted bool      `json:"isDeleted"`
	TimeStamp int64     `json:"timeStamp,omitempty"`
	CreatedOn time.Time `json:"createdOn,omitempty"`
	UpdatedOn time.Time `json:"updatedOn,omitempty"`
}

// RecordID implementa response.Identifiable.
func (m Metadata) RecordID() int64 { return m.ID }

// Roles de usuario.
const (
	RoleShopper = "shopper"
	RoleSeller  = "seller"
	RoleAdmin   = "admin"
)

// ValidRole reporta si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleShopper, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// Nombres de colección, uno por entidad.
const (
	CollectionUser      = "users"
	CollectionStore     = "stores"
	CollectionInventory = "inventories"
	CollectionCategory  = "categories"
	CollectionCart      = "carts"
	CollectionOrder     = "orders"
)

// Entities es la tabla estática de entidades registradas; la usan las
// migraciones y el wiring de colecciones.
var Entities = []string{
	CollectionUser,
	CollectionStore,
	CollectionInventory,
	CollectionCategory,
	CollectionCart,
	CollectionOrder,
}

// User es una cuenta de la plataforma.
type User struct {
	Metadata
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	UserName   string `json:"userName,omitempty"`
	Password   string `json:"password,omitempty"` // siempre hasheado en reposo
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
	IsVerified bool   `json:"isVerified"`
}

// Store es la tienda de un seller (una por seller).
type Store struct {
	Metadata
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	SellerID    int64  `json:"sellerId,omitempty"`
}

// Inventory es un producto publicado por un seller.
type Inventory struct {
	Metadata
	SellerID    int64   `json:"sellerId,omitempty"`
	CategoryID  int64   `json:"categoryId,omitempty"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Quantity    int64   `json:"quantity,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
}

// Category clasifica inventario.
type Category struct {
	Metadata
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Cart es el carrito activo de un shopper.
type Cart struct {
	Metadata
	UserID   int64 `json:"userId,omitempty"`
	Products []any `json:"products"`
}

// Order es una compra concretada. Products mapea productId -> cantidad.
type Order struct {
	Metadata
	UserID   int64          `json:"userId,omitempty"`
	Products map[string]any `json:"products,omitempty"`
	Amount   float64        `json:"amount,omitempty"`
}
