// Package password encapsula el hashing de contraseñas con bcrypt.
// El costo sale de la configuración del proceso (una sola vez al arranque).
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Params parametriza el hashing.
type Params struct {
	Cost int // factor de costo bcrypt (4..31)
}

var Default = Params{Cost: bcrypt.DefaultCost}

// Hash devuelve el hash bcrypt del plaintext como string opaco.
// Nunca reversible; el salt va embebido en el propio hash.
func Hash(p Params, plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("empty password")
	}
	cost := p.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara plaintext contra un hash almacenado.
// bcrypt compara en tiempo constante; no hay short-circuit por byte.
func Verify(plain, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}
