package password

import "testing"

func TestHashVerify_RoundTrip(t *testing.T) {
	t.Parallel()
	// Costo mínimo para que el test sea rápido
	p := Params{Cost: 4}

	for _, plain := range []string{"longenough", "p", "hola mundo ✓"} {
		h, err := Hash(p, plain)
		if err != nil {
			t.Fatalf("Hash(%q): %v", plain, err)
		}
		if h == plain {
			t.Fatalf("el hash no puede ser el plaintext")
		}
		if !Verify(plain, h) {
			t.Fatalf("Verify(%q) debería matchear", plain)
		}
		if Verify(plain+"x", h) {
			t.Fatalf("Verify con password incorrecto no debe matchear")
		}
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	t.Parallel()
	if _, err := Hash(Default, ""); err == nil {
		t.Fatal("esperaba error con password vacío")
	}
}

func TestHash_OutOfRangeCostFallsBack(t *testing.T) {
	t.Parallel()
	h, err := Hash(Params{Cost: 99}, "longenough")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !Verify("longenough", h) {
		t.Fatal("hash con costo fuera de rango debe degradar al default")
	}
}
