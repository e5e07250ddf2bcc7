package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := New(Config{Kind: "memory", DefaultTTL: time.Minute})

	if _, ok := c.Get("missing"); ok {
		t.Fatal("clave inexistente no debe estar")
	}

	c.Set("k", []byte("valor"), time.Minute)
	got, ok := c.Get("k")
	if !ok || string(got) != "valor" {
		t.Fatalf("Get = %q, %v", got, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("clave borrada no debe estar")
	}
}

func TestMemoryCache_TTLExpires(t *testing.T) {
	c := New(Config{Kind: "memory", DefaultTTL: time.Minute})

	c.Set("fugaz", []byte("x"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("fugaz"); ok {
		t.Fatal("la entrada debió expirar")
	}
}

func TestOffIsNoop(t *testing.T) {
	c := New(Config{Kind: "off"})
	c.Set("k", []byte("v"), time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatal("noop no debe guardar nada")
	}
}
