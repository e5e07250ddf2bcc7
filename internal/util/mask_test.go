package util

import "testing"

func TestMaskEmail(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"nadia@example.com", "n…@e….com"},
		{"A@B.CO", "a@b.co"},
		{"", ""},
		{"abc", "***"},
		{"sin-arroba-larga", "s…a"},
	}
	for _, tc := range cases {
		if got := MaskEmail(tc.in); got != tc.want {
			t.Fatalf("MaskEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
