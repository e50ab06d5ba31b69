package catalog

import "testing"

func TestBrandFromSlug(t *testing.T) {
	cases := []struct {
		slug string
		want string
	}{
		{"vichy", "Vichy"},
		{"la-roche-posay", "La Roche Posay"},
		{"évian-brumisateur", "Évian Brumisateur"}, // accented first rune
		{"dercos", "Dercos"},
	}
	for _, tc := range cases {
		if got := BrandFromSlug(tc.slug); got != tc.want {
			t.Fatalf("BrandFromSlug(%q)=%q, want %q", tc.slug, got, tc.want)
		}
	}
}

func TestBrandSlug(t *testing.T) {
	if got := BrandSlug("La Roche Posay"); got != "la-roche-posay" {
		t.Fatalf("BrandSlug=%q", got)
	}
}

func TestBrandCopy_KnownAndFallback(t *testing.T) {
	known := BrandCopy("Vichy")
	if known.Tagline == "" || known.Name != "Vichy" {
		t.Fatalf("known brand: %+v", known)
	}
	// Lookup is case-insensitive.
	if BrandCopy("VICHY").Tagline != known.Tagline {
		t.Fatalf("lookup not case-insensitive")
	}

	other := BrandCopy("Marque Inconnue")
	if other.Tagline == "" || other.Tagline == known.Tagline {
		t.Fatalf("fallback copy missing or wrong: %+v", other)
	}
}
