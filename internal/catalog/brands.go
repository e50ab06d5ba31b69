package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// BrandInfo is the hero copy shown on a brand landing page.
type BrandInfo struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
}

// Hero copy keyed by normalized brand name. Unknown brands fall back to a
// generic entry built from the brand name.
var brandCopy = map[string]string{
	"dercos":         "Pionnier de l'innovation et de la recherche sur le cuir chevelu depuis plus de 50 ans. Créé en 1964 avec comme ambition : associer l'expertise dermatologique à la connaissance en cosmétique.",
	"la roche posay": "Recommandée par plus de 90 000 dermatologues dans le monde, La Roche-Posay développe des produits pour les peaux sensibles.",
	"vichy":          "Depuis 1931, Vichy puise sa force dans les vertus de son Eau Thermale minéralisante, véritable signature de la marque.",
	"avène":          "Depuis plus de 270 ans, l'Eau thermale d'Avène apaise et soulage les peaux sensibles, intolérantes et allergiques.",
}

// BrandCopy returns the hero copy for a brand, with a default fallback.
func BrandCopy(brand string) BrandInfo {
	if tagline, ok := brandCopy[strings.ToLower(strings.TrimSpace(brand))]; ok {
		return BrandInfo{Name: brand, Tagline: tagline}
	}
	return BrandInfo{
		Name:    brand,
		Tagline: "Découvrez tous les produits " + brand + ", une marque de confiance pour vos soins.",
	}
}

// BrandFromSlug converts a URL slug back to a displayable brand name:
// dashes become spaces and each word is title-cased. The result feeds a
// case-insensitive partial match at the data layer, so casing differences
// with the stored brand are fine.
func BrandFromSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		// Uppercase the first rune, not the first byte: slugs may start
		// with accented characters.
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// BrandSlug is the inverse mapping used when listing brands.
func BrandSlug(brand string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(brand), " ", "-"))
}
