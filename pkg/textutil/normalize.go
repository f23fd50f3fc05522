// Package textutil normaliza texto para búsquedas insensibles a tildes y
// mayúsculas (nombres de productos, bitácora). "Glifosato" y "glifósato"
// deben coincidir en los filtros.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)), // marcas diacríticas
	norm.NFC,
)

// Normalize devuelve el texto en minúsculas y sin diacríticos.
func Normalize(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// Matches indica si needle aparece en haystack, comparando normalizado.
func Matches(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Normalize(haystack), Normalize(needle))
}
