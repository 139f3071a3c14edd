// Package textutil normaliza texto para búsquedas insensibles a mayúsculas y tildes.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold quita diacríticos y aplica case folding: "Análisis" y "analisis" quedan iguales.
// Los transformers de x/text tienen estado, por eso se crean en cada llamada.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// ContainsFold reporta si needle aparece en haystack ignorando mayúsculas y tildes.
// Un needle vacío siempre coincide.
func ContainsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// MatchAny reporta si needle aparece en alguno de los campos.
func MatchAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if ContainsFold(f, needle) {
			return true
		}
	}
	return strings.TrimSpace(needle) == ""
}
