// Package normalize produce claves de comparación para nombres de proveedor.
// Los nombres llegan cargados a mano desde las sucursales: "Acmé  S.R.L." y
// "acme s.r.l." son el mismo proveedor y deben chocar contra el índice único.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Key devuelve la clave de comparación de un nombre: sin acentos, en
// minúsculas, sin espacios al borde y con espacios internos colapsados.
func Key(nombre string) string {
	s, _, err := transform.String(stripAccents, nombre)
	if err != nil {
		s = nombre
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// Equal indica si dos nombres refieren al mismo proveedor.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}
