package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/ordenes-pro/pkg/normalize"
)

func TestKey_QuitaAcentosYMayusculas(t *testing.T) {
	casos := []struct {
		in   string
		want string
	}{
		{"Almacén Río SRL", "almacen rio srl"},
		{"ALMACEN RIO SRL", "almacen rio srl"},
		{"  Almacen   Río  SRL  ", "almacen rio srl"},
		{"Ñandú S.A.", "nandu s.a."},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, normalize.Key(c.in), "Key(%q)", c.in)
	}
}

func TestEqual_MismoProveedor(t *testing.T) {
	assert.True(t, normalize.Equal("Almacén Río SRL", "almacen rio srl"))
	assert.True(t, normalize.Equal("ACME", "  acme "))
	assert.False(t, normalize.Equal("Acme SRL", "Acme SA"),
		"razones sociales distintas no deben normalizar igual")
}
