package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cobranza-api/internal/domain"
)

func TestValidateCompanyKey(t *testing.T) {
	cases := []struct {
		key   string
		valid bool
	}{
		{"acme", true},
		{"ac-me", true}, // 5 caracteres, slug válido
		{"acme-filial-02", true},
		{"a1b", true},
		{"ab", false},       // menos de 3 caracteres
		{"", false},
		{"Acme", false},     // mayúsculas
		{"acme_sp", false},  // guión bajo
		{"-acme", false},    // guión inicial
		{"acme-", false},    // guión final
		{"ac--me", false},   // guión doble
		{"acme sp", false},  // espacio
		{"açaí", false},     // acentos
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			err := domain.ValidateCompanyKey(tc.key)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrValidation)
			}
		})
	}
}

func TestValidateCNPJ(t *testing.T) {
	assert.NoError(t, domain.ValidateCNPJ("11.222.333/0001-44"))
	assert.NoError(t, domain.ValidateCNPJ("11222333000144"))

	assert.ErrorIs(t, domain.ValidateCNPJ("1122233300014"), domain.ErrValidation)   // 13 dígitos
	assert.ErrorIs(t, domain.ValidateCNPJ("112223330001445"), domain.ErrValidation) // 15 dígitos
	assert.ErrorIs(t, domain.ValidateCNPJ("11.222.333/0001-4X"), domain.ErrValidation)
	assert.ErrorIs(t, domain.ValidateCNPJ(""), domain.ErrValidation)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, domain.ValidatePassword("123456"))
	assert.ErrorIs(t, domain.ValidatePassword("12345"), domain.ErrValidation)
}
