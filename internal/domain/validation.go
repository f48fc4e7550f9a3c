package domain

import (
	"fmt"
	"regexp"
)

// Reglas de formato compartidas por registro y administración de empresas.
// Las violaciones se reportan envolviendo ErrValidation para que la capa HTTP
// las mapee a 400 sin inspeccionar el texto.

var companyKeyPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// MinCompanyKeyLen largo mínimo del slug de empresa.
const MinCompanyKeyLen = 3

// MinPasswordLen largo mínimo de contraseña en registro y alta de usuarios.
const MinPasswordLen = 6

// CNPJDigits cantidad exacta de dígitos de un CNPJ brasileño.
const CNPJDigits = 14

// ValidateCompanyKey valida que key sea un slug URL-safe de al menos 3 caracteres:
// minúsculas y dígitos separados por guiones simples, sin guión inicial ni final.
func ValidateCompanyKey(key string) error {
	if len(key) < MinCompanyKeyLen {
		return fmt.Errorf("%w: company_key debe tener al menos %d caracteres", ErrValidation, MinCompanyKeyLen)
	}
	if !companyKeyPattern.MatchString(key) {
		return fmt.Errorf("%w: company_key debe ser un slug válido (minúsculas, dígitos y guiones)", ErrValidation)
	}
	return nil
}

// ValidateCNPJ valida que cnpj contenga exactamente 14 dígitos, ignorando
// puntuación ("11.222.333/0001-44" y "11222333000144" son equivalentes).
func ValidateCNPJ(cnpj string) error {
	digits := 0
	for _, r := range cnpj {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == '/' || r == '-' || r == ' ':
			// puntuación aceptada
		default:
			return fmt.Errorf("%w: CNPJ contiene caracteres inválidos", ErrValidation)
		}
	}
	if digits != CNPJDigits {
		return fmt.Errorf("%w: CNPJ debe tener %d dígitos", ErrValidation, CNPJDigits)
	}
	return nil
}

// ValidatePassword valida el largo mínimo de la contraseña en texto plano.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", ErrValidation, MinPasswordLen)
	}
	return nil
}
