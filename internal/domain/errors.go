package domain

import "errors"

// Errores de dominio (sin dependencias externas). Son terminales: ningún error
// se convierte silenciosamente en otro y el core nunca reintenta. El mapeo a
// códigos HTTP vive únicamente en la capa de interfaces.
var (
	ErrUnauthenticated = errors.New("no autenticado")
	ErrAccountDisabled = errors.New("cuenta deshabilitada")
	ErrForbidden       = errors.New("acceso denegado")
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrConflict        = errors.New("conflicto de unicidad")
	ErrValidation      = errors.New("entrada inválida")
)
