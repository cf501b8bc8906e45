package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrCartNotFound       = errors.New("carrito no encontrado")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// UnavailableItem describe una línea del carrito que no puede venderse:
// lo solicitado excede lo disponible (0 si el producto ya no existe).
type UnavailableItem struct {
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// ItemsUnavailableError agrupa todas las líneas no disponibles detectadas en la
// verificación de checkout. El carrito queda intacto para que el usuario ajuste
// cantidades y reintente.
type ItemsUnavailableError struct {
	Items []UnavailableItem
}

func (e *ItemsUnavailableError) Error() string {
	return fmt.Sprintf("%d artículo(s) ya no disponible(s)", len(e.Items))
}

// Is permite errors.Is(err, ErrInsufficientStock) sobre el error estructurado.
func (e *ItemsUnavailableError) Is(target error) bool {
	return target == ErrInsufficientStock
}
