package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Taxonomía: validación (entrada malformada), conflicto (invariante de
// negocio violada) y no-encontrado. Todos abortan la transacción que los
// envuelve; el núcleo no reintenta nada.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Invariantes del motor de inventario.
	ErrInsufficientOnHand    = errors.New("existencia física insuficiente")
	ErrBelowReserved         = errors.New("la existencia no puede quedar por debajo de lo reservado")
	ErrInsufficientAvailable = errors.New("inventario disponible insuficiente para reservar")
	ErrReservationExceeded   = errors.New("no se puede consumir más de lo reservado")
)
