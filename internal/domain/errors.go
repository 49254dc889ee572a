package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("...: %w", ...) para añadir detalle;
// los llamadores los distinguen con errors.Is.
var (
	ErrValidation             = errors.New("datos inválidos")
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUnclassifiableMovement = errors.New("movimiento sin regla de contabilización")
	ErrAtomicityFailure       = errors.New("no se pudo confirmar la operación")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
)

// ErrInvalidAmount monto negativo. Es un caso particular de ErrValidation:
// errors.Is(ErrInvalidAmount, ErrValidation) == true.
var ErrInvalidAmount error = invalidAmountError{}

type invalidAmountError struct{}

func (invalidAmountError) Error() string { return "monto inválido" }

func (invalidAmountError) Is(target error) bool { return target == ErrValidation }
