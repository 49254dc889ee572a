package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Transition implementa la máquina de estados del ítem (servicio de dominio).
//
//	ACTIVE  --OUT-->  REMOVED
//	REMOVED --OUT-->  error (la baja ocurre una sola vez)
//	IN / ADJUST conservan el estado actual; REMOVED nunca vuelve a ACTIVE.
func Transition(current, txType string) (string, error) {
	switch current {
	case entity.ItemStatusActive, entity.ItemStatusRemoved:
	default:
		return "", fmt.Errorf("%w: estado de ítem %q", domain.ErrValidation, current)
	}
	if txType != entity.TransactionTypeOUT {
		return current, nil
	}
	if current == entity.ItemStatusRemoved {
		return "", fmt.Errorf("%w: el ítem ya fue dado de baja", domain.ErrConflict)
	}
	return entity.ItemStatusRemoved, nil
}
