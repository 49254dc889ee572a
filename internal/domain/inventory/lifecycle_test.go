package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func TestTransition_SalidaDaDeBaja(t *testing.T) {
	next, err := inventory.Transition(entity.ItemStatusActive, entity.TransactionTypeOUT)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusRemoved, next)
}

func TestTransition_EntradaNoRevierteBaja(t *testing.T) {
	next, err := inventory.Transition(entity.ItemStatusRemoved, entity.TransactionTypeIN)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusRemoved, next, "REMOVED es terminal")

	next, err = inventory.Transition(entity.ItemStatusRemoved, entity.TransactionTypeADJUST)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusRemoved, next)
}

func TestTransition_EntradaConservaActivo(t *testing.T) {
	next, err := inventory.Transition(entity.ItemStatusActive, entity.TransactionTypeIN)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusActive, next)
}

func TestTransition_SegundaSalidaEsConflicto(t *testing.T) {
	_, err := inventory.Transition(entity.ItemStatusRemoved, entity.TransactionTypeOUT)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTransition_EstadoDesconocido(t *testing.T) {
	_, err := inventory.Transition("ARCHIVED", entity.TransactionTypeIN)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
