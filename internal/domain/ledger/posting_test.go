package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/ledger"
)

var testDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func input(txType, reason string, amount string) ledger.PostingInput {
	return ledger.PostingInput{
		UserID:          "user-1",
		TransactionID:   "tx-1",
		Type:            txType,
		Reason:          reason,
		Amount:          decimal.RequireFromString(amount),
		AccountID:       "acc-1",
		ItemID:          "item-1",
		TransactionDate: testDate,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante de balance: toda regla produce un DEBIT y un CREDIT por el mismo monto
// ──────────────────────────────────────────────────────────────────────────────

func TestPost_BalanceEnTodosLosParesClasificables(t *testing.T) {
	pairs := []struct{ txType, reason string }{
		{entity.TransactionTypeIN, entity.ReasonPurchase},
		{entity.TransactionTypeIN, entity.ReasonGift},
		{entity.TransactionTypeIN, entity.ReasonAdjust},
		{entity.TransactionTypeOUT, entity.ReasonSell},
		{entity.TransactionTypeOUT, entity.ReasonDispose},
		{entity.TransactionTypeOUT, entity.ReasonGift},
		{entity.TransactionTypeOUT, entity.ReasonLost},
		{entity.TransactionTypeOUT, entity.ReasonAdjust},
	}
	for _, amount := range []string{"0", "0.01", "1000.00", "123456789.99"} {
		for _, p := range pairs {
			entries, err := ledger.Post(input(p.txType, p.reason, amount))
			require.NoError(t, err, "%s/%s debe tener regla", p.txType, p.reason)
			require.Len(t, entries, 2)

			assert.Equal(t, entity.DirectionDebit, entries[0].Direction)
			assert.Equal(t, entity.DirectionCredit, entries[1].Direction)
			assert.True(t, ledger.Balanced(entries, decimal.RequireFromString(amount)),
				"%s/%s con monto %s debe quedar balanceado", p.txType, p.reason, amount)

			for _, e := range entries {
				assert.Equal(t, testDate, e.TransactionDate)
				assert.Equal(t, "acc-1", e.AccountID)
				assert.Equal(t, "item-1", e.ItemID)
				assert.Equal(t, "user-1", e.UserID)
				assert.Equal(t, "tx-1", e.TransactionID)
			}
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ruteo por motivo
// ──────────────────────────────────────────────────────────────────────────────

func TestPost_Entrada_InventarioContraCaja(t *testing.T) {
	entries, err := ledger.Post(input(entity.TransactionTypeIN, entity.ReasonPurchase, "1000.00"))
	require.NoError(t, err)

	assert.Equal(t, entity.LedgerCodeInventory, entries[0].CategoryCode)
	assert.Equal(t, entity.LedgerCodeCash, entries[1].CategoryCode)
	assert.Equal(t, ledger.NoteInbound, entries[0].Note)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("1000.00")))
}

func TestPost_Venta_CajaContraInventario(t *testing.T) {
	entries, err := ledger.Post(input(entity.TransactionTypeOUT, entity.ReasonSell, "80"))
	require.NoError(t, err)

	assert.Equal(t, entity.LedgerCodeCash, entries[0].CategoryCode, "la venta debita CASH")
	assert.Equal(t, entity.LedgerCodeInventory, entries[1].CategoryCode, "la venta acredita INVENTORY")
	assert.Equal(t, ledger.NoteResale, entries[1].Note)
}

func TestPost_Descarte_PerdidaContraInventario(t *testing.T) {
	for _, reason := range []string{entity.ReasonDispose, entity.ReasonGift, entity.ReasonLost, entity.ReasonAdjust} {
		entries, err := ledger.Post(input(entity.TransactionTypeOUT, reason, "15.50"))
		require.NoError(t, err)

		assert.Equal(t, entity.LedgerCodeLoss, entries[0].CategoryCode, "OUT/%s debita LOSS", reason)
		assert.Equal(t, entity.LedgerCodeInventory, entries[1].CategoryCode, "OUT/%s acredita INVENTORY", reason)
		assert.Equal(t, ledger.NoteDisposal, entries[0].Note)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazos: nunca se emite un conjunto vacío o desbalanceado
// ──────────────────────────────────────────────────────────────────────────────

func TestPost_AjusteSinRegla_Rechaza(t *testing.T) {
	for _, reason := range []string{entity.ReasonPurchase, entity.ReasonSell, entity.ReasonAdjust, entity.ReasonLost} {
		entries, err := ledger.Post(input(entity.TransactionTypeADJUST, reason, "10"))
		assert.True(t, errors.Is(err, domain.ErrUnclassifiableMovement), "ADJUST/%s debe rechazarse", reason)
		assert.Nil(t, entries)
	}
}

func TestPost_SalidaPorCompra_Rechaza(t *testing.T) {
	entries, err := ledger.Post(input(entity.TransactionTypeOUT, entity.ReasonPurchase, "10"))
	assert.ErrorIs(t, err, domain.ErrUnclassifiableMovement)
	assert.Nil(t, entries)
}

func TestPost_ValoresDesconocidos_Rechaza(t *testing.T) {
	_, err := ledger.Post(input("TRANSFER", entity.ReasonPurchase, "10"))
	assert.ErrorIs(t, err, domain.ErrUnclassifiableMovement)

	_, err = ledger.Post(input(entity.TransactionTypeIN, "STOLEN", "10"))
	assert.ErrorIs(t, err, domain.ErrUnclassifiableMovement)
}

func TestPost_MontoNegativo_Rechaza(t *testing.T) {
	entries, err := ledger.Post(input(entity.TransactionTypeIN, entity.ReasonPurchase, "-0.01"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.ErrorIs(t, err, domain.ErrValidation, "monto inválido es un error de validación")
	assert.Nil(t, entries)
}

func TestBalanced_ConjuntoVacioNoEstaBalanceado(t *testing.T) {
	assert.False(t, ledger.Balanced(nil, decimal.Zero))
}

func TestBalanced_DetectaDesbalance(t *testing.T) {
	entries := []entity.LedgerEntry{
		{Direction: entity.DirectionDebit, Amount: decimal.NewFromInt(10)},
		{Direction: entity.DirectionCredit, Amount: decimal.NewFromInt(9)},
	}
	assert.False(t, ledger.Balanced(entries, decimal.NewFromInt(10)))

	debit, credit := ledger.Totals(entries)
	assert.True(t, debit.Equal(decimal.NewFromInt(10)))
	assert.True(t, credit.Equal(decimal.NewFromInt(9)))
}
