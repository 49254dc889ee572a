package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

const (
	testUser    = "user-1"
	testAccount = "acc-1"
	testItem    = "item-1"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestUseCase(db *memDB) *inventory.TransactionUseCase {
	v := memView{db: db}
	return inventory.NewTransactionUseCase(
		memRunner{db: db},
		memAccountRepo{v}, memItemRepo{v}, memTxRepo{v}, memLedgerRepo{v},
		zerolog.Nop(),
	).WithClock(func() time.Time { return fixedNow })
}

func seededDB() *memDB {
	db := newMemDB()
	db.addAccount(testUser, testAccount)
	db.addItem(testUser, testItem)
	return db
}

func input(txType, reason string, qty int, price string) inventory.RecordInput {
	return inventory.RecordInput{
		UserID:          testUser,
		ItemID:          testItem,
		AccountID:       testAccount,
		Type:            txType,
		Quantity:        qty,
		UnitPrice:       decimal.RequireFromString(price),
		TransactionDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Reason:          reason,
	}
}

// ─── Record ──────────────────────────────────────────────────────────────────

func TestRecord_CompraGeneraAsientosInventarioCaja(t *testing.T) {
	db := seededDB()
	uc := newTestUseCase(db)

	tx, err := uc.Record(context.Background(), input(entity.TransactionTypeIN, entity.ReasonPurchase, 10, "100.00"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1000.00").Equal(tx.TotalAmount))

	require.Len(t, db.state.txs, 1)
	require.Len(t, db.state.entries, 2)
	debit, credit := db.state.entries[0], db.state.entries[1]
	assert.Equal(t, entity.DirectionDebit, debit.Direction)
	assert.Equal(t, entity.LedgerCodeInventory, debit.CategoryCode)
	assert.Equal(t, entity.DirectionCredit, credit.Direction)
	assert.Equal(t, entity.LedgerCodeCash, credit.CategoryCode)
	for _, e := range db.state.entries {
		assert.True(t, tx.TotalAmount.Equal(e.Amount))
		assert.Equal(t, tx.ID, e.TransactionID)
		assert.Equal(t, testAccount, e.AccountID)
		assert.Equal(t, testItem, e.ItemID)
	}
	assert.Equal(t, entity.ItemStatusActive, db.state.items[testItem].Status)
}

func TestRecord_VentaDaDeBajaYEntradaPosteriorNoRevierte(t *testing.T) {
	db := seededDB()
	uc := newTestUseCase(db)
	ctx := context.Background()

	_, err := uc.Record(ctx, input(entity.TransactionTypeOUT, entity.ReasonSell, 1, "25.50"))
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusRemoved, db.state.items[testItem].Status)
	assert.Equal(t, entity.LedgerCodeCash, db.state.entries[0].CategoryCode)
	assert.Equal(t, entity.LedgerCodeInventory, db.state.entries[1].CategoryCode)

	_, err = uc.Record(ctx, input(entity.TransactionTypeIN, entity.ReasonPurchase, 1, "10.00"))
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusRemoved, db.state.items[testItem].Status)
}

func TestRecord_SalidaSobreItemDadoDeBaja_Conflicto(t *testing.T) {
	db := seededDB()
	uc := newTestUseCase(db)
	ctx := context.Background()

	_, err := uc.Record(ctx, input(entity.TransactionTypeOUT, entity.ReasonGift, 1, "0"))
	require.NoError(t, err)

	_, err = uc.Record(ctx, input(entity.TransactionTypeOUT, entity.ReasonLost, 1, "0"))
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, db.state.txs, 1)
	assert.Len(t, db.state.entries, 2)
}

func TestRecord_AjusteRechazadoSinPersistir(t *testing.T) {
	db := seededDB()
	uc := newTestUseCase(db)

	_, err := uc.Record(context.Background(), input(entity.TransactionTypeADJUST, entity.ReasonAdjust, 1, "5.00"))
	require.ErrorIs(t, err, domain.ErrUnclassifiableMovement)
	assert.Empty(t, db.state.txs)
	assert.Empty(t, db.state.entries)
}

func TestRecord_FalloEnAsientos_NoQuedaNada(t *testing.T) {
	db := seededDB()
	db.failLedger = errStoreDown
	uc := newTestUseCase(db)

	_, err := uc.Record(context.Background(), input(entity.TransactionTypeOUT, entity.ReasonSell, 1, "30.00"))
	require.ErrorIs(t, err, domain.ErrAtomicityFailure)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, db.state.txs)
	assert.Empty(t, db.state.entries)
	assert.Equal(t, entity.ItemStatusActive, db.state.items[testItem].Status)
}

func TestRecord_Validaciones(t *testing.T) {
	cases := map[string]func(in *inventory.RecordInput){
		"cantidad cero":   func(in *inventory.RecordInput) { in.Quantity = 0 },
		"tipo invalido":   func(in *inventory.RecordInput) { in.Type = "MOVE" },
		"motivo invalido": func(in *inventory.RecordInput) { in.Reason = "STEAL" },
		"sin fecha":       func(in *inventory.RecordInput) { in.TransactionDate = time.Time{} },
		"fecha futura":    func(in *inventory.RecordInput) { in.TransactionDate = fixedNow.AddDate(0, 0, 1) },
		"sin cuenta":      func(in *inventory.RecordInput) { in.AccountID = "" },
		"precio negativo": func(in *inventory.RecordInput) { in.UnitPrice = decimal.NewFromInt(-1) },
		"tres decimales":  func(in *inventory.RecordInput) { in.UnitPrice = decimal.RequireFromString("0.335"); in.Quantity = 3 },
		"precio excesivo": func(in *inventory.RecordInput) { in.UnitPrice = decimal.New(1, 16) },
		"total excesivo":  func(in *inventory.RecordInput) { in.UnitPrice = decimal.New(5, 15); in.Quantity = 3 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			db := seededDB()
			uc := newTestUseCase(db)
			in := input(entity.TransactionTypeIN, entity.ReasonPurchase, 1, "1.00")
			mutate(&in)

			_, err := uc.Record(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, db.state.txs)
		})
	}
}

func TestRecord_TotalExactoConCeroFinal(t *testing.T) {
	db := seededDB()
	uc := newTestUseCase(db)

	tx, err := uc.Record(context.Background(), input(entity.TransactionTypeIN, entity.ReasonPurchase, 3, "0.330"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.99").Equal(tx.TotalAmount), tx.TotalAmount.String())
	require.Len(t, db.state.entries, 2)
	assert.True(t, tx.TotalAmount.Equal(db.state.entries[0].Amount))
}

func TestCheckAmount(t *testing.T) {
	assert.NoError(t, inventory.CheckAmount("x", decimal.Zero))
	assert.NoError(t, inventory.CheckAmount("x", decimal.RequireFromString("9999999999999999.99")))
	assert.ErrorIs(t, inventory.CheckAmount("x", decimal.RequireFromString("10000000000000000")), domain.ErrValidation)
	assert.ErrorIs(t, inventory.CheckAmount("x", decimal.RequireFromString("1.001")), domain.ErrValidation)
	assert.ErrorIs(t, inventory.CheckAmount("x", decimal.RequireFromString("-1")), domain.ErrInvalidAmount)
}

func TestRecord_PrecioNegativo_EsMontoInvalido(t *testing.T) {
	uc := newTestUseCase(seededDB())
	_, err := uc.Record(context.Background(), input(entity.TransactionTypeIN, entity.ReasonPurchase, 1, "-0.01"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestRecord_FechaDeHoyPermitida(t *testing.T) {
	uc := newTestUseCase(seededDB())
	in := input(entity.TransactionTypeIN, entity.ReasonPurchase, 1, "1.00")
	in.TransactionDate = fixedNow

	tx, err := uc.Record(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), tx.TransactionDate)
}

func TestRecord_CuentaOItemInexistente(t *testing.T) {
	db := seededDB()
	uc := newTestUseCase(db)
	ctx := context.Background()

	in := input(entity.TransactionTypeIN, entity.ReasonPurchase, 1, "1.00")
	in.AccountID = "otra"
	_, err := uc.Record(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = input(entity.TransactionTypeIN, entity.ReasonPurchase, 1, "1.00")
	in.UserID = "intruso"
	_, err = uc.Record(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	deleted := fixedNow
	db.state.items[testItem].DeletedAt = &deleted
	_, err = uc.Record(ctx, input(entity.TransactionTypeIN, entity.ReasonPurchase, 1, "1.00"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, db.state.txs)
}

// ─── Idempotencia ────────────────────────────────────────────────────────────

func TestRecord_MismaClaveDevuelveElMismoMovimiento(t *testing.T) {
	db := seededDB()
	store := newMemIdempotency()
	uc := newTestUseCase(db).WithIdempotency(store)
	ctx := context.Background()

	in := input(entity.TransactionTypeIN, entity.ReasonPurchase, 2, "3.00")
	in.IdempotencyKey = "req-1"

	first, err := uc.Record(ctx, in)
	require.NoError(t, err)
	second, err := uc.Record(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, db.state.txs, 1)
	assert.Len(t, db.state.entries, 2)
	assert.Equal(t, first.ID, store.keys[testUser+":req-1"])
}

func TestRecord_ClaveLiberadaSiFalla(t *testing.T) {
	db := seededDB()
	db.failLedger = errStoreDown
	store := newMemIdempotency()
	uc := newTestUseCase(db).WithIdempotency(store)

	in := input(entity.TransactionTypeIN, entity.ReasonPurchase, 1, "1.00")
	in.IdempotencyKey = "req-2"
	_, err := uc.Record(context.Background(), in)
	require.Error(t, err)
	assert.Empty(t, store.keys)

	db.failLedger = nil
	_, err = uc.Record(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, db.state.txs, 1)
}

func TestRecord_SinStoreUsaIndiceUnico(t *testing.T) {
	db := seededDB()
	uc := newTestUseCase(db)
	ctx := context.Background()

	in := input(entity.TransactionTypeIN, entity.ReasonPurchase, 1, "1.00")
	in.IdempotencyKey = "req-3"
	first, err := uc.Record(ctx, in)
	require.NoError(t, err)
	second, err := uc.Record(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, db.state.txs, 1)
}

// ─── Consultas y verificación ────────────────────────────────────────────────

func TestGetByID_DevuelveAsientos(t *testing.T) {
	db := seededDB()
	uc := newTestUseCase(db)
	ctx := context.Background()

	tx, err := uc.Record(ctx, input(entity.TransactionTypeOUT, entity.ReasonDispose, 1, "7.00"))
	require.NoError(t, err)

	got, entries, err := uc.GetByID(ctx, testUser, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.LedgerCodeLoss, entries[0].CategoryCode)

	_, _, err = uc.GetByID(ctx, "intruso", tx.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_TipoInvalido(t *testing.T) {
	uc := newTestUseCase(seededDB())
	_, _, err := uc.List(context.Background(), testUser, repository.TransactionFilter{Type: "X"}, repository.Page{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVerify_DetectaDescuadre(t *testing.T) {
	db := seededDB()
	uc := newTestUseCase(db)
	ctx := context.Background()

	ok, err := uc.Record(ctx, input(entity.TransactionTypeIN, entity.ReasonPurchase, 1, "4.00"))
	require.NoError(t, err)
	// movimiento sin asientos, insertado a mano
	db.state.txs = append(db.state.txs, &entity.InventoryTransaction{ID: "roto", UserID: testUser, TotalAmount: decimal.NewFromInt(9)})

	checked, broken, err := uc.Verify(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, checked)
	require.Len(t, broken, 1)
	assert.Equal(t, "roto", broken[0].TransactionID)
	assert.NotEqual(t, ok.ID, broken[0].TransactionID)
	assert.Equal(t, 0, broken[0].Entries)
}
