package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// TransactionUseCase procesador de movimientos: valida, calcula el total, registra el
// movimiento, contabiliza sus asientos y avanza el ciclo de vida del ítem en una sola transacción.
//
// No deduplica reintentos por sí mismo: solo cuando el llamador envía IdempotencyKey.
type TransactionUseCase struct {
	txRunner    TxRunner
	accountRepo repository.AccountRepository
	itemRepo    repository.ItemRepository
	txRepo      repository.InventoryTransactionRepository
	ledgerRepo  repository.LedgerEntryRepository
	idempotency IdempotencyStore
	metrics     Metrics
	log         zerolog.Logger
	now         func() time.Time
}

// NewTransactionUseCase construye el caso de uso. accountRepo, itemRepo, txRepo y ledgerRepo
// son los adaptadores sobre el pool (lecturas fuera de la transacción).
func NewTransactionUseCase(
	txRunner TxRunner,
	accountRepo repository.AccountRepository,
	itemRepo repository.ItemRepository,
	txRepo repository.InventoryTransactionRepository,
	ledgerRepo repository.LedgerEntryRepository,
	log zerolog.Logger,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRunner:    txRunner,
		accountRepo: accountRepo,
		itemRepo:    itemRepo,
		txRepo:      txRepo,
		ledgerRepo:  ledgerRepo,
		metrics:     noopMetrics{},
		log:         log.With().Str("component", "transactions").Logger(),
		now:         time.Now,
	}
}

// WithIdempotency activa la deduplicación por clave con el store indicado (ej. Redis).
func (uc *TransactionUseCase) WithIdempotency(store IdempotencyStore) *TransactionUseCase {
	uc.idempotency = store
	return uc
}

// WithMetrics registra los eventos del procesador en m.
func (uc *TransactionUseCase) WithMetrics(m Metrics) *TransactionUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// WithClock reemplaza el reloj (tests).
func (uc *TransactionUseCase) WithClock(now func() time.Time) *TransactionUseCase {
	uc.now = now
	return uc
}

// RecordInput entrada para registrar un movimiento de inventario.
type RecordInput struct {
	UserID          string
	ItemID          string
	AccountID       string
	Type            string
	Quantity        int
	UnitPrice       decimal.Decimal
	TransactionDate time.Time
	Reason          string
	Notes           string
	IdempotencyKey  string
}

// Record registra el movimiento y sus asientos. Pasos (b)-(d) ocurren dentro de TxRunner.Run:
// si algo falla no queda ni el movimiento, ni los asientos, ni el cambio de estado del ítem.
func (uc *TransactionUseCase) Record(ctx context.Context, in RecordInput) (*entity.InventoryTransaction, error) {
	now := uc.now()
	if err := uc.validate(&in, now); err != nil {
		return nil, err
	}
	if _, err := ledger.Classify(in.Type, in.Reason); err != nil {
		uc.metrics.PostingRejected("unclassifiable")
		uc.log.Error().Err(err).Str("user_id", in.UserID).Str("type", in.Type).Str("reason", in.Reason).
			Msg("movimiento sin regla de contabilización")
		return nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, in.UserID, in.AccountID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, in.AccountID)
	}
	item, err := uc.itemRepo.GetByID(ctx, in.UserID, in.ItemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item == nil || item.IsDeleted() {
		return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, in.ItemID)
	}

	if in.IdempotencyKey == "" {
		return uc.commit(ctx, in)
	}
	existing, release, err := uc.claim(ctx, in)
	if err != nil || existing != nil {
		return existing, err
	}
	saved, err := uc.commit(ctx, in)
	release(ctx, saved, err)
	return saved, err
}

// commit ejecuta la unidad de trabajo (bloqueo del ítem, movimiento, asientos, estado).
func (uc *TransactionUseCase) commit(ctx context.Context, in RecordInput) (*entity.InventoryTransaction, error) {
	var saved *entity.InventoryTransaction
	err := uc.txRunner.Run(ctx, func(
		txRepo repository.InventoryTransactionRepository,
		ledgerRepo repository.LedgerEntryRepository,
		itemRepo repository.ItemRepository,
	) error {
		locked, err := itemRepo.GetForUpdate(ctx, in.UserID, in.ItemID)
		if err != nil {
			return err
		}
		if locked == nil || locked.IsDeleted() {
			return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, in.ItemID)
		}
		saved, err = uc.recordInTx(ctx, txRepo, ledgerRepo, itemRepo, locked, in)
		return err
	})
	if err != nil && in.IdempotencyKey != "" && errors.Is(err, domain.ErrDuplicate) {
		// Otra petición con la misma clave ganó la carrera: devolver su movimiento.
		existing, lookupErr := uc.txRepo.GetByIdempotencyKey(ctx, in.UserID, in.IdempotencyKey)
		if lookupErr == nil && existing != nil {
			return existing, nil
		}
	}
	return uc.finish(in, saved, err)
}

// CreateWithPurchase da de alta item y registra in (su compra inicial) en una sola transacción.
// in debe estar validado. Los fallos se clasifican igual que en Record.
func (uc *TransactionUseCase) CreateWithPurchase(ctx context.Context, item *entity.Item, in RecordInput) (*entity.InventoryTransaction, error) {
	var saved *entity.InventoryTransaction
	err := uc.txRunner.Run(ctx, func(
		txRepo repository.InventoryTransactionRepository,
		ledgerRepo repository.LedgerEntryRepository,
		itemRepo repository.ItemRepository,
	) error {
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		var err error
		saved, err = uc.recordInTx(ctx, txRepo, ledgerRepo, itemRepo, item, in)
		return err
	})
	return uc.finish(in, saved, err)
}

// finish clasifica el resultado de la unidad de trabajo, lo registra en métricas y lo loguea.
func (uc *TransactionUseCase) finish(in RecordInput, saved *entity.InventoryTransaction, err error) (*entity.InventoryTransaction, error) {
	if err != nil {
		err = classifyFailure(err)
		uc.metrics.PostingRejected(failureKind(err))
		uc.log.Error().Err(err).Str("user_id", in.UserID).Str("item_id", in.ItemID).Msg("registrar movimiento")
		return nil, err
	}

	uc.metrics.MovementRecorded(saved.Type, saved.Reason, saved.TotalAmount)
	uc.log.Info().
		Str("user_id", saved.UserID).
		Str("transaction_id", saved.ID).
		Str("item_id", saved.ItemID).
		Str("type", saved.Type).
		Str("reason", saved.Reason).
		Str("total_amount", saved.TotalAmount.StringFixed(2)).
		Msg("movimiento registrado")
	return saved, nil
}

// recordInTx registra el movimiento usando los repositorios de la transacción abierta por el llamador
// (ej. alta de ítem con su compra inicial). item debe venir bloqueado o recién creado en esa tx.
// in debe estar validado; TotalAmount se recalcula aquí siempre.
func (uc *TransactionUseCase) recordInTx(
	ctx context.Context,
	txRepo repository.InventoryTransactionRepository,
	ledgerRepo repository.LedgerEntryRepository,
	itemRepo repository.ItemRepository,
	item *entity.Item,
	in RecordInput,
) (*entity.InventoryTransaction, error) {
	nextStatus, err := domaininv.Transition(item.Status, in.Type)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	tx := &entity.InventoryTransaction{
		ID:              uuid.New().String(),
		UserID:          in.UserID,
		ItemID:          item.ID,
		AccountID:       in.AccountID,
		Type:            in.Type,
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
		TotalAmount:     TotalAmount(in.UnitPrice, in.Quantity),
		TransactionDate: in.TransactionDate,
		Reason:          in.Reason,
		Notes:           in.Notes,
		IdempotencyKey:  in.IdempotencyKey,
		CreatedAt:       now,
	}
	entries, err := ledger.Post(ledger.PostingInput{
		UserID:          tx.UserID,
		TransactionID:   tx.ID,
		Type:            tx.Type,
		Reason:          tx.Reason,
		Amount:          tx.TotalAmount,
		AccountID:       tx.AccountID,
		ItemID:          tx.ItemID,
		TransactionDate: tx.TransactionDate,
		CreatedAt:       now,
	})
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].ID = uuid.New().String()
	}
	if err := txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	if err := ledgerRepo.CreateBatch(ctx, entries); err != nil {
		return nil, err
	}
	if nextStatus != item.Status {
		if err := itemRepo.UpdateStatus(ctx, in.UserID, item.ID, nextStatus, now); err != nil {
			return nil, err
		}
		item.Status = nextStatus
		item.UpdatedAt = now
	}
	return tx, nil
}

// TotalAmount unitPrice * quantity en aritmética decimal exacta.
func TotalAmount(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// maxAmount primer valor que no cabe en NUMERIC(18,2).
var maxAmount = decimal.New(1, 16)

// CheckAmount valida un monto persistible tal cual: no negativo (ErrInvalidAmount),
// a lo sumo 2 decimales y menor que 10^16 (ErrValidation).
func CheckAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s %s", domain.ErrInvalidAmount, field, amount.String())
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: %s %s admite a lo sumo 2 decimales", domain.ErrValidation, field, amount.String())
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: %s %s excede el máximo", domain.ErrValidation, field, amount.String())
	}
	return nil
}

// ValidateInput comprueba los invariantes de entrada y normaliza la fecha a día calendario.
func ValidateInput(in *RecordInput, now time.Time) error {
	if in.UserID == "" {
		return fmt.Errorf("%w: user_id requerido", domain.ErrValidation)
	}
	if in.ItemID == "" || in.AccountID == "" {
		return fmt.Errorf("%w: item_id y account_id son requeridos", domain.ErrValidation)
	}
	if !entity.IsValidTransactionType(in.Type) {
		return fmt.Errorf("%w: tipo %q", domain.ErrValidation, in.Type)
	}
	if !entity.IsValidReason(in.Reason) {
		return fmt.Errorf("%w: motivo %q", domain.ErrValidation, in.Reason)
	}
	if in.Quantity < 1 {
		return fmt.Errorf("%w: quantity debe ser >= 1", domain.ErrValidation)
	}
	if err := CheckAmount("unit_price", in.UnitPrice); err != nil {
		return err
	}
	if err := CheckAmount("total_amount", TotalAmount(in.UnitPrice, in.Quantity)); err != nil {
		return err
	}
	if in.TransactionDate.IsZero() {
		return fmt.Errorf("%w: transaction_date requerido", domain.ErrValidation)
	}
	in.TransactionDate = DateOnly(in.TransactionDate)
	if in.TransactionDate.After(DateOnly(now)) {
		return fmt.Errorf("%w: transaction_date no puede ser futura", domain.ErrValidation)
	}
	return nil
}

func (uc *TransactionUseCase) validate(in *RecordInput, now time.Time) error {
	if err := ValidateInput(in, now); err != nil {
		uc.metrics.PostingRejected("validation")
		return err
	}
	return nil
}

// claim reserva la clave de idempotencia. Si ya hay un movimiento con esa clave lo devuelve.
// release debe llamarse al terminar con el resultado de commit.
func (uc *TransactionUseCase) claim(ctx context.Context, in RecordInput) (
	existing *entity.InventoryTransaction,
	release func(ctx context.Context, saved *entity.InventoryTransaction, err error),
	err error,
) {
	existing, err = uc.txRepo.GetByIdempotencyKey(ctx, in.UserID, in.IdempotencyKey)
	if err != nil {
		return nil, nil, fmt.Errorf("get by idempotency key: %w", err)
	}
	if existing != nil {
		return existing, nil, nil
	}
	noop := func(context.Context, *entity.InventoryTransaction, error) {}
	if uc.idempotency == nil {
		return nil, noop, nil
	}

	key := in.UserID + ":" + in.IdempotencyKey
	claimed, existingID, err := uc.idempotency.Claim(ctx, key)
	if err != nil {
		return nil, nil, fmt.Errorf("claim idempotency key: %w", err)
	}
	if !claimed {
		if existingID != "" {
			if tx, err := uc.txRepo.GetByID(ctx, in.UserID, existingID); err == nil && tx != nil {
				return tx, nil, nil
			}
		}
		return nil, nil, fmt.Errorf("%w: petición con la misma clave en curso", domain.ErrConflict)
	}
	return nil, func(ctx context.Context, saved *entity.InventoryTransaction, err error) {
		if err != nil || saved == nil {
			if relErr := uc.idempotency.Release(ctx, key); relErr != nil {
				uc.log.Warn().Err(relErr).Str("key", key).Msg("liberar clave de idempotencia")
			}
			return
		}
		if cErr := uc.idempotency.Complete(ctx, key, saved.ID); cErr != nil {
			uc.log.Warn().Err(cErr).Str("key", key).Msg("completar clave de idempotencia")
		}
	}, nil
}

// DateOnly trunca t al día calendario en UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var domainErrors = []error{
	domain.ErrValidation,
	domain.ErrNotFound,
	domain.ErrUnclassifiableMovement,
	domain.ErrAtomicityFailure,
	domain.ErrConflict,
	domain.ErrDuplicate,
}

// classifyFailure deja pasar los errores de dominio y envuelve el resto (fallos del almacén
// dentro de la unidad de trabajo) como ErrAtomicityFailure.
func classifyFailure(err error) error {
	for _, de := range domainErrors {
		if errors.Is(err, de) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrAtomicityFailure, err)
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnclassifiableMovement):
		return "unclassifiable"
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return "conflict"
	default:
		return "atomicity"
	}
}
