package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que movimiento, asientos y estado del ítem se confirmen juntos o no se confirme nada.
// Los fallos de Begin/Commit se devuelven envueltos en domain.ErrAtomicityFailure.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.InventoryTransactionRepository,
		ledgerRepo repository.LedgerEntryRepository,
		itemRepo repository.ItemRepository,
	) error) error
}

// IdempotencyStore reserva claves de idempotencia para reintentos de Record.
type IdempotencyStore interface {
	// Claim reserva key. claimed=false si ya existía; existingID es el movimiento
	// asociado o vacío si la petición original sigue en curso.
	Claim(ctx context.Context, key string) (claimed bool, existingID string, err error)
	// Complete asocia la clave al movimiento confirmado.
	Complete(ctx context.Context, key, transactionID string) error
	// Release libera la clave tras un fallo para permitir el reintento.
	Release(ctx context.Context, key string) error
}

// Metrics recibe eventos del procesador (implementado con Prometheus en infraestructura).
type Metrics interface {
	MovementRecorded(txType, reason string, amount decimal.Decimal)
	PostingRejected(kind string)
}

type noopMetrics struct{}

func (noopMetrics) MovementRecorded(string, string, decimal.Decimal) {}
func (noopMetrics) PostingRejected(string)                           {}
