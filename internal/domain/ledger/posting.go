// Package ledger contiene el motor de contabilización: convierte un movimiento de
// inventario en un conjunto balanceado de asientos de diario. Es puro (sin I/O);
// el llamador persiste los asientos en la misma transacción que el movimiento.
package ledger

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Notas de los asientos por regla.
const (
	NoteInbound  = "inbound movement"
	NoteResale   = "resale"
	NoteDisposal = "disposal"
)

// PostingInput datos del movimiento a contabilizar.
type PostingInput struct {
	UserID          string
	TransactionID   string
	Type            string
	Reason          string
	Amount          decimal.Decimal // TotalAmount del movimiento
	AccountID       string
	ItemID          string
	TransactionDate time.Time
	CreatedAt       time.Time
}

// Rule par débito/crédito de una clasificación.
type Rule struct {
	DebitCode  string
	CreditCode string
	Note       string
}

// Classify devuelve la regla para (type, reason) según la tabla fija:
//
//	IN  + cualquiera                      -> INVENTORY / CASH
//	OUT + SELL                            -> CASH / INVENTORY
//	OUT + DISPOSE, GIFT, LOST, ADJUST     -> LOSS / INVENTORY
//
// Cualquier otro par (ADJUST, OUT+PURCHASE, valores desconocidos) no tiene regla.
func Classify(txType, reason string) (Rule, error) {
	if !entity.IsValidReason(reason) {
		return Rule{}, fmt.Errorf("%w: motivo %q", domain.ErrUnclassifiableMovement, reason)
	}
	switch txType {
	case entity.TransactionTypeIN:
		return Rule{DebitCode: entity.LedgerCodeInventory, CreditCode: entity.LedgerCodeCash, Note: NoteInbound}, nil
	case entity.TransactionTypeOUT:
		switch reason {
		case entity.ReasonSell:
			return Rule{DebitCode: entity.LedgerCodeCash, CreditCode: entity.LedgerCodeInventory, Note: NoteResale}, nil
		case entity.ReasonDispose, entity.ReasonGift, entity.ReasonLost, entity.ReasonAdjust:
			return Rule{DebitCode: entity.LedgerCodeLoss, CreditCode: entity.LedgerCodeInventory, Note: NoteDisposal}, nil
		}
	}
	return Rule{}, fmt.Errorf("%w: %s/%s", domain.ErrUnclassifiableMovement, txType, reason)
}

// Post genera los asientos del movimiento: exactamente un DEBIT seguido de un CREDIT,
// ambos por Amount, con la misma fecha, cuenta e ítem. Nunca devuelve un conjunto
// vacío o desbalanceado: si no hay regla o el monto es negativo, devuelve error.
func Post(in PostingInput) ([]entity.LedgerEntry, error) {
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, in.Amount.String())
	}
	rule, err := Classify(in.Type, in.Reason)
	if err != nil {
		return nil, err
	}
	base := entity.LedgerEntry{
		UserID:          in.UserID,
		TransactionID:   in.TransactionID,
		TransactionDate: in.TransactionDate,
		Amount:          in.Amount,
		AccountID:       in.AccountID,
		ItemID:          in.ItemID,
		Note:            rule.Note,
		CreatedAt:       in.CreatedAt,
	}
	debit := base
	debit.Direction = entity.DirectionDebit
	debit.CategoryCode = rule.DebitCode

	credit := base
	credit.Direction = entity.DirectionCredit
	credit.CategoryCode = rule.CreditCode

	return []entity.LedgerEntry{debit, credit}, nil
}

// Totals suma débitos y créditos de un conjunto de asientos.
func Totals(entries []entity.LedgerEntry) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, e := range entries {
		switch e.Direction {
		case entity.DirectionDebit:
			debit = debit.Add(e.Amount)
		case entity.DirectionCredit:
			credit = credit.Add(e.Amount)
		}
	}
	return debit, credit
}

// Balanced indica si Σ DEBIT == Σ CREDIT == expected.
func Balanced(entries []entity.LedgerEntry, expected decimal.Decimal) bool {
	if len(entries) == 0 {
		return false
	}
	debit, credit := Totals(entries)
	return debit.Equal(credit) && debit.Equal(expected)
}
