package dto

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// TransactionFromEntity mapea un movimiento a su DTO.
func TransactionFromEntity(t *entity.InventoryTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		ItemID:          t.ItemID,
		AccountID:       t.AccountID,
		Type:            t.Type,
		Quantity:        t.Quantity,
		UnitPrice:       t.UnitPrice,
		TotalAmount:     t.TotalAmount,
		TransactionDate: FormatDate(t.TransactionDate),
		Reason:          t.Reason,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
	}
}

// LedgerEntryFromEntity mapea un asiento a su DTO.
func LedgerEntryFromEntity(e *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:              e.ID,
		TransactionID:   e.TransactionID,
		TransactionDate: FormatDate(e.TransactionDate),
		Amount:          e.Amount,
		Direction:       e.Direction,
		AccountID:       e.AccountID,
		ItemID:          e.ItemID,
		CategoryCode:    e.CategoryCode,
		Note:            e.Note,
		CreatedAt:       e.CreatedAt,
	}
}
