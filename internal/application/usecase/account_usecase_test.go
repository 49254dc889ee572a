package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestAccountCreate_NombreNormalizadoYDuplicado(t *testing.T) {
	repo := newFakeAccountRepo()
	uc := usecase.NewAccountUseCase(repo, &fakeLedgerRepo{})
	ctx := context.Background()

	// "Café" con la tilde compuesta y descompuesta (U+0065 U+0301)
	created, err := uc.Create(ctx, "u1", dto.CreateAccountRequest{Name: "  Café ", Type: entity.AccountTypeCash})
	require.NoError(t, err)
	assert.Equal(t, "Café", created.Name)

	_, err = uc.Create(ctx, "u1", dto.CreateAccountRequest{Name: "Cafe\u0301", Type: entity.AccountTypeBank})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// otro dueño puede usar el mismo nombre
	_, err = uc.Create(ctx, "u2", dto.CreateAccountRequest{Name: "Café", Type: entity.AccountTypeCash})
	assert.NoError(t, err)
}

func TestAccountCreate_Validaciones(t *testing.T) {
	uc := usecase.NewAccountUseCase(newFakeAccountRepo(), &fakeLedgerRepo{})
	ctx := context.Background()

	_, err := uc.Create(ctx, "u1", dto.CreateAccountRequest{Name: "   ", Type: entity.AccountTypeCash})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(ctx, "u1", dto.CreateAccountRequest{Name: "Nequi", Type: "WALLET"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAccountUpdate_RenombrarAExistente(t *testing.T) {
	uc := usecase.NewAccountUseCase(newFakeAccountRepo(), &fakeLedgerRepo{})
	ctx := context.Background()

	a, err := uc.Create(ctx, "u1", dto.CreateAccountRequest{Name: "Efectivo", Type: entity.AccountTypeCash})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "u1", dto.CreateAccountRequest{Name: "Banco", Type: entity.AccountTypeBank})
	require.NoError(t, err)

	_, err = uc.Update(ctx, "u1", a.ID, dto.UpdateAccountRequest{Name: strPtr("Banco")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	updated, err := uc.Update(ctx, "u1", a.ID, dto.UpdateAccountRequest{Name: strPtr("Efectivo"), Type: strPtr(entity.AccountTypeOther)})
	require.NoError(t, err)
	assert.Equal(t, entity.AccountTypeOther, updated.Type)

	_, err = uc.Update(ctx, "otro", a.ID, dto.UpdateAccountRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountDelete_ConAsientos_Conflicto(t *testing.T) {
	ledger := &fakeLedgerRepo{}
	uc := usecase.NewAccountUseCase(newFakeAccountRepo(), ledger)
	ctx := context.Background()

	a, err := uc.Create(ctx, "u1", dto.CreateAccountRequest{Name: "Vinted", Type: entity.AccountTypePlatform})
	require.NoError(t, err)
	ledger.entries = append(ledger.entries, entity.LedgerEntry{UserID: "u1", AccountID: a.ID})

	err = uc.Delete(ctx, "u1", a.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	ledger.entries = nil
	require.NoError(t, uc.Delete(ctx, "u1", a.ID))
	_, err = uc.GetByID(ctx, "u1", a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountList_FiltraPorTipo(t *testing.T) {
	uc := usecase.NewAccountUseCase(newFakeAccountRepo(), &fakeLedgerRepo{})
	ctx := context.Background()
	_, _ = uc.Create(ctx, "u1", dto.CreateAccountRequest{Name: "A", Type: entity.AccountTypeCash})
	_, _ = uc.Create(ctx, "u1", dto.CreateAccountRequest{Name: "B", Type: entity.AccountTypeBank})

	list, err := uc.List(ctx, "u1", entity.AccountTypeBank)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "B", list.Items[0].Name)

	_, err = uc.List(ctx, "u1", "NOPE")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
