package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// AccountUseCase registro de cuentas del usuario (CRUD con unicidad de nombre por dueño).
type AccountUseCase struct {
	repo       repository.AccountRepository
	ledgerRepo repository.LedgerEntryRepository
	now        func() time.Time
}

// NewAccountUseCase construye el caso de uso. ledgerRepo se usa para bloquear el borrado
// de cuentas con asientos.
func NewAccountUseCase(repo repository.AccountRepository, ledgerRepo repository.LedgerEntryRepository) *AccountUseCase {
	return &AccountUseCase{repo: repo, ledgerRepo: ledgerRepo, now: time.Now}
}

// Create crea una cuenta. Devuelve ErrDuplicate si el usuario ya tiene una con ese nombre.
func (uc *AccountUseCase) Create(ctx context.Context, userID string, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	name, err := normalizeAccountName(in.Name)
	if err != nil {
		return nil, err
	}
	if !entity.IsValidAccountType(in.Type) {
		return nil, fmt.Errorf("%w: tipo de cuenta %q", domain.ErrValidation, in.Type)
	}
	if err := uc.ensureNameFree(ctx, userID, name, ""); err != nil {
		return nil, err
	}
	now := uc.now()
	account := &entity.Account{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// GetByID obtiene una cuenta del usuario.
func (uc *AccountUseCase) GetByID(ctx context.Context, userID, id string) (*dto.AccountResponse, error) {
	account, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// Update renombra o cambia el tipo de una cuenta.
func (uc *AccountUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	account, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := normalizeAccountName(*in.Name)
		if err != nil {
			return nil, err
		}
		if name != account.Name {
			if err := uc.ensureNameFree(ctx, userID, name, account.ID); err != nil {
				return nil, err
			}
			account.Name = name
		}
	}
	if in.Type != nil {
		if !entity.IsValidAccountType(*in.Type) {
			return nil, fmt.Errorf("%w: tipo de cuenta %q", domain.ErrValidation, *in.Type)
		}
		account.Type = *in.Type
	}
	account.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// List lista las cuentas del usuario, opcionalmente filtradas por tipo.
func (uc *AccountUseCase) List(ctx context.Context, userID, accountType string) (*dto.AccountListResponse, error) {
	if accountType != "" && !entity.IsValidAccountType(accountType) {
		return nil, fmt.Errorf("%w: tipo de cuenta %q", domain.ErrValidation, accountType)
	}
	list, err := uc.repo.ListByUser(ctx, userID, accountType)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAccountResponse(a))
	}
	return &dto.AccountListResponse{Items: items}, nil
}

// Delete elimina una cuenta sin asientos. Con asientos devuelve ErrConflict
// (el FK ON DELETE RESTRICT del diario lo garantiza también en el almacén).
func (uc *AccountUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.get(ctx, userID, id); err != nil {
		return err
	}
	n, err := uc.ledgerRepo.CountByAccount(ctx, userID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: la cuenta tiene %d asientos", domain.ErrConflict, n)
	}
	return uc.repo.Delete(ctx, userID, id)
}

func (uc *AccountUseCase) get(ctx context.Context, userID, id string) (*entity.Account, error) {
	account, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, id)
	}
	return account, nil
}

func (uc *AccountUseCase) ensureNameFree(ctx context.Context, userID, name, selfID string) error {
	existing, err := uc.repo.GetByName(ctx, userID, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("%w: ya existe una cuenta %q", domain.ErrDuplicate, name)
	}
	return nil
}

// normalizeAccountName recorta y pasa a NFC para que "Café" compuesto y descompuesto choquen.
func normalizeAccountName(raw string) (string, error) {
	name := norm.NFC.String(strings.TrimSpace(raw))
	if name == "" {
		return "", fmt.Errorf("%w: nombre de cuenta requerido", domain.ErrValidation)
	}
	if len([]rune(name)) > 100 {
		return "", fmt.Errorf("%w: nombre de cuenta demasiado largo", domain.ErrValidation)
	}
	return name, nil
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}
	return &dto.AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      a.Type,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
