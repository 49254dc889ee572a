package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("x: %w", domain.ErrValidation), fiber.StatusBadRequest, "VALIDATION"},
		{fmt.Errorf("x: %w", domain.ErrInvalidAmount), fiber.StatusBadRequest, "INVALID_AMOUNT"},
		{fmt.Errorf("x: %w", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("x: %w", domain.ErrConflict), fiber.StatusConflict, "CONFLICT"},
		{fmt.Errorf("x: %w", domain.ErrDuplicate), fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
		{fmt.Errorf("x: %w", domain.ErrUnclassifiableMovement), fiber.StatusUnprocessableEntity, "UNCLASSIFIABLE_MOVEMENT"},
		{fmt.Errorf("%w: commit: %w", domain.ErrAtomicityFailure, errors.New("conn reset")), fiber.StatusServiceUnavailable, "ATOMICITY_FAILURE"},
		{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, code := errorStatus(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}
