package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/pkg/jwt"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-42", "ana", "inventario-ledger", 5)
	require.NoError(t, err)

	userID, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-42", "", "x", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-42", "", "x", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := jwt.Generate("", "user-42", "", "x", 5)
	assert.Error(t, err)
}
