package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corretora-saude/api-formulario/internal/utils"
)

func TestChave(t *testing.T) {
	chave, err := utils.GerarChave(24)
	require.NoError(t, err)
	assert.Len(t, chave, 24)

	outra, err := utils.GerarChave(24)
	require.NoError(t, err)
	assert.NotEqual(t, chave, outra)

	hash, err := utils.HashChave(chave)
	require.NoError(t, err)
	assert.True(t, utils.ConferirChave(hash, chave))
	assert.False(t, utils.ConferirChave(hash, outra))
	assert.False(t, utils.ConferirChave("não é hash", chave))
}
