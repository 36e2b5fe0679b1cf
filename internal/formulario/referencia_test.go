package formulario_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corretora-saude/api-formulario/internal/formulario"
	"github.com/corretora-saude/api-formulario/internal/operadora"
	"github.com/corretora-saude/api-formulario/internal/testutil"
)

type refOperadora = formulario.Referencia[operadora.Operadora]

func TestReferenciaUnmarshal(t *testing.T) {
	var r refOperadora

	require.NoError(t, json.Unmarshal([]byte(`"12"`), &r))
	assert.Equal(t, "12", r.ID())
	_, ok := r.Registro()
	assert.False(t, ok)

	require.NoError(t, json.Unmarshal([]byte(`34`), &r))
	assert.Equal(t, "34", r.ID())

	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"nome":"Alfa"}`), &r))
	assert.Equal(t, "5", r.ID())
	reg, ok := r.Registro()
	require.True(t, ok)
	assert.Equal(t, "Alfa", reg.Nome)

	require.NoError(t, json.Unmarshal([]byte(`null`), &r))
	assert.True(t, r.Vazia())

	assert.Error(t, json.Unmarshal([]byte(`{"nome":"sem id"}`), &r))
	assert.Error(t, json.Unmarshal([]byte(`true`), &r))
}

func TestReferenciaMarshal(t *testing.T) {
	data, err := json.Marshal(formulario.NaoResolvida[operadora.Operadora]("9"))
	require.NoError(t, err)
	assert.JSONEq(t, `"9"`, string(data))

	data, err = json.Marshal(refOperadora{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	res := formulario.Resolvida("9", &operadora.Operadora{ID: 9, Nome: "Beta"})
	data, err = json.Marshal(res)
	require.NoError(t, err)

	var volta refOperadora
	require.NoError(t, json.Unmarshal(data, &volta))
	reg, ok := volta.Registro()
	require.True(t, ok)
	assert.Equal(t, "Beta", reg.Nome)
}

func TestReferenciaResolver(t *testing.T) {
	dir := testutil.DiretorioPadrao()
	ctx := context.Background()

	r := formulario.NaoResolvida[operadora.Operadora]("1")
	require.NoError(t, r.Resolver(ctx, dir.BuscarOperadora))
	reg, ok := r.Registro()
	require.True(t, ok)
	assert.Equal(t, "Vida Plena Saúde", reg.Nome)

	vazia := refOperadora{}
	assert.NoError(t, vazia.Resolver(ctx, dir.BuscarOperadora))

	ruim := formulario.NaoResolvida[operadora.Operadora]("404")
	assert.ErrorIs(t, ruim.Resolver(ctx, dir.BuscarOperadora), operadora.ErrNaoEncontrado)
}
