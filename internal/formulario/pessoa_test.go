package formulario_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corretora-saude/api-formulario/internal/formulario"
)

func TestContatos(t *testing.T) {
	fones := formulario.Contatos{
		{Valor: "X", Selecionado: false},
		{Valor: "A", Selecionado: true},
		{Valor: "B", Selecionado: true},
	}
	assert.Equal(t, "A", fones.Principal())
	assert.Equal(t, []string{"B"}, fones.Adicionais())
	assert.Equal(t, []string{"A", "B"}, fones.Selecionados())

	nenhum := formulario.Contatos{{Valor: "X"}}
	assert.Equal(t, "", nenhum.Principal())
	assert.Empty(t, nenhum.Adicionais())
}

func TestEnderecosAdicionar(t *testing.T) {
	var ends formulario.Enderecos
	id1 := ends.Adicionar(formulario.Endereco{Logradouro: "Rua A"})
	assert.NotEmpty(t, id1)
	sel, ok := ends.Selecionado()
	require.True(t, ok)
	assert.Equal(t, id1, sel.ID)

	ends.Adicionar(formulario.Endereco{ID: "b", Logradouro: "Rua B"})
	sel, _ = ends.Selecionado()
	assert.Equal(t, id1, sel.ID)

	ends.Adicionar(formulario.Endereco{ID: "c", Logradouro: "Rua C", Selecionado: true})
	sel, _ = ends.Selecionado()
	assert.Equal(t, "c", sel.ID)
	assertUmSelecionado(t, ends)
}

func TestEnderecosRemoverPromove(t *testing.T) {
	ends := formulario.Enderecos{}
	ends.Adicionar(formulario.Endereco{ID: "a"})
	ends.Adicionar(formulario.Endereco{ID: "b"})
	require.NoError(t, ends.Selecionar("b"))

	require.NoError(t, ends.Remover("b"))
	sel, ok := ends.Selecionado()
	require.True(t, ok)
	assert.Equal(t, "a", sel.ID)

	require.NoError(t, ends.Remover("a"))
	_, ok = ends.Selecionado()
	assert.False(t, ok)

	assert.ErrorIs(t, ends.Remover("zz"), formulario.ErrEnderecoNaoEncontrado)
	assert.ErrorIs(t, ends.Selecionar("zz"), formulario.ErrEnderecoNaoEncontrado)
}

func TestEnderecosRemoverNaoSelecionado(t *testing.T) {
	ends := formulario.Enderecos{}
	ends.Adicionar(formulario.Endereco{ID: "a"})
	ends.Adicionar(formulario.Endereco{ID: "b"})

	require.NoError(t, ends.Remover("b"))
	sel, _ := ends.Selecionado()
	assert.Equal(t, "a", sel.ID)
}

func TestEnderecosNormalizar(t *testing.T) {
	ends := formulario.Enderecos{
		{Selecionado: true}, {Selecionado: true}, {},
	}
	ends.Normalizar()
	assertUmSelecionado(t, ends)
	assert.True(t, ends[0].Selecionado)
	for _, e := range ends {
		assert.NotEmpty(t, e.ID)
	}
}

func assertUmSelecionado(t *testing.T, ends formulario.Enderecos) {
	t.Helper()
	n := 0
	for _, e := range ends {
		if e.Selecionado {
			n++
		}
	}
	assert.Equal(t, 1, n)
}
