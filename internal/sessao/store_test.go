package sessao

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corretora-saude/api-formulario/internal/etapas"
	"github.com/corretora-saude/api-formulario/internal/formulario"
	"github.com/corretora-saude/api-formulario/internal/testutil"
)

func novaSessao(t *testing.T) *formulario.Sessao {
	t.Helper()
	s, err := formulario.NovaSessao(etapas.TrilhaIndividual)
	require.NoError(t, err)
	s.Individual = testutil.FormularioIndividualCompleto()
	s.Etapa = etapas.EtapaTitular
	return s
}

func verificarStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()
	s := novaSessao(t)

	_, err := st.Buscar(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessaoNaoEncontrada)

	require.NoError(t, st.Salvar(ctx, s))
	s.Individual.Titular.Nome = "alterado depois"

	got, err := st.Buscar(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, etapas.EtapaTitular, got.Etapa)
	assert.Equal(t, "Mariana Almeida", got.Individual.Titular.Nome)
	assert.Equal(t, "1", got.Individual.Plano.Operadora.ID())
	assert.Empty(t, got.Individual.Validar())

	require.NoError(t, st.Remover(ctx, s.ID))
	_, err = st.Buscar(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessaoNaoEncontrada)
}

func TestMemoryStore(t *testing.T) {
	verificarStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStoreExpira(t *testing.T) {
	agora := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	m := NewMemoryStore(30 * time.Minute)
	m.agora = func() time.Time { return agora }
	ctx := context.Background()

	s := novaSessao(t)
	require.NoError(t, m.Salvar(ctx, s))

	agora = agora.Add(29 * time.Minute)
	_, err := m.Buscar(ctx, s.ID)
	require.NoError(t, err)

	outra := novaSessao(t)
	require.NoError(t, m.Salvar(ctx, outra))

	agora = agora.Add(time.Minute)
	_, err = m.Buscar(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessaoNaoEncontrada)
	assert.Equal(t, 0, m.Limpar())

	agora = agora.Add(time.Hour)
	assert.Equal(t, 1, m.Limpar())
}

func novoRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	client := redis.NewClient(&redis.Options{
		Addr:            srv.Addr(),
		Protocol:        2,
		DisableIdentity: true,
	})
	t.Cleanup(func() { _ = client.Close() })
	return srv, client
}

func TestRedisStore(t *testing.T) {
	_, client := novoRedis(t)
	st, err := NewRedisStore(client, time.Hour)
	require.NoError(t, err)
	require.NoError(t, st.Ping(context.Background()))
	verificarStore(t, st)
}

func TestRedisStoreExpira(t *testing.T) {
	srv, client := novoRedis(t)
	st, err := NewRedisStore(client, 10*time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	s := novaSessao(t)
	require.NoError(t, st.Salvar(ctx, s))
	assert.Equal(t, 10*time.Minute, srv.TTL(chave(s.ID)))

	srv.FastForward(11 * time.Minute)
	_, err = st.Buscar(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessaoNaoEncontrada)
}

func TestRedisStoreCorrompida(t *testing.T) {
	srv, client := novoRedis(t)
	st, err := NewRedisStore(client, 0)
	require.NoError(t, err)

	require.NoError(t, srv.Set(chave("x"), "{quebrado"))
	_, err = st.Buscar(context.Background(), "x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessaoNaoEncontrada)

	_, err = NewRedisStore(nil, 0)
	assert.Error(t, err)
}
