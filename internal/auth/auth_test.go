package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corretora-saude/api-formulario/internal/etapas"
	"github.com/corretora-saude/api-formulario/internal/utils"
)

func TestEmissor(t *testing.T) {
	_, err := NewEmissor("", time.Hour)
	assert.ErrorIs(t, err, ErrSegredoVazio)

	e, err := NewEmissor("segredo", time.Hour)
	require.NoError(t, err)

	tok, err := e.Gerar("sessao-1", etapas.TrilhaPME)
	require.NoError(t, err)

	c, err := e.Validar(tok)
	require.NoError(t, err)
	assert.Equal(t, "sessao-1", c.SessaoID)
	assert.Equal(t, etapas.TrilhaPME, c.Trilha)

	outro, err := NewEmissor("outro segredo", time.Hour)
	require.NoError(t, err)
	_, err = outro.Validar(tok)
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestEmissorExpira(t *testing.T) {
	agora := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	e, err := NewEmissor("segredo", time.Hour)
	require.NoError(t, err)
	e.agora = func() time.Time { return agora }

	tok, err := e.Gerar("sessao-1", etapas.TrilhaIndividual)
	require.NoError(t, err)

	agora = agora.Add(2 * time.Hour)
	_, err = e.Validar(tok)
	assert.ErrorIs(t, err, ErrTokenInvalido)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestEmissorRecusaNone(t *testing.T) {
	e, err := NewEmissor("segredo", time.Hour)
	require.NoError(t, err)

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		SessaoID:         "x",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: emissorPadrao},
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = e.Validar(raw)
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestMiddleware(t *testing.T) {
	e, err := NewEmissor("segredo", time.Hour)
	require.NoError(t, err)
	tok, err := e.Gerar("sessao-9", etapas.TrilhaIndividual)
	require.NoError(t, err)

	var visto string
	var trilha etapas.Trilha
	h := e.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visto, _ = SessaoID(r.Context())
		trilha = Trilha(r.Context())
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sessao", nil)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/sessao", nil)
	req.Header.Set("Authorization", "Bearer lixo")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/sessao", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sessao-9", visto)
	assert.Equal(t, etapas.TrilhaIndividual, trilha)
}

func TestChaveAdmin(t *testing.T) {
	hash, err := utils.HashChave("chave-certa")
	require.NoError(t, err)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := ChaveAdmin(hash)(ok)

	casos := map[string]int{
		"":            http.StatusForbidden,
		"errada":      http.StatusForbidden,
		"chave-certa": http.StatusNoContent,
	}
	for chave, status := range casos {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/submissoes", nil)
		if chave != "" {
			req.Header.Set(HeaderChaveAdmin, chave)
		}
		h.ServeHTTP(rec, req)
		assert.Equal(t, status, rec.Code, chave)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/submissoes", nil)
	req.Header.Set(HeaderChaveAdmin, "qualquer")
	ChaveAdmin("")(ok).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
