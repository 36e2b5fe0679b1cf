package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/corretora-saude/api-formulario/internal/auth"
	"github.com/corretora-saude/api-formulario/internal/config"
	"github.com/corretora-saude/api-formulario/internal/envio"
	"github.com/corretora-saude/api-formulario/internal/notificacao"
	"github.com/corretora-saude/api-formulario/internal/operadora"
	"github.com/corretora-saude/api-formulario/internal/sessao"
	"github.com/corretora-saude/api-formulario/internal/submissao"
	"github.com/corretora-saude/api-formulario/internal/utils"
	"github.com/corretora-saude/api-formulario/internal/utils/db"
	"github.com/corretora-saude/api-formulario/internal/venda"
)

func novoServidor(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrar(database))

	tokens, err := auth.NewEmissor("segredo", time.Hour)
	require.NoError(t, err)
	diretorio := operadora.NewRepository(database)
	orq := envio.New(notificacao.NewWebhook("http://127.0.0.1:1", time.Second),
		submissao.NewRegistro(database))
	h := venda.NewHandler(sessao.NewMemoryStore(time.Hour), tokens, orq, diretorio, diretorio)
	return novoRouter(cfg, h, diretorio, database)
}

func TestRotasAdmin(t *testing.T) {
	hash, err := utils.HashChave("chave-admin")
	require.NoError(t, err)
	cfg := config.NewDefaultConfig()
	cfg.AdminKeyHash = hash
	srv := novoServidor(t, cfg)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/submissoes", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/submissoes", nil)
	req.Header.Set(auth.HeaderChaveAdmin, "chave-admin")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRotasPublicas(t *testing.T) {
	srv := novoServidor(t, config.NewDefaultConfig())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/operadoras", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessao", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORS(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.CORSOrigins = []string{"https://vendas.exemplo.com"}
	srv := novoServidor(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/sessoes", nil)
	req.Header.Set("Origin", "https://vendas.exemplo.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "https://vendas.exemplo.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNovoStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.NewDefaultConfig()
	st, err := novoStore(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &sessao.MemoryStore{}, st)

	mr := miniredis.RunT(t)
	cfg.SessionStore = config.StoreRedis
	cfg.Redis.Addr = mr.Addr()
	st, err = novoStore(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &sessao.RedisStore{}, st)

	mr.Close()
	_, err = novoStore(ctx, cfg)
	assert.Error(t, err)
}
