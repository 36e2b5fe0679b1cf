package notificacao_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corretora-saude/api-formulario/internal/notificacao"
)

func TestEnviar(t *testing.T) {
	var recebido map[string]any
	chamadas := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chamadas++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &recebido))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	w := notificacao.NewWebhook(srv.URL, 0)
	err := w.Enviar(context.Background(), map[string]any{
		"holder": map[string]any{"cpf": "529.982.247-25"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, chamadas)
	assert.Equal(t, map[string]any{
		"data": map[string]any{"holder": map[string]any{"cpf": "529.982.247-25"}},
	}, recebido)
}

func TestEnviarStatusErro(t *testing.T) {
	chamadas := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chamadas++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := notificacao.NewWebhook(srv.URL, 0).Enviar(context.Background(), map[string]any{})
	require.ErrorIs(t, err, notificacao.ErrFalhaEnvio)
	assert.Contains(t, err.Error(), "Falha ao enviar formulário: status 500")
	assert.Equal(t, 1, chamadas)
}

func TestEnviarTransporte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := notificacao.NewWebhook(url, 0).Enviar(context.Background(), map[string]any{})
	require.ErrorIs(t, err, notificacao.ErrFalhaEnvio)
	assert.Contains(t, err.Error(), "Falha ao enviar formulário: ")
}
