package venda

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/corretora-saude/api-formulario/internal/envio"
	"github.com/corretora-saude/api-formulario/internal/notificacao"
)

// Enviar trata POST /sessao/enviar {"observacoes": "..."}. Só com o envio
// aceito a sessão volta ao estado inicial
func (h *Handler) Enviar(w http.ResponseWriter, r *http.Request) {
	s, ok := h.carregar(w, r)
	if !ok {
		return
	}
	var req struct {
		Observacoes string `json:"observacoes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	_, err := h.Envio.Submit(r.Context(), s, h.Operadoras, h.Supervisores, req.Observacoes)
	var ev *envio.ErroValidacao
	switch {
	case errors.As(err, &ev):
		writeErros(w, ev.Erros)
		return
	case errors.Is(err, envio.ErrReferencia):
		http.Error(w, "Referência inválida: "+err.Error(), http.StatusUnprocessableEntity)
		return
	case errors.Is(err, envio.ErrFormatoInvalido):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, notificacao.ErrFalhaEnvio):
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	case err != nil:
		http.Error(w, "Erro ao enviar formulário", http.StatusInternalServerError)
		return
	}

	s.Reset()
	if !h.salvar(w, r, s) {
		return
	}
	writeJSON(w, map[string]any{
		"mensagem": "Formulário enviado com sucesso",
		"sessao":   s,
	})
}
