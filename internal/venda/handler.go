// Package venda expõe o assistente de venda por HTTP: sessões, etapas,
// documentos, consultas e envio
package venda

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/corretora-saude/api-formulario/internal/auth"
	"github.com/corretora-saude/api-formulario/internal/consulta"
	"github.com/corretora-saude/api-formulario/internal/etapas"
	"github.com/corretora-saude/api-formulario/internal/formulario"
	"github.com/corretora-saude/api-formulario/internal/operadora"
	"github.com/corretora-saude/api-formulario/internal/sessao"
	"github.com/corretora-saude/api-formulario/internal/validacao"
	"github.com/corretora-saude/api-formulario/pkg/log"
)

type (
	Submissor interface {
		Submit(
			ctx context.Context, s *formulario.Sessao,
			operadoras operadora.Diretorio,
			supervisores operadora.DiretorioSupervisores,
			observacoes string,
		) (map[string]any, error)
	}

	Consultor interface {
		BuscarCPF(ctx context.Context, cpf string) consulta.Resultado
		BuscarCNPJ(ctx context.Context, cnpj string) consulta.Resultado
	}

	Armazenamento interface {
		Upload(
			ctx context.Context, sessaoID, categoria, nome string, conteudo io.Reader,
		) (formulario.Arquivo, error)
		Remover(ctx context.Context, a formulario.Arquivo) error
	}

	// Handler concentra as dependências do assistente; Consulta e
	// Documentos são opcionais
	Handler struct {
		Sessoes      sessao.Store
		Tokens       *auth.Emissor
		Envio        Submissor
		Operadoras   operadora.Diretorio
		Supervisores operadora.DiretorioSupervisores
		Consulta     Consultor
		Documentos   Armazenamento
	}

	respostaSessao struct {
		Sessao *formulario.Sessao `json:"sessao"`
		Token  string             `json:"token,omitempty"`
		Erros  validacao.Erros    `json:"erros,omitempty"`
		Sair   bool               `json:"sair,omitempty"`
	}

	respostaErros struct {
		Erros validacao.Erros `json:"erros"`
	}
)

func NewHandler(
	sessoes sessao.Store, tokens *auth.Emissor, envio Submissor,
	operadoras operadora.Diretorio, supervisores operadora.DiretorioSupervisores,
) *Handler {
	return &Handler{
		Sessoes:      sessoes,
		Tokens:       tokens,
		Envio:        envio,
		Operadoras:   operadoras,
		Supervisores: supervisores,
	}
}

// CriarSessao trata POST /sessoes {"trilha": "individual"|"pme"}
func (h *Handler) CriarSessao(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Trilha etapas.Trilha `json:"trilha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	s, err := formulario.NovaSessao(req.Trilha)
	if err != nil {
		http.Error(w, "Trilha inválida", http.StatusBadRequest)
		return
	}
	token, err := h.Tokens.Gerar(s.ID, s.Trilha)
	if err != nil {
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}
	if !h.salvar(w, r, s) {
		return
	}

	slog.Info("Sessão criada", log.SessaoID(s.ID), log.Trilha(s.Trilha))
	writeJSONStatus(w, http.StatusCreated, respostaSessao{Sessao: s, Token: token})
}

// BuscarSessao trata GET /sessao
func (h *Handler) BuscarSessao(w http.ResponseWriter, r *http.Request) {
	s, ok := h.carregar(w, r)
	if !ok {
		return
	}
	writeJSON(w, respostaSessao{Sessao: s})
}

// CancelarSessao trata DELETE /sessao: descarta os anexos e a sessão
func (h *Handler) CancelarSessao(w http.ResponseWriter, r *http.Request) {
	s, ok := h.carregar(w, r)
	if !ok {
		return
	}
	h.descartarAnexos(r.Context(), s)
	s.Reset()
	if err := h.Sessoes.Remover(r.Context(), s.ID); err != nil {
		http.Error(w, "Erro ao remover sessão", http.StatusInternalServerError)
		return
	}
	slog.Info("Sessão cancelada", log.SessaoID(s.ID))
	w.WriteHeader(http.StatusNoContent)
}

// Validar trata POST /validacao {"campo": "...", "valor": "..."}
func (h *Handler) Validar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Campo string `json:"campo"`
		Valor string `json:"valor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	msg := validacao.Campo(req.Campo, req.Valor)
	writeJSON(w, map[string]any{"valido": msg == "", "mensagem": msg})
}

// carregar busca a sessão do token; responde o erro quando não acha
func (h *Handler) carregar(w http.ResponseWriter, r *http.Request) (*formulario.Sessao, bool) {
	id, ok := auth.SessaoID(r.Context())
	if !ok {
		http.Error(w, "Não autenticado", http.StatusUnauthorized)
		return nil, false
	}
	s, err := h.Sessoes.Buscar(r.Context(), id)
	if errors.Is(err, sessao.ErrSessaoNaoEncontrada) {
		http.Error(w, "Sessão não encontrada", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		slog.Error("Erro ao carregar sessão", log.SessaoID(id), log.Error(err))
		http.Error(w, "Erro ao carregar sessão", http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}

func (h *Handler) salvar(w http.ResponseWriter, r *http.Request, s *formulario.Sessao) bool {
	s.Tocar()
	if err := h.Sessoes.Salvar(r.Context(), s); err != nil {
		slog.Error("Erro ao salvar sessão", log.SessaoID(s.ID), log.Error(err))
		http.Error(w, "Erro ao salvar sessão", http.StatusInternalServerError)
		return false
	}
	return true
}

// descartarAnexos apaga do bucket os arquivos das duas trilhas
func (h *Handler) descartarAnexos(ctx context.Context, s *formulario.Sessao) {
	if h.Documentos == nil {
		return
	}
	var todos []formulario.Documentos
	if s.Individual != nil {
		todos = append(todos, s.Individual.Documentos)
	}
	if s.PME != nil {
		todos = append(todos, s.PME.Documentos)
	}
	for _, docs := range todos {
		for _, arquivos := range docs {
			for _, a := range arquivos {
				if err := h.Documentos.Remover(ctx, a); err != nil {
					slog.Warn("Não foi possível remover anexo",
						log.SessaoID(s.ID), log.Error(err))
				}
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErros(w http.ResponseWriter, errs validacao.Erros) {
	writeJSONStatus(w, http.StatusUnprocessableEntity, respostaErros{Erros: errs})
}
