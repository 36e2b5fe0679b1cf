package venda

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Registrar monta as rotas do assistente. As rotas de sessão exigem o
// token emitido em POST /sessoes
func (h *Handler) Registrar(r *mux.Router) {
	r.HandleFunc("/sessoes", h.CriarSessao).Methods(http.MethodPost)
	r.HandleFunc("/validacao", h.Validar).Methods(http.MethodPost)

	p := r.NewRoute().Subrouter()
	p.Use(h.Tokens.Middleware)

	p.HandleFunc("/sessao", h.BuscarSessao).Methods(http.MethodGet)
	p.HandleFunc("/sessao", h.CancelarSessao).Methods(http.MethodDelete)
	p.HandleFunc("/sessao/avancar", h.Avancar).Methods(http.MethodPost)
	p.HandleFunc("/sessao/voltar", h.Voltar).Methods(http.MethodPost)
	p.HandleFunc("/sessao/ir/{etapa}", h.IrPara).Methods(http.MethodPost)
	p.HandleFunc("/sessao/enviar", h.Enviar).Methods(http.MethodPost)
	p.HandleFunc("/sessao/documentos/{categoria}", h.EnviarDocumentos).Methods(http.MethodPost)
	p.HandleFunc("/sessao/documentos/{categoria}/{indice}", h.RemoverDocumento).Methods(http.MethodDelete)
	p.HandleFunc("/sessao/{etapa}", h.AtualizarEtapa).Methods(http.MethodPut)
	p.HandleFunc("/consulta/cpf/{cpf}", h.ConsultarCPF).Methods(http.MethodGet)
	p.HandleFunc("/consulta/cnpj/{cnpj}", h.ConsultarCNPJ).Methods(http.MethodGet)
}
