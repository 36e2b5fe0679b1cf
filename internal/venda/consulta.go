package venda

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/corretora-saude/api-formulario/internal/consulta"
)

// ConsultarCPF trata GET /consulta/cpf/{cpf}. Sempre responde 200: sem
// dados, o resultado pede preenchimento manual
func (h *Handler) ConsultarCPF(w http.ResponseWriter, r *http.Request) {
	if h.Consulta == nil {
		writeJSON(w, consulta.Resultado{Manual: true, Mensagem: consulta.MsgIndisponivel})
		return
	}
	writeJSON(w, h.Consulta.BuscarCPF(r.Context(), mux.Vars(r)["cpf"]))
}

// ConsultarCNPJ trata GET /consulta/cnpj/{cnpj}
func (h *Handler) ConsultarCNPJ(w http.ResponseWriter, r *http.Request) {
	if h.Consulta == nil {
		writeJSON(w, consulta.Resultado{Manual: true, Mensagem: consulta.MsgIndisponivel})
		return
	}
	writeJSON(w, h.Consulta.BuscarCNPJ(r.Context(), mux.Vars(r)["cnpj"]))
}
