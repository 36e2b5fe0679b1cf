// internal/operadora/handler.go
package operadora

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// GET /operadoras?todas=true
func (h *Handler) ListOperadoras(w http.ResponseWriter, r *http.Request) {
	somenteAtivas := r.URL.Query().Get("todas") != "true"
	list, err := h.Repo.ListOperadoras(r.Context(), somenteAtivas)
	if err != nil {
		http.Error(w, "Erro ao listar operadoras", http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

// GET /operadoras/{id}
func (h *Handler) GetOperadora(w http.ResponseWriter, r *http.Request) {
	o, err := h.Repo.BuscarOperadora(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, ErrNaoEncontrado) {
		http.Error(w, "Operadora não encontrada", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Erro ao buscar operadora", http.StatusInternalServerError)
		return
	}
	writeJSON(w, o)
}

// GET /administradoras
func (h *Handler) ListAdministradoras(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListAdministradoras(r.Context())
	if err != nil {
		http.Error(w, "Erro ao listar administradoras", http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

// GET /supervisores
func (h *Handler) ListSupervisores(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListSupervisores(r.Context())
	if err != nil {
		http.Error(w, "Erro ao listar supervisores", http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
