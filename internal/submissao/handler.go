package submissao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula o DB e o Repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// ListarSubmissoes trata GET /admin/submissoes?status=&trilha=&limite=
func (h *Handler) ListarSubmissoes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filtro{Status: q.Get("status"), Trilha: q.Get("trilha")}
	if l := q.Get("limite"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			http.Error(w, "Limite inválido", http.StatusBadRequest)
			return
		}
		f.Limite = n
	}

	list, err := h.Repository.Listar(h.DB.WithContext(r.Context()), f)
	if err != nil {
		http.Error(w, "Erro ao listar submissões", http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

// BuscarSubmissao trata GET /admin/submissoes/{id}
func (h *Handler) BuscarSubmissao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	s, err := h.Repository.BuscarPorID(h.DB.WithContext(r.Context()), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Submissão não encontrada", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Erro ao buscar submissão", http.StatusInternalServerError)
		return
	}
	writeJSON(w, s)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
