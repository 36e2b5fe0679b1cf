package venda

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/corretora-saude/api-formulario/internal/documentos"
	"github.com/corretora-saude/api-formulario/internal/formulario"
	"github.com/corretora-saude/api-formulario/pkg/log"
)

const (
	campoArquivos    = "arquivos"
	memoriaMultipart = 32 << 20
)

// EnviarDocumentos trata POST /sessao/documentos/{categoria} multipart com
// um ou mais arquivos no campo "arquivos"
func (h *Handler) EnviarDocumentos(w http.ResponseWriter, r *http.Request) {
	if h.Documentos == nil {
		http.Error(w, "Envio de documentos indisponível", http.StatusServiceUnavailable)
		return
	}
	s, ok := h.carregar(w, r)
	if !ok {
		return
	}
	categoria := mux.Vars(r)["categoria"]
	if !formulario.CategoriaValida(categoria) {
		http.Error(w, "Categoria inválida", http.StatusBadRequest)
		return
	}
	if err := r.ParseMultipartForm(memoriaMultipart); err != nil {
		http.Error(w, "Formulário multipart inválido", http.StatusBadRequest)
		return
	}
	cabecalhos := r.MultipartForm.File[campoArquivos]
	if len(cabecalhos) == 0 {
		http.Error(w, "Nenhum arquivo enviado", http.StatusBadRequest)
		return
	}

	docs, err := s.Documentos()
	if err != nil {
		http.Error(w, "Trilha inválida", http.StatusBadRequest)
		return
	}
	novos := make([]formulario.Arquivo, 0, len(cabecalhos))
	for _, fh := range cabecalhos {
		arq, err := h.enviarArquivo(r, s.ID, categoria, fh.Filename, fh.Open)
		if err != nil {
			h.desfazerUpload(r, novos)
			respostaUpload(w, err)
			return
		}
		novos = append(novos, arq)
	}
	if err := docs.Anexar(categoria, novos...); err != nil {
		h.desfazerUpload(r, novos)
		http.Error(w, "Categoria inválida", http.StatusBadRequest)
		return
	}
	if !h.salvar(w, r, s) {
		h.desfazerUpload(r, novos)
		return
	}

	slog.Info("Documentos anexados", log.SessaoID(s.ID),
		slog.String("categoria", categoria), slog.Int("quantidade", len(novos)))
	writeJSONStatus(w, http.StatusCreated, map[string]any{
		"categoria": categoria,
		"arquivos":  (*docs)[categoria],
	})
}

func (h *Handler) enviarArquivo(
	r *http.Request, sessaoID, categoria, nome string,
	abrir func() (multipart.File, error),
) (formulario.Arquivo, error) {
	f, err := abrir()
	if err != nil {
		return formulario.Arquivo{}, err
	}
	defer f.Close()
	return h.Documentos.Upload(r.Context(), sessaoID, categoria, nome, f)
}

// desfazerUpload apaga os arquivos gravados numa requisição que falhou
func (h *Handler) desfazerUpload(r *http.Request, arquivos []formulario.Arquivo) {
	for _, a := range arquivos {
		if err := h.Documentos.Remover(r.Context(), a); err != nil {
			slog.Warn("Não foi possível desfazer upload", log.Error(err))
		}
	}
}

func respostaUpload(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, documentos.ErrArquivoGrande):
		http.Error(w, "Arquivo excede o tamanho máximo", http.StatusRequestEntityTooLarge)
	case errors.Is(err, documentos.ErrTipoNaoPermitido):
		http.Error(w, "Tipo de arquivo não permitido", http.StatusUnsupportedMediaType)
	case errors.Is(err, documentos.ErrArquivoVazio):
		http.Error(w, "Arquivo vazio", http.StatusBadRequest)
	default:
		slog.Error("Erro ao gravar documento", log.Error(err))
		http.Error(w, "Erro ao gravar documento", http.StatusInternalServerError)
	}
}

// RemoverDocumento trata DELETE /sessao/documentos/{categoria}/{indice},
// com índice base zero
func (h *Handler) RemoverDocumento(w http.ResponseWriter, r *http.Request) {
	s, ok := h.carregar(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	categoria := vars["categoria"]
	indice, err := strconv.Atoi(vars["indice"])
	if err != nil {
		http.Error(w, "Índice inválido", http.StatusBadRequest)
		return
	}
	docs, err := s.Documentos()
	if err != nil {
		http.Error(w, "Trilha inválida", http.StatusBadRequest)
		return
	}

	var removido formulario.Arquivo
	if lista := (*docs)[categoria]; indice >= 0 && indice < len(lista) {
		removido = lista[indice]
	}
	if err := docs.Remover(categoria, indice); err != nil {
		http.Error(w, "Documento não encontrado", http.StatusNotFound)
		return
	}
	if !h.salvar(w, r, s) {
		return
	}
	if h.Documentos != nil {
		if err := h.Documentos.Remover(r.Context(), removido); err != nil {
			slog.Warn("Não foi possível remover anexo", log.SessaoID(s.ID), log.Error(err))
		}
	}
	writeJSON(w, map[string]any{
		"categoria": categoria,
		"arquivos":  (*docs)[categoria],
	})
}
