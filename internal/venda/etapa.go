package venda

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/corretora-saude/api-formulario/internal/etapas"
	"github.com/corretora-saude/api-formulario/internal/formulario"
	"github.com/corretora-saude/api-formulario/pkg/log"
)

var (
	errEtapaForaDaTrilha = errors.New("etapa não pertence à trilha")
	errEtapaSemDados     = errors.New("etapa sem dados editáveis")
)

// AtualizarEtapa trata PUT /sessao/{etapa}: substitui os dados da etapa e
// devolve os erros de campo dela, sem bloquear a gravação
func (h *Handler) AtualizarEtapa(w http.ResponseWriter, r *http.Request) {
	s, ok := h.carregar(w, r)
	if !ok {
		return
	}
	etapa := etapas.Etapa(mux.Vars(r)["etapa"])

	err := aplicarEtapa(s, etapa, json.NewDecoder(r.Body))
	switch {
	case errors.Is(err, errEtapaForaDaTrilha):
		http.Error(w, "Etapa não encontrada", http.StatusNotFound)
		return
	case errors.Is(err, errEtapaSemDados):
		http.Error(w, "Etapa sem dados editáveis", http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	if !h.salvar(w, r, s) {
		return
	}
	f, _ := s.Formulario()
	writeJSON(w, respostaSessao{Sessao: s, Erros: f.ValidarEtapa(etapa)})
}

func aplicarEtapa(s *formulario.Sessao, etapa etapas.Etapa, dec *json.Decoder) error {
	seq, err := etapas.SequenciaPara(s.Trilha)
	if err != nil {
		return err
	}
	if !seq.Contem(etapa) {
		return errEtapaForaDaTrilha
	}
	if _, err := s.Formulario(); err != nil {
		return err
	}

	if etapa == etapas.EtapaCorretor || etapa == etapas.EtapaCarencia {
		return aplicarComum(s, etapa, dec)
	}
	if s.Trilha == etapas.TrilhaIndividual {
		return aplicarIndividual(s.Individual, etapa, dec)
	}
	return aplicarPME(s.PME, etapa, dec)
}

// aplicarComum cobre as etapas presentes nas duas trilhas
func aplicarComum(s *formulario.Sessao, etapa etapas.Etapa, dec *json.Decoder) error {
	if etapa == etapas.EtapaCorretor {
		var c formulario.Corretor
		if err := dec.Decode(&c); err != nil {
			return err
		}
		s.Individual.DefinirCorretor(c)
		s.PME.DefinirCorretor(c)
		return nil
	}
	var c formulario.Carencia
	if err := dec.Decode(&c); err != nil {
		return err
	}
	if s.Trilha == etapas.TrilhaIndividual {
		s.Individual.DefinirCarencia(c)
	} else {
		s.PME.DefinirCarencia(c)
	}
	return nil
}

func aplicarIndividual(f *formulario.FormularioIndividual, etapa etapas.Etapa, dec *json.Decoder) error {
	switch etapa {
	case etapas.EtapaPlano:
		var p formulario.Plano
		if err := dec.Decode(&p); err != nil {
			return err
		}
		f.DefinirPlano(p)
	case etapas.EtapaTitular:
		var p formulario.Pessoa
		if err := dec.Decode(&p); err != nil {
			return err
		}
		f.DefinirTitular(p)
	case etapas.EtapaDependentes:
		var ps []formulario.Pessoa
		if err := dec.Decode(&ps); err != nil {
			return err
		}
		f.DefinirDependentes(ps)
	default:
		return errEtapaSemDados
	}
	return nil
}

func aplicarPME(f *formulario.FormularioPME, etapa etapas.Etapa, dec *json.Decoder) error {
	switch etapa {
	case etapas.EtapaContrato:
		var p formulario.Plano
		if err := dec.Decode(&p); err != nil {
			return err
		}
		f.DefinirContrato(p)
	case etapas.EtapaEmpresa:
		var e formulario.Empresa
		if err := dec.Decode(&e); err != nil {
			return err
		}
		f.DefinirEmpresa(e)
	case etapas.EtapaSocios:
		var socios []formulario.Socio
		if err := dec.Decode(&socios); err != nil {
			return err
		}
		f.DefinirSocios(socios)
		f.ImportarSocios()
	case etapas.EtapaTitulares:
		var ts []formulario.TitularPME
		if err := dec.Decode(&ts); err != nil {
			return err
		}
		f.DefinirTitulares(ts)
	default:
		return errEtapaSemDados
	}
	return nil
}

// Avancar trata POST /sessao/avancar; etapa inválida responde 422 com os
// erros de campo
func (h *Handler) Avancar(w http.ResponseWriter, r *http.Request) {
	s, ok := h.carregar(w, r)
	if !ok {
		return
	}
	nav, err := s.Navegador()
	if err != nil {
		http.Error(w, "Trilha inválida", http.StatusBadRequest)
		return
	}
	errs, err := nav.Avancar()
	if errors.Is(err, etapas.ErrEtapaInvalida) {
		writeErros(w, errs)
		return
	}
	if !h.salvar(w, r, s) {
		return
	}
	slog.Info("Etapa avançada", log.SessaoID(s.ID), log.Etapa(s.Etapa))
	writeJSON(w, respostaSessao{Sessao: s})
}

// Voltar trata POST /sessao/voltar. Na primeira etapa a sessão não muda
// e a resposta leva "sair": true, sinal para deixar o assistente
func (h *Handler) Voltar(w http.ResponseWriter, r *http.Request) {
	s, ok := h.carregar(w, r)
	if !ok {
		return
	}
	nav, err := s.Navegador()
	if err != nil {
		http.Error(w, "Trilha inválida", http.StatusBadRequest)
		return
	}
	if !nav.Voltar() {
		writeJSON(w, respostaSessao{Sessao: s, Sair: true})
		return
	}
	if !h.salvar(w, r, s) {
		return
	}
	writeJSON(w, respostaSessao{Sessao: s})
}

// IrPara trata POST /sessao/ir/{etapa}, usado pela revisão para editar
func (h *Handler) IrPara(w http.ResponseWriter, r *http.Request) {
	s, ok := h.carregar(w, r)
	if !ok {
		return
	}
	nav, err := s.Navegador()
	if err != nil {
		http.Error(w, "Trilha inválida", http.StatusBadRequest)
		return
	}
	if err := nav.IrPara(etapas.Etapa(mux.Vars(r)["etapa"])); err != nil {
		http.Error(w, "Etapa não encontrada", http.StatusNotFound)
		return
	}
	if !h.salvar(w, r, s) {
		return
	}
	writeJSON(w, respostaSessao{Sessao: s})
}
