package etapas

import (
	"errors"
	"fmt"
	"slices"

	"github.com/corretora-saude/api-formulario/internal/validacao"
)

type (
	// Trilha identifica a jornada do formulário
	Trilha string

	// Etapa é um passo nomeado de uma trilha
	Etapa string

	// Sequencia é a ordem das etapas de uma trilha
	Sequencia []Etapa
)

const (
	TrilhaIndividual Trilha = "individual"
	TrilhaPME        Trilha = "pme"
)

const (
	EtapaCorretor    Etapa = "broker"
	EtapaPlano       Etapa = "plan"
	EtapaContrato    Etapa = "contract"
	EtapaTitular     Etapa = "holder"
	EtapaDependentes Etapa = "dependents"
	EtapaEmpresa     Etapa = "company"
	EtapaSocios      Etapa = "partners"
	EtapaTitulares   Etapa = "holders"
	EtapaCarencia    Etapa = "grace"
	EtapaDocumentos  Etapa = "documents"
	EtapaRevisao     Etapa = "review"
)

var (
	ErrTrilhaDesconhecida = errors.New("trilha desconhecida")
	ErrEtapaDesconhecida  = errors.New("etapa desconhecida")
	ErrEtapaInvalida      = errors.New("etapa com campos inválidos")
)

var (
	sequenciaIndividual = Sequencia{
		EtapaCorretor, EtapaPlano, EtapaTitular, EtapaDependentes,
		EtapaCarencia, EtapaDocumentos, EtapaRevisao,
	}

	sequenciaPME = Sequencia{
		EtapaCorretor, EtapaContrato, EtapaEmpresa, EtapaSocios,
		EtapaTitulares, EtapaCarencia, EtapaDocumentos, EtapaRevisao,
	}
)

// Valida informa se a trilha é conhecida
func (t Trilha) Valida() bool {
	return t == TrilhaIndividual || t == TrilhaPME
}

// SequenciaPara devolve uma cópia da sequência de etapas da trilha
func SequenciaPara(t Trilha) (Sequencia, error) {
	switch t {
	case TrilhaIndividual:
		return slices.Clone(sequenciaIndividual), nil
	case TrilhaPME:
		return slices.Clone(sequenciaPME), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrTrilhaDesconhecida, t)
	}
}

// Indice devolve a posição da etapa ou -1
func (s Sequencia) Indice(e Etapa) int {
	return slices.Index(s, e)
}

func (s Sequencia) Contem(e Etapa) bool {
	return s.Indice(e) >= 0
}

func (s Sequencia) Primeira() Etapa {
	return s[0]
}

func (s Sequencia) Ultima() Etapa {
	return s[len(s)-1]
}

// Validador devolve os erros de campo da etapa informada
type Validador interface {
	ValidarEtapa(Etapa) validacao.Erros
}
