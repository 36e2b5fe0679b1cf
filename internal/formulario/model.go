package formulario

import (
	"errors"
	"fmt"

	"github.com/corretora-saude/api-formulario/internal/operadora"
)

// Corretor identifica quem está vendendo
type Corretor struct {
	ID         *uint                            `json:"id,omitempty"`
	Documento  string                           `json:"taxId"`
	Nome       string                           `json:"name"`
	Email      string                           `json:"email"`
	Telefone   string                           `json:"phone"`
	Equipe     string                           `json:"teamName"`
	Supervisor Referencia[operadora.Supervisor] `json:"supervisor"`
}

const (
	TipoIndividual  = "individual"
	TipoAdesao      = "adhesion"
	TipoEmpresarial = "business"
)

// Plano é a escolha de plano (no PME, o contrato)
type Plano struct {
	Tipo           string                               `json:"type"`
	Modalidade     string                               `json:"modality"`
	Operadora      Referencia[operadora.Operadora]      `json:"operator"`
	Acomodacao     string                               `json:"accommodation"`
	Coparticipacao string                               `json:"coparticipation"`
	ValorMensal    float64                              `json:"monthlyValue"`
	NomePlano      string                               `json:"planName"`
	InicioVigencia string                               `json:"effectiveDate"`
	Administradora Referencia[operadora.Administradora] `json:"administrator"`
	Associacao     string                               `json:"associationName,omitempty"`
}

// Carencia declara cobertura anterior para aproveitamento de carência
type Carencia struct {
	PossuiCoberturaAnterior bool                            `json:"hasPriorCoverage"`
	OperadoraAnterior       Referencia[operadora.Operadora] `json:"previousOperator"`
}

type Socio struct {
	Nome               string `json:"name"`
	Responsavel        bool   `json:"isResponsible"`
	IncluirComoTitular bool   `json:"includeAsHolder"`
	Email              string `json:"email,omitempty"`
	Telefone           string `json:"phone,omitempty"`
}

// Empresa contratante no PME
type Empresa struct {
	CNPJ             string   `json:"cnpj"`
	RazaoSocial      string   `json:"legalName"`
	NomeFantasia     string   `json:"tradeName"`
	DataAbertura     string   `json:"foundingDate"`
	NaturezaJuridica string   `json:"legalNatureCode"`
	CNAE             string   `json:"cnae"`
	MEI              bool     `json:"isMicroEntrepreneur"`
	Endereco         Endereco `json:"address"`
	Socios           []Socio  `json:"partners"`
}

var ErrSocioNaoEncontrado = errors.New("sócio não encontrado")

// DefinirResponsavel marca o sócio i como único responsável
func (e *Empresa) DefinirResponsavel(i int) error {
	if i < 0 || i >= len(e.Socios) {
		return fmt.Errorf("%w: %d", ErrSocioNaoEncontrado, i)
	}
	for j := range e.Socios {
		e.Socios[j].Responsavel = j == i
	}
	return nil
}

// Responsavel devolve o primeiro sócio marcado como responsável
func (e *Empresa) Responsavel() (Socio, bool) {
	for _, s := range e.Socios {
		if s.Responsavel {
			return s, true
		}
	}
	return Socio{}, false
}

// TitularPME é um beneficiário titular do contrato empresarial
type TitularPME struct {
	Pessoa
	Dependentes []Pessoa `json:"dependents,omitempty"`
}
