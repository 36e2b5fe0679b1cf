package formulario

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/corretora-saude/api-formulario/internal/etapas"
	"github.com/corretora-saude/api-formulario/internal/operadora"
	v "github.com/corretora-saude/api-formulario/internal/validacao"
)

// FormularioPME guarda os dados das etapas da trilha empresarial
type FormularioPME struct {
	Corretor   *Corretor    `json:"broker"`
	Contrato   *Plano       `json:"contract"`
	Empresa    *Empresa     `json:"company"`
	Titulares  []TitularPME `json:"holders"`
	Carencia   Carencia     `json:"gracePeriod"`
	Documentos Documentos   `json:"documents"`
}

var ErrTitularNaoEncontrado = errors.New("titular não encontrado")

var _ etapas.Validador = (*FormularioPME)(nil)

func NovoFormularioPME() *FormularioPME {
	return &FormularioPME{Documentos: Documentos{}}
}

func (f *FormularioPME) DefinirCorretor(c Corretor) { f.Corretor = &c }

func (f *FormularioPME) DefinirContrato(p Plano) { f.Contrato = &p }

// DefinirEmpresa mantém os sócios atuais quando a empresa chega sem eles
func (f *FormularioPME) DefinirEmpresa(e Empresa) {
	if e.Socios == nil && f.Empresa != nil {
		e.Socios = f.Empresa.Socios
	}
	f.Empresa = &e
}

// DefinirSocios substitui o quadro societário; só o primeiro responsável
// permanece marcado
func (f *FormularioPME) DefinirSocios(socios []Socio) {
	if f.Empresa == nil {
		f.Empresa = &Empresa{}
	}
	f.Empresa.Socios = append([]Socio(nil), socios...)
	achou := false
	for i := range f.Empresa.Socios {
		if f.Empresa.Socios[i].Responsavel {
			if achou {
				f.Empresa.Socios[i].Responsavel = false
			}
			achou = true
		}
	}
}

func (f *FormularioPME) DefinirTitulares(ts []TitularPME) {
	f.Titulares = append([]TitularPME(nil), ts...)
	for i := range f.Titulares {
		f.Titulares[i].Enderecos.Normalizar()
	}
}

// AdicionarTitular devolve a posição (base 1) do novo titular
func (f *FormularioPME) AdicionarTitular(t TitularPME) int {
	t.Enderecos.Normalizar()
	f.Titulares = append(f.Titulares, t)
	return len(f.Titulares)
}

func (f *FormularioPME) RemoverTitular(i int) error {
	if i < 1 || i > len(f.Titulares) {
		return fmt.Errorf("%w: %d", ErrTitularNaoEncontrado, i)
	}
	f.Titulares = append(f.Titulares[:i-1], f.Titulares[i:]...)
	return nil
}

// ImportarSocios cria titulares para os sócios marcados para inclusão que
// ainda não constam pelo nome. Devolve quantos foram criados
func (f *FormularioPME) ImportarSocios() int {
	if f.Empresa == nil {
		return 0
	}
	existentes := map[string]bool{}
	for _, t := range f.Titulares {
		existentes[strings.ToLower(strings.TrimSpace(t.Nome))] = true
	}
	n := 0
	for _, s := range f.Empresa.Socios {
		chave := strings.ToLower(strings.TrimSpace(s.Nome))
		if !s.IncluirComoTitular || existentes[chave] {
			continue
		}
		t := TitularPME{Pessoa: Pessoa{Nome: s.Nome}}
		if s.Email != "" {
			t.Emails = Contatos{{Valor: s.Email, Selecionado: true}}
		}
		if s.Telefone != "" {
			t.Telefones = Contatos{{Valor: s.Telefone, Selecionado: true}}
		}
		f.Titulares = append(f.Titulares, t)
		existentes[chave] = true
		n++
	}
	return n
}

func (f *FormularioPME) DefinirCarencia(c Carencia) { f.Carencia = c }

func (f *FormularioPME) Reset() {
	*f = *NovoFormularioPME()
}

func (f *FormularioPME) ValidarEtapa(e etapas.Etapa) v.Erros {
	switch e {
	case etapas.EtapaCorretor:
		return prefixar("broker", ValidarCorretor(f.Corretor))
	case etapas.EtapaContrato:
		return prefixar("contract", ValidarPlano(f.Contrato))
	case etapas.EtapaEmpresa:
		return prefixar("company", ValidarEmpresa(f.Empresa, time.Now()))
	case etapas.EtapaSocios:
		return ValidarSocios(f.Empresa)
	case etapas.EtapaTitulares:
		return f.validarTitulares()
	case etapas.EtapaCarencia:
		return prefixar("gracePeriod", ValidarCarencia(f.Carencia))
	case etapas.EtapaDocumentos:
		obrig := []string{CategoriaEmpresa, CategoriaBeneficiarios}
		if f.Carencia.PossuiCoberturaAnterior {
			obrig = append(obrig, CategoriaCarencia)
		}
		return prefixar("documents", ValidarDocumentos(f.Documentos, obrig...))
	case etapas.EtapaRevisao:
		return f.Validar()
	default:
		return v.Erros{}
	}
}

func (f *FormularioPME) Validar() v.Erros {
	errs := v.Erros{}
	seq, _ := etapas.SequenciaPara(etapas.TrilhaPME)
	for _, e := range seq[:len(seq)-1] {
		errs.Mesclar("", f.ValidarEtapa(e))
	}
	return errs
}

func (f *FormularioPME) validarTitulares() v.Erros {
	errs := v.Erros{}
	if len(f.Titulares) == 0 {
		errs.Adicionar("holders", "Informe ao menos um titular")
		return errs
	}
	for i := range f.Titulares {
		t := &f.Titulares[i]
		campo := "holders." + strconv.Itoa(i+1)
		errs.Mesclar(campo, ValidarTitular(&t.Pessoa, time.Now()))
		for j := range t.Dependentes {
			errs.Mesclar(campo+".dependents."+strconv.Itoa(j+1),
				ValidarDependente(&t.Dependentes[j], time.Now()))
		}
	}
	return errs
}

func (f *FormularioPME) Resolver(
	ctx context.Context,
	dir operadora.Diretorio,
	sup operadora.DiretorioSupervisores,
) error {
	if f.Corretor != nil && sup != nil {
		if err := f.Corretor.Supervisor.Resolver(ctx, sup.BuscarSupervisor); err != nil {
			return fmt.Errorf("supervisor: %w", err)
		}
	}
	if f.Contrato != nil {
		if err := resolverPlano(ctx, f.Contrato, dir); err != nil {
			return err
		}
	}
	return resolverCarencia(ctx, &f.Carencia, dir)
}
