package formulario

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/corretora-saude/api-formulario/internal/etapas"
	"github.com/corretora-saude/api-formulario/internal/operadora"
	v "github.com/corretora-saude/api-formulario/internal/validacao"
)

// FormularioIndividual guarda os dados das etapas da trilha individual
type FormularioIndividual struct {
	Corretor    *Corretor  `json:"broker"`
	Plano       *Plano     `json:"plan"`
	Titular     *Pessoa    `json:"holder"`
	Dependentes []Pessoa   `json:"dependents"`
	Carencia    Carencia   `json:"gracePeriod"`
	Documentos  Documentos `json:"documents"`
}

var ErrDependenteNaoEncontrado = errors.New("dependente não encontrado")

var _ etapas.Validador = (*FormularioIndividual)(nil)

func NovoFormularioIndividual() *FormularioIndividual {
	return &FormularioIndividual{Documentos: Documentos{}}
}

func (f *FormularioIndividual) DefinirCorretor(c Corretor) { f.Corretor = &c }

func (f *FormularioIndividual) DefinirPlano(p Plano) { f.Plano = &p }

func (f *FormularioIndividual) DefinirTitular(p Pessoa) {
	p.Enderecos.Normalizar()
	f.Titular = &p
}

// AdicionarDependente devolve a posição (base 1) do novo dependente
func (f *FormularioIndividual) AdicionarDependente(p Pessoa) int {
	f.Dependentes = append(f.Dependentes, p)
	return len(f.Dependentes)
}

// AtualizarDependente substitui o dependente na posição i (base 1)
func (f *FormularioIndividual) AtualizarDependente(i int, p Pessoa) error {
	if i < 1 || i > len(f.Dependentes) {
		return fmt.Errorf("%w: %d", ErrDependenteNaoEncontrado, i)
	}
	f.Dependentes[i-1] = p
	return nil
}

func (f *FormularioIndividual) RemoverDependente(i int) error {
	if i < 1 || i > len(f.Dependentes) {
		return fmt.Errorf("%w: %d", ErrDependenteNaoEncontrado, i)
	}
	f.Dependentes = append(f.Dependentes[:i-1], f.Dependentes[i:]...)
	return nil
}

func (f *FormularioIndividual) DefinirDependentes(ps []Pessoa) {
	f.Dependentes = append([]Pessoa(nil), ps...)
}

func (f *FormularioIndividual) DefinirCarencia(c Carencia) { f.Carencia = c }

// Reset volta o formulário ao valor inicial vazio
func (f *FormularioIndividual) Reset() {
	*f = *NovoFormularioIndividual()
}

// ValidarEtapa devolve os erros de campo da etapa, com o caminho completo
func (f *FormularioIndividual) ValidarEtapa(e etapas.Etapa) v.Erros {
	switch e {
	case etapas.EtapaCorretor:
		return prefixar("broker", ValidarCorretor(f.Corretor))
	case etapas.EtapaPlano:
		return prefixar("plan", ValidarPlano(f.Plano))
	case etapas.EtapaTitular:
		return prefixar("holder", ValidarTitular(f.Titular, time.Now()))
	case etapas.EtapaDependentes:
		errs := v.Erros{}
		for i := range f.Dependentes {
			errs.Mesclar("dependents."+strconv.Itoa(i+1),
				ValidarDependente(&f.Dependentes[i], time.Now()))
		}
		return errs
	case etapas.EtapaCarencia:
		return prefixar("gracePeriod", ValidarCarencia(f.Carencia))
	case etapas.EtapaDocumentos:
		obrig := []string{CategoriaBeneficiarios}
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

// Validar revalida todas as etapas anteriores à revisão
func (f *FormularioIndividual) Validar() v.Erros {
	errs := v.Erros{}
	seq, _ := etapas.SequenciaPara(etapas.TrilhaIndividual)
	for _, e := range seq[:len(seq)-1] {
		errs.Mesclar("", f.ValidarEtapa(e))
	}
	return errs
}

// Resolver troca os IDs de operadora, administradora e supervisor pelos
// registros do diretório
func (f *FormularioIndividual) Resolver(
	ctx context.Context,
	dir operadora.Diretorio,
	sup operadora.DiretorioSupervisores,
) error {
	if f.Corretor != nil && sup != nil {
		if err := f.Corretor.Supervisor.Resolver(ctx, sup.BuscarSupervisor); err != nil {
			return fmt.Errorf("supervisor: %w", err)
		}
	}
	if f.Plano != nil {
		if err := resolverPlano(ctx, f.Plano, dir); err != nil {
			return err
		}
	}
	return resolverCarencia(ctx, &f.Carencia, dir)
}

// resolverPlano só consulta a administradora em planos por adesão
func resolverPlano(ctx context.Context, p *Plano, dir operadora.Diretorio) error {
	if err := p.Operadora.Resolver(ctx, dir.BuscarOperadora); err != nil {
		return fmt.Errorf("operadora: %w", err)
	}
	if p.Tipo != TipoAdesao {
		return nil
	}
	if err := p.Administradora.Resolver(ctx, dir.BuscarAdministradora); err != nil {
		return fmt.Errorf("administradora: %w", err)
	}
	return nil
}

// resolverCarencia ignora a operadora anterior sem cobertura anterior
func resolverCarencia(ctx context.Context, c *Carencia, dir operadora.Diretorio) error {
	if !c.PossuiCoberturaAnterior {
		return nil
	}
	if err := c.OperadoraAnterior.Resolver(ctx, dir.BuscarOperadora); err != nil {
		return fmt.Errorf("operadora anterior: %w", err)
	}
	return nil
}
