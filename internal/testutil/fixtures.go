// Package testutil reúne dados de exemplo para os testes dos pacotes do
// formulário
package testutil

import (
	"context"
	"fmt"

	"github.com/corretora-saude/api-formulario/internal/formulario"
	"github.com/corretora-saude/api-formulario/internal/operadora"
)

const (
	CPFTitular     = "529.982.247-25"
	CPFDependente  = "111.444.777-35"
	CNPJEmpresa    = "11.222.333/0001-81"
	NomeDependente = "Lucas Almeida"
)

// CorretorValido devolve um corretor com todos os campos obrigatórios
func CorretorValido() formulario.Corretor {
	return formulario.Corretor{
		Documento:  "123.456.789-09",
		Nome:       "Ana Corretora",
		Email:      "ana@corretora.com.br",
		Telefone:   "(11) 3333-4444",
		Equipe:     "Leste",
		Supervisor: formulario.NaoResolvida[operadora.Supervisor]("3"),
	}
}

// PlanoValido devolve um plano individual de saúde sem coparticipação
func PlanoValido() formulario.Plano {
	return formulario.Plano{
		Tipo:           formulario.TipoIndividual,
		Modalidade:     "health",
		Operadora:      formulario.NaoResolvida[operadora.Operadora]("1"),
		Acomodacao:     "private",
		Coparticipacao: "none",
		ValorMensal:    789.9,
		NomePlano:      "Vida Plena Ouro",
		InicioVigencia: "2026-11-01",
	}
}

func EnderecoValido() formulario.Endereco {
	return formulario.Endereco{
		ID:          "end-1",
		Logradouro:  "Avenida Paulista",
		Numero:      "1000",
		Bairro:      "Bela Vista",
		Cidade:      "São Paulo",
		UF:          "SP",
		CEP:         "01310-100",
		Selecionado: true,
	}
}

// TitularValido tem um telefone não selecionado antes dos selecionados
func TitularValido() formulario.Pessoa {
	return formulario.Pessoa{
		Nome:           "Mariana Almeida",
		CPF:            CPFTitular,
		DataNascimento: "1988-04-12",
		NomeMae:        "Helena Almeida",
		RG:             "12.345.678-9",
		Telefones: formulario.Contatos{
			{Valor: "(11) 3000-0000", Selecionado: false},
			{Valor: "(11) 91234-5678", Selecionado: true},
			{Valor: "(11) 98888-7777", Selecionado: true},
		},
		Emails: formulario.Contatos{
			{Valor: "mariana@exemplo.com", Selecionado: true},
		},
		Enderecos: formulario.Enderecos{EnderecoValido()},
	}
}

func DependenteValido() formulario.Pessoa {
	return formulario.Pessoa{
		Nome:           NomeDependente,
		CPF:            CPFDependente,
		DataNascimento: "2015-09-30",
		Parentesco:     "child",
	}
}

// FormularioIndividualCompleto tem um dependente e nenhuma carência
func FormularioIndividualCompleto() *formulario.FormularioIndividual {
	f := formulario.NovoFormularioIndividual()
	f.DefinirCorretor(CorretorValido())
	f.DefinirPlano(PlanoValido())
	f.DefinirTitular(TitularValido())
	f.AdicionarDependente(DependenteValido())
	f.DefinirCarencia(formulario.Carencia{})
	_ = f.Documentos.Anexar(formulario.CategoriaBeneficiarios, formulario.Arquivo{
		URL: "https://arquivos.exemplo.com/rg-mariana.pdf", Nome: "rg-mariana.pdf",
	})
	return f
}

func EmpresaValida() formulario.Empresa {
	end := EnderecoValido()
	return formulario.Empresa{
		CNPJ:             CNPJEmpresa,
		RazaoSocial:      "Padaria Bom Dia LTDA",
		NomeFantasia:     "Padaria Bom Dia",
		DataAbertura:     "2012-06-01",
		NaturezaJuridica: "206-2",
		CNAE:             "1091-1/02",
		Endereco:         end,
		Socios: []formulario.Socio{
			{
				Nome: "Roberto Lima", Responsavel: true, IncluirComoTitular: true,
				Email: "roberto@bomdia.com.br", Telefone: "(11) 97777-6666",
			},
			{Nome: "Sílvia Lima", IncluirComoTitular: false},
		},
	}
}

// FormularioPMECompleto tem um titular com um dependente
func FormularioPMECompleto() *formulario.FormularioPME {
	f := formulario.NovoFormularioPME()
	f.DefinirCorretor(CorretorValido())
	contrato := PlanoValido()
	contrato.Tipo = formulario.TipoEmpresarial
	contrato.Acomodacao = "ward"
	contrato.Coparticipacao = "partial"
	f.DefinirContrato(contrato)
	f.DefinirEmpresa(EmpresaValida())
	f.AdicionarTitular(formulario.TitularPME{
		Pessoa:      TitularValido(),
		Dependentes: []formulario.Pessoa{DependenteValido()},
	})
	_ = f.Documentos.Anexar(formulario.CategoriaEmpresa, formulario.Arquivo{
		URL: "https://arquivos.exemplo.com/contrato-social.pdf", Nome: "contrato-social.pdf",
	})
	_ = f.Documentos.Anexar(formulario.CategoriaBeneficiarios, formulario.Arquivo{
		URL: "https://arquivos.exemplo.com/rg-mariana.pdf", Nome: "rg-mariana.pdf",
	})
	return f
}

// Diretorio é um diretório em memória para os testes
type Diretorio struct {
	Operadoras      map[string]operadora.Operadora
	Administradoras map[string]operadora.Administradora
	Supervisores    map[string]operadora.Supervisor
}

var (
	_ operadora.Diretorio             = (*Diretorio)(nil)
	_ operadora.DiretorioSupervisores = (*Diretorio)(nil)
)

// DiretorioPadrao conhece as operadoras 1 e 2, a administradora 7 e o
// supervisor 3
func DiretorioPadrao() *Diretorio {
	return &Diretorio{
		Operadoras: map[string]operadora.Operadora{
			"1": {ID: 1, Nome: "Vida Plena Saúde", Ativa: true},
			"2": {ID: 2, Nome: "Alfa Saúde", Ativa: true},
		},
		Administradoras: map[string]operadora.Administradora{
			"7": {ID: 7, Nome: "Qualicorp"},
		},
		Supervisores: map[string]operadora.Supervisor{
			"3": {ID: 3, Nome: "Carla Mendes", Equipe: "Leste"},
		},
	}
}

func (d *Diretorio) BuscarOperadora(_ context.Context, id string) (*operadora.Operadora, error) {
	if o, ok := d.Operadoras[id]; ok {
		return &o, nil
	}
	return nil, fmt.Errorf("%w: id %q", operadora.ErrNaoEncontrado, id)
}

func (d *Diretorio) BuscarAdministradora(_ context.Context, id string) (*operadora.Administradora, error) {
	if a, ok := d.Administradoras[id]; ok {
		return &a, nil
	}
	return nil, fmt.Errorf("%w: id %q", operadora.ErrNaoEncontrado, id)
}

func (d *Diretorio) BuscarSupervisor(_ context.Context, id string) (*operadora.Supervisor, error) {
	if s, ok := d.Supervisores[id]; ok {
		return &s, nil
	}
	return nil, fmt.Errorf("%w: id %q", operadora.ErrNaoEncontrado, id)
}
