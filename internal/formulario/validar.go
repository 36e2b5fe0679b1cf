package formulario

import (
	"strconv"
	"strings"
	"time"

	v "github.com/corretora-saude/api-formulario/internal/validacao"
)

const MsgSemResponsavel = "Informe um único sócio responsável"

// ValidarCorretor confere os campos obrigatórios do corretor
func ValidarCorretor(c *Corretor) v.Erros {
	errs := v.Erros{}
	if c == nil {
		c = &Corretor{}
	}
	errs.Adicionar("taxId", v.Documento(c.Documento))
	errs.Adicionar("name", v.Obrigatorio(c.Nome))
	errs.Adicionar("email", v.Email(c.Email))
	errs.Adicionar("phone", v.Telefone(c.Telefone))
	return errs
}

// ValidarPlano confere o plano; adesão exige administradora e associação
func ValidarPlano(p *Plano) v.Erros {
	errs := v.Erros{}
	if p == nil {
		p = &Plano{}
	}
	errs.Adicionar("type", v.Obrigatorio(p.Tipo))
	errs.Adicionar("modality", v.Obrigatorio(p.Modalidade))
	errs.Adicionar("operator", v.Obrigatorio(p.Operadora.ID()))
	errs.Adicionar("accommodation", v.Obrigatorio(p.Acomodacao))
	errs.Adicionar("planName", v.Obrigatorio(p.NomePlano))
	if msg := v.Obrigatorio(p.InicioVigencia); msg != "" {
		errs.Adicionar("effectiveDate", msg)
	} else if _, ok := v.ParseData(p.InicioVigencia); !ok {
		errs.Adicionar("effectiveDate", v.MsgDataInvalida)
	}
	if p.ValorMensal < 0 {
		errs.Adicionar("monthlyValue", "Valor inválido")
	}
	if p.Tipo == TipoAdesao {
		errs.Adicionar("administrator", v.Obrigatorio(p.Administradora.ID()))
		errs.Adicionar("associationName", v.Obrigatorio(p.Associacao))
	}
	return errs
}

// ValidarTitular exige identificação, filiação, contatos principais e um
// endereço selecionado
func ValidarTitular(p *Pessoa, agora time.Time) v.Erros {
	if p == nil {
		p = &Pessoa{}
	}
	errs := validarIdentificacao(p, agora)
	errs.Adicionar("motherName", v.Obrigatorio(p.NomeMae))
	validarContatos(errs, "phones", p.Telefones, v.Telefone)
	validarContatos(errs, "emails", p.Emails, v.Email)

	end, ok := p.Enderecos.Selecionado()
	if !ok {
		errs.Adicionar("addresses", "Selecione um endereço")
	} else {
		errs.Mesclar("address", ValidarEndereco(end))
	}
	return errs
}

// ValidarDependente exige identificação e parentesco
func ValidarDependente(p *Pessoa, agora time.Time) v.Erros {
	if p == nil {
		p = &Pessoa{}
	}
	errs := validarIdentificacao(p, agora)
	errs.Adicionar("relationship", v.Obrigatorio(p.Parentesco))
	for i, email := range p.Emails.Selecionados() {
		errs.Adicionar("emails."+strconv.Itoa(i+1), v.Email(email))
	}
	for i, fone := range p.Telefones.Selecionados() {
		errs.Adicionar("phones."+strconv.Itoa(i+1), v.Telefone(fone))
	}
	return errs
}

func ValidarEndereco(e Endereco) v.Erros {
	errs := v.Erros{}
	errs.Adicionar("street", v.Obrigatorio(e.Logradouro))
	errs.Adicionar("number", v.Obrigatorio(e.Numero))
	errs.Adicionar("neighborhood", v.Obrigatorio(e.Bairro))
	errs.Adicionar("city", v.Obrigatorio(e.Cidade))
	errs.Adicionar("state", v.UF(e.UF))
	errs.Adicionar("postalCode", v.CEP(e.CEP))
	return errs
}

// ValidarCarencia: operadora anterior é obrigatória só com cobertura anterior
func ValidarCarencia(c Carencia) v.Erros {
	errs := v.Erros{}
	if c.PossuiCoberturaAnterior {
		errs.Adicionar("previousOperator", v.Obrigatorio(c.OperadoraAnterior.ID()))
	}
	return errs
}

func ValidarEmpresa(e *Empresa, agora time.Time) v.Erros {
	errs := v.Erros{}
	if e == nil {
		e = &Empresa{}
	}
	errs.Adicionar("cnpj", v.CNPJ(e.CNPJ))
	errs.Adicionar("legalName", v.Obrigatorio(e.RazaoSocial))
	if msg := v.Obrigatorio(e.DataAbertura); msg != "" {
		errs.Adicionar("foundingDate", msg)
	} else if d, ok := v.ParseData(e.DataAbertura); !ok {
		errs.Adicionar("foundingDate", v.MsgDataInvalida)
	} else if d.After(agora) {
		errs.Adicionar("foundingDate", v.MsgDataInvalida)
	}
	errs.Mesclar("address", ValidarEndereco(e.Endereco))
	return errs
}

// ValidarSocios exige ao menos um sócio e exatamente um responsável, que
// precisa de e-mail e telefone válidos
func ValidarSocios(e *Empresa) v.Erros {
	errs := v.Erros{}
	if e == nil || len(e.Socios) == 0 {
		errs.Adicionar("partners", "Informe ao menos um sócio")
		return errs
	}
	responsaveis := 0
	for i, s := range e.Socios {
		campo := "partners." + strconv.Itoa(i+1)
		errs.Adicionar(campo+".name", v.Obrigatorio(s.Nome))
		if s.Responsavel {
			responsaveis++
			errs.Adicionar(campo+".email", v.Email(s.Email))
			errs.Adicionar(campo+".phone", v.Telefone(s.Telefone))
		}
	}
	if responsaveis != 1 {
		errs.Adicionar("partners", MsgSemResponsavel)
	}
	return errs
}

// ValidarDocumentos exige as categorias obrigatórias da trilha
func ValidarDocumentos(d Documentos, obrigatorias ...string) v.Erros {
	errs := v.Erros{}
	for _, cat := range obrigatorias {
		if len(d[cat]) == 0 {
			errs.Adicionar(cat, "Envie ao menos um arquivo")
		}
	}
	return errs
}

func validarIdentificacao(p *Pessoa, agora time.Time) v.Erros {
	errs := v.Erros{}
	errs.Adicionar("name", v.Obrigatorio(p.Nome))
	errs.Adicionar("cpf", v.CPF(p.CPF))
	errs.Adicionar("birthDate", v.DataNascimento(p.DataNascimento, agora))
	return errs
}

func validarContatos(
	errs v.Erros, campo string, c Contatos, regra func(string) string,
) {
	sel := c.Selecionados()
	if len(sel) == 0 {
		errs.Adicionar(campo, v.MsgObrigatorio)
		return
	}
	for i, valor := range sel {
		errs.Adicionar(campo+"."+strconv.Itoa(i+1), regra(strings.TrimSpace(valor)))
	}
}

// prefixar aplica o prefixo do bloco aos erros de um validador
func prefixar(prefixo string, errs v.Erros) v.Erros {
	out := v.Erros{}
	out.Mesclar(prefixo, errs)
	return out
}
