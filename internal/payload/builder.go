package payload

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/corretora-saude/api-formulario/internal/formulario"
)

// Builder monta os parâmetros planos de uma trilha
type Builder interface {
	Build(observacoes string) (Params, error)
}

var (
	ErrCampoAusente = errors.New("campo obrigatório ausente")
	ErrFormulario   = errors.New("formulário inválido")
)

// base reúne os blocos comuns às duas trilhas
type base struct{}

func ausente(campo string) error {
	return fmt.Errorf("%w: %s", ErrCampoAusente, campo)
}

func (base) corretor(c *formulario.Corretor) map[string]any {
	if c == nil {
		return nil
	}
	bloco := map[string]any{
		"taxId":    c.Documento,
		"name":     c.Nome,
		"email":    c.Email,
		"phone":    c.Telefone,
		"teamName": opcional(c.Equipe),
	}
	if !c.Supervisor.Vazia() {
		bloco["supervisorId"] = c.Supervisor.ID()
		if s, ok := c.Supervisor.Registro(); ok {
			bloco["supervisor"] = s.Nome
			bloco["supervisorEmail"] = opcional(s.Email)
		}
	}
	return bloco
}

// plano valida e monta o bloco do plano, já com os rótulos traduzidos
func (base) plano(campo string, p *formulario.Plano) (map[string]any, error) {
	if p == nil {
		return nil, ausente(campo)
	}
	obrigatorios := []struct{ nome, valor string }{
		{"type", p.Tipo},
		{"modality", p.Modalidade},
		{"operator", p.Operadora.ID()},
		{"accommodation", p.Acomodacao},
		{"planName", p.NomePlano},
		{"effectiveDate", p.InicioVigencia},
	}
	for _, o := range obrigatorios {
		if o.valor == "" {
			return nil, ausente(campo + "." + o.nome)
		}
	}
	if p.Tipo == formulario.TipoAdesao && p.Administradora.Vazia() {
		return nil, ausente(campo + ".administrator")
	}

	bloco := map[string]any{
		"type":            traduzir(tiposContrato, p.Tipo),
		"modality":        traduzir(modalidades, p.Modalidade),
		"operatorId":      p.Operadora.ID(),
		"accommodation":   traduzir(acomodacoes, p.Acomodacao),
		"coparticipation": opcional(traduzir(coparticipacoes, p.Coparticipacao)),
		"monthlyValue":    strconv.FormatFloat(p.ValorMensal, 'f', 2, 64),
		"planName":        p.NomePlano,
		"effectiveDate":   p.InicioVigencia,
	}
	if op, ok := p.Operadora.Registro(); ok {
		bloco["operator"] = op.Nome
		bloco["operatorAnsCode"] = opcional(op.RegistroANS)
	}
	if p.Tipo == formulario.TipoAdesao && !p.Administradora.Vazia() {
		bloco["administratorId"] = p.Administradora.ID()
		if adm, ok := p.Administradora.Registro(); ok {
			bloco["administrator"] = adm.Nome
		}
	}
	bloco["associationName"] = opcional(p.Associacao)
	return bloco, nil
}

// pessoa aplica a regra de contatos: o primeiro selecionado é o principal
// e os demais selecionados viram adicionais numerados a partir de 1
func (base) pessoa(p formulario.Pessoa) map[string]any {
	bloco := map[string]any{
		"name":       p.Nome,
		"cpf":        p.CPF,
		"birthDate":  p.DataNascimento,
		"motherName": opcional(p.NomeMae),
		"rg":         opcional(p.RG),
		"phone":      opcional(p.Telefones.Principal()),
		"email":      opcional(p.Emails.Principal()),
	}
	if p.Parentesco != "" {
		bloco["relationship"] = traduzir(parentescos, p.Parentesco)
	}
	if extras := p.Telefones.Adicionais(); len(extras) > 0 {
		bloco["additionalPhones"] = extras
	}
	if extras := p.Emails.Adicionais(); len(extras) > 0 {
		bloco["additionalEmails"] = extras
	}
	if end, ok := p.Enderecos.Selecionado(); ok {
		bloco["address"] = endereco(end)
	}
	return bloco
}

func endereco(e formulario.Endereco) map[string]any {
	return map[string]any{
		"street":       e.Logradouro,
		"number":       e.Numero,
		"complement":   opcional(e.Complemento),
		"neighborhood": e.Bairro,
		"city":         e.Cidade,
		"state":        e.UF,
		"postalCode":   e.CEP,
	}
}

func (base) carencia(c formulario.Carencia) (map[string]any, error) {
	bloco := map[string]any{"hasGracePeriod": c.PossuiCoberturaAnterior}
	if !c.PossuiCoberturaAnterior {
		return bloco, nil
	}
	if c.OperadoraAnterior.Vazia() {
		return nil, ausente("gracePeriod.previousOperator")
	}
	bloco["previousOperator"] = c.OperadoraAnterior.ID()
	if op, ok := c.OperadoraAnterior.Registro(); ok {
		bloco["previousOperatorName"] = op.Nome
	}
	return bloco, nil
}

// documentos serializa cada categoria como uma string JSON, que não é
// achatada
func (base) documentos(d formulario.Documentos) (map[string]any, error) {
	bloco := map[string]any{}
	for cat, arquivos := range d {
		if len(arquivos) == 0 {
			continue
		}
		data, err := json.Marshal(arquivos)
		if err != nil {
			return nil, fmt.Errorf("documentos %q: %w", cat, err)
		}
		bloco[cat] = string(data)
	}
	return bloco, nil
}

// opcional transforma string vazia em nil para que a chave não seja emitida
func opcional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
