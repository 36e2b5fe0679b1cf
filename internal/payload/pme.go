package payload

import (
	"fmt"

	"github.com/corretora-saude/api-formulario/internal/etapas"
	"github.com/corretora-saude/api-formulario/internal/formulario"
)

type pmeBuilder struct {
	base
	form *formulario.FormularioPME
}

func NewPMEBuilder(f *formulario.FormularioPME) Builder {
	return &pmeBuilder{form: f}
}

// ValidarPME confere a forma do agregado empresarial antes da montagem
func ValidarPME(f *formulario.FormularioPME) error {
	switch {
	case f == nil:
		return ErrFormulario
	case f.Corretor == nil:
		return ausente("broker")
	case f.Contrato == nil:
		return ausente("contract")
	case f.Empresa == nil:
		return ausente("company")
	case len(f.Titulares) == 0:
		return ausente("holders")
	}
	if _, ok := f.Empresa.Responsavel(); !ok {
		return ausente("company.responsible")
	}
	return nil
}

func (b *pmeBuilder) Build(observacoes string) (Params, error) {
	f := b.form
	if err := ValidarPME(f); err != nil {
		return nil, err
	}
	contrato, err := b.plano("contract", f.Contrato)
	if err != nil {
		return nil, err
	}
	carencia, err := b.carencia(f.Carencia)
	if err != nil {
		return nil, err
	}
	docs, err := b.documentos(f.Documentos)
	if err != nil {
		return nil, err
	}

	titulares := make([]map[string]any, 0, len(f.Titulares))
	for i, t := range f.Titulares {
		if t.Nome == "" {
			return nil, ausente(fmt.Sprintf("holders.%d.name", i+1))
		}
		bloco := b.pessoa(t.Pessoa)
		if len(t.Dependentes) > 0 {
			deps := make([]map[string]any, 0, len(t.Dependentes))
			for _, d := range t.Dependentes {
				deps = append(deps, b.pessoa(d))
			}
			bloco["dependents"] = deps
		}
		titulares = append(titulares, bloco)
	}

	formData := map[string]any{
		"formType":    string(etapas.TrilhaPME),
		"broker":      b.corretor(f.Corretor),
		"contract":    contrato,
		"company":     b.empresa(f.Empresa),
		"holders":     titulares,
		"gracePeriod": carencia,
		"documents":   docs,
		"notes":       opcional(observacoes),
	}
	return Achatar(formData, ""), nil
}

func (base) empresa(e *formulario.Empresa) map[string]any {
	socios := make([]map[string]any, 0, len(e.Socios))
	for _, s := range e.Socios {
		socios = append(socios, map[string]any{
			"name":            s.Nome,
			"isResponsible":   s.Responsavel,
			"includeAsHolder": s.IncluirComoTitular,
		})
	}
	bloco := map[string]any{
		"cnpj":                e.CNPJ,
		"legalName":           e.RazaoSocial,
		"tradeName":           opcional(e.NomeFantasia),
		"foundingDate":        e.DataAbertura,
		"legalNatureCode":     opcional(e.NaturezaJuridica),
		"cnae":                opcional(e.CNAE),
		"isMicroEntrepreneur": e.MEI,
		"address":             endereco(e.Endereco),
		"partners":            socios,
	}
	if r, ok := e.Responsavel(); ok {
		bloco["responsible"] = map[string]any{
			"name":  r.Nome,
			"email": opcional(r.Email),
			"phone": opcional(r.Telefone),
		}
	}
	return bloco
}
