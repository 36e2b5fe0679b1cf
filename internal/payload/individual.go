package payload

import (
	"github.com/corretora-saude/api-formulario/internal/etapas"
	"github.com/corretora-saude/api-formulario/internal/formulario"
)

type individualBuilder struct {
	base
	form *formulario.FormularioIndividual
}

func NewIndividualBuilder(f *formulario.FormularioIndividual) Builder {
	return &individualBuilder{form: f}
}

func (b *individualBuilder) Build(observacoes string) (Params, error) {
	f := b.form
	if f == nil {
		return nil, ErrFormulario
	}
	plano, err := b.plano("plan", f.Plano)
	if err != nil {
		return nil, err
	}
	if f.Titular == nil {
		return nil, ausente("holder")
	}
	carencia, err := b.carencia(f.Carencia)
	if err != nil {
		return nil, err
	}
	docs, err := b.documentos(f.Documentos)
	if err != nil {
		return nil, err
	}

	dependentes := make([]map[string]any, 0, len(f.Dependentes))
	for _, d := range f.Dependentes {
		dependentes = append(dependentes, b.pessoa(d))
	}

	formData := map[string]any{
		"formType":    string(etapas.TrilhaIndividual),
		"broker":      b.corretor(f.Corretor),
		"plan":        plano,
		"holder":      b.pessoa(*f.Titular),
		"dependents":  dependentes,
		"gracePeriod": carencia,
		"documents":   docs,
		"notes":       opcional(observacoes),
	}
	return Achatar(formData, ""), nil
}
