package payload_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corretora-saude/api-formulario/internal/formulario"
	"github.com/corretora-saude/api-formulario/internal/operadora"
	"github.com/corretora-saude/api-formulario/internal/payload"
	"github.com/corretora-saude/api-formulario/internal/testutil"
)

func individualResolvido(t *testing.T) *formulario.FormularioIndividual {
	t.Helper()
	f := testutil.FormularioIndividualCompleto()
	dir := testutil.DiretorioPadrao()
	require.NoError(t, f.Resolver(context.Background(), dir, dir))
	return f
}

func TestIndividualBuild(t *testing.T) {
	p, err := payload.NewIndividualBuilder(individualResolvido(t)).Build("ligar à tarde")
	require.NoError(t, err)

	assert.Equal(t, "individual", p["formType"])
	assert.Equal(t, testutil.CPFTitular, p["holder_cpf"])
	assert.Equal(t, "false", p["gracePeriod_hasGracePeriod"])
	assert.Equal(t, testutil.NomeDependente, p["dependents_1_name"])
	assert.Equal(t, "filho(a)", p["dependents_1_relationship"])
	assert.Equal(t, "ligar à tarde", p["notes"])

	assert.Equal(t, "individual/familiar", p["plan_type"])
	assert.Equal(t, "saúde", p["plan_modality"])
	assert.Equal(t, "apartamento", p["plan_accommodation"])
	assert.Equal(t, "sem coparticipação", p["plan_coparticipation"])
	assert.Equal(t, "789.90", p["plan_monthlyValue"])
	assert.Equal(t, "Vida Plena Saúde", p["plan_operator"])
	assert.Equal(t, "1", p["plan_operatorId"])
	assert.Equal(t, "Carla Mendes", p["broker_supervisor"])
	assert.Equal(t, "São Paulo", p["holder_address_city"])

	assert.JSONEq(t,
		`[{"url":"https://arquivos.exemplo.com/rg-mariana.pdf","name":"rg-mariana.pdf"}]`,
		p["documents_beneficiaries"])
	assert.NotContains(t, p, "gracePeriod_previousOperator")
}

func TestIndividualBuildContatos(t *testing.T) {
	p, err := payload.NewIndividualBuilder(individualResolvido(t)).Build("")
	require.NoError(t, err)

	assert.Equal(t, "(11) 91234-5678", p["holder_phone"])
	assert.Equal(t, "(11) 98888-7777", p["holder_additionalPhones_1"])
	assert.NotContains(t, p, "holder_additionalPhones_2")
	for _, v := range p {
		assert.NotEqual(t, "(11) 3000-0000", v)
	}
	assert.Equal(t, "mariana@exemplo.com", p["holder_email"])
	assert.NotContains(t, p, "holder_additionalEmails_1")
	assert.NotContains(t, p, "notes")
}

func TestIndividualBuildErros(t *testing.T) {
	casos := map[string]func(f *formulario.FormularioIndividual){
		"plan":               func(f *formulario.FormularioIndividual) { f.Plano = nil },
		"plan.type":          func(f *formulario.FormularioIndividual) { f.Plano.Tipo = "" },
		"plan.modality":      func(f *formulario.FormularioIndividual) { f.Plano.Modalidade = "" },
		"plan.accommodation": func(f *formulario.FormularioIndividual) { f.Plano.Acomodacao = "" },
		"plan.planName":      func(f *formulario.FormularioIndividual) { f.Plano.NomePlano = "" },
		"plan.effectiveDate": func(f *formulario.FormularioIndividual) { f.Plano.InicioVigencia = "" },
		"plan.operator": func(f *formulario.FormularioIndividual) {
			f.Plano.Operadora = formulario.Referencia[operadora.Operadora]{}
		},
		"plan.administrator": func(f *formulario.FormularioIndividual) {
			f.Plano.Tipo = formulario.TipoAdesao
		},
		"gracePeriod.previousOperator": func(f *formulario.FormularioIndividual) {
			f.Carencia.PossuiCoberturaAnterior = true
		},
		"holder": func(f *formulario.FormularioIndividual) { f.Titular = nil },
	}
	for campo, alterar := range casos {
		t.Run(campo, func(t *testing.T) {
			f := testutil.FormularioIndividualCompleto()
			alterar(f)
			_, err := payload.NewIndividualBuilder(f).Build("")
			require.ErrorIs(t, err, payload.ErrCampoAusente)
			assert.Contains(t, err.Error(), campo)
		})
	}
}

func TestIndividualBuildCarencia(t *testing.T) {
	f := individualResolvido(t)
	f.Carencia = formulario.Carencia{
		PossuiCoberturaAnterior: true,
		OperadoraAnterior: formulario.Resolvida("2",
			&operadora.Operadora{ID: 2, Nome: "Alfa Saúde"}),
	}
	p, err := payload.NewIndividualBuilder(f).Build("")
	require.NoError(t, err)
	assert.Equal(t, "true", p["gracePeriod_hasGracePeriod"])
	assert.Equal(t, "2", p["gracePeriod_previousOperator"])
	assert.Equal(t, "Alfa Saúde", p["gracePeriod_previousOperatorName"])
}

func TestIndividualBuildTraducaoDesconhecida(t *testing.T) {
	f := individualResolvido(t)
	f.Plano.Modalidade = "vision"
	p, err := payload.NewIndividualBuilder(f).Build("")
	require.NoError(t, err)
	assert.Equal(t, "vision", p["plan_modality"])
}

func TestPMEBuild(t *testing.T) {
	f := testutil.FormularioPMECompleto()
	dir := testutil.DiretorioPadrao()
	require.NoError(t, f.Resolver(context.Background(), dir, dir))

	p, err := payload.NewPMEBuilder(f).Build("")
	require.NoError(t, err)

	assert.Equal(t, "pme", p["formType"])
	assert.Equal(t, "empresarial", p["contract_type"])
	assert.Equal(t, "enfermaria", p["contract_accommodation"])
	assert.Equal(t, "coparticipação parcial", p["contract_coparticipation"])
	assert.Equal(t, testutil.CNPJEmpresa, p["company_cnpj"])
	assert.Equal(t, "Roberto Lima", p["company_responsible_name"])
	assert.Equal(t, "true", p["company_partners_1_isResponsible"])
	assert.Equal(t, "false", p["company_partners_2_isResponsible"])
	assert.Equal(t, testutil.CPFTitular, p["holders_1_cpf"])
	assert.Equal(t, testutil.NomeDependente, p["holders_1_dependents_1_name"])
	assert.Contains(t, p, "documents_company")

	arvore, err := payload.Aninhar(p)
	require.NoError(t, err)
	holders := arvore["holders"].(map[string]any)
	assert.Equal(t, testutil.CPFTitular, holders["1"].(map[string]any)["cpf"])
}

func TestPMEBuildValida(t *testing.T) {
	casos := map[string]func(f *formulario.FormularioPME){
		"broker":   func(f *formulario.FormularioPME) { f.Corretor = nil },
		"contract": func(f *formulario.FormularioPME) { f.Contrato = nil },
		"company":  func(f *formulario.FormularioPME) { f.Empresa = nil },
		"holders":  func(f *formulario.FormularioPME) { f.Titulares = nil },
		"company.responsible": func(f *formulario.FormularioPME) {
			f.Empresa.Socios[0].Responsavel = false
		},
		"contract.planName": func(f *formulario.FormularioPME) { f.Contrato.NomePlano = "" },
	}
	for campo, alterar := range casos {
		t.Run(campo, func(t *testing.T) {
			f := testutil.FormularioPMECompleto()
			alterar(f)
			_, err := payload.NewPMEBuilder(f).Build("")
			require.ErrorIs(t, err, payload.ErrCampoAusente)
			assert.Contains(t, err.Error(), campo)
		})
	}
}
