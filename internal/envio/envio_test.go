package envio_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corretora-saude/api-formulario/internal/envio"
	"github.com/corretora-saude/api-formulario/internal/etapas"
	"github.com/corretora-saude/api-formulario/internal/formulario"
	"github.com/corretora-saude/api-formulario/internal/notificacao"
	"github.com/corretora-saude/api-formulario/internal/operadora"
	"github.com/corretora-saude/api-formulario/internal/payload"
	"github.com/corretora-saude/api-formulario/internal/submissao"
	"github.com/corretora-saude/api-formulario/internal/testutil"
)

type destinoFake struct {
	chamadas int
	dados    map[string]any
	err      error
}

func (d *destinoFake) Enviar(_ context.Context, dados map[string]any) error {
	d.chamadas++
	d.dados = dados
	return d.err
}

type registradorFake struct {
	regs []*submissao.Submissao
	err  error
}

func (r *registradorFake) Registrar(_ context.Context, s *submissao.Submissao) error {
	r.regs = append(r.regs, s)
	return r.err
}

func sessaoIndividual(t *testing.T) *formulario.Sessao {
	t.Helper()
	s, err := formulario.NovaSessao(etapas.TrilhaIndividual)
	require.NoError(t, err)
	s.Individual = testutil.FormularioIndividualCompleto()
	s.Etapa = etapas.EtapaRevisao
	return s
}

func TestSubmitIndividualPonta(t *testing.T) {
	var corpo map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &corpo)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := &registradorFake{}
	o := envio.New(notificacao.NewWebhook(srv.URL, 0), reg)
	s := sessaoIndividual(t)
	dir := testutil.DiretorioPadrao()

	dados, err := o.Submit(context.Background(), s, dir, dir, "")
	require.NoError(t, err)

	data := corpo["data"].(map[string]any)
	assert.Equal(t, testutil.CPFTitular, data["holder"].(map[string]any)["cpf"])
	assert.Equal(t, "false", data["gracePeriod"].(map[string]any)["hasGracePeriod"])
	deps := data["dependents"].(map[string]any)
	assert.Equal(t, testutil.NomeDependente, deps["1"].(map[string]any)["name"])

	docs := data["documents"].(map[string]any)
	assert.Len(t, docs["beneficiaries"], 1)

	assert.Equal(t, dados["formType"], "individual")
	require.Len(t, reg.regs, 1)
	assert.Equal(t, submissao.StatusEnviado, reg.regs[0].Status)
	assert.Equal(t, "Ana Corretora", reg.regs[0].Corretor)

	// a sessão de quem chamou segue intacta
	_, resolvida := s.Individual.Plano.Operadora.Registro()
	assert.False(t, resolvida)
	assert.Equal(t, etapas.EtapaRevisao, s.Etapa)

	s.Reset()
	assert.Equal(t, formulario.NovoFormularioIndividual(), s.Individual)
	assert.Equal(t, etapas.EtapaCorretor, s.Etapa)
}

func TestSubmitParamsPlanos(t *testing.T) {
	f := testutil.FormularioIndividualCompleto()
	dir := testutil.DiretorioPadrao()
	require.NoError(t, f.Resolver(context.Background(), dir, dir))
	p, err := payload.NewIndividualBuilder(f).Build("")
	require.NoError(t, err)

	assert.Equal(t, "529.982.247-25", p["holder_cpf"])
	assert.Equal(t, "false", p["gracePeriod_hasGracePeriod"])
	assert.Equal(t, testutil.NomeDependente, p["dependents_1_name"])
}

func TestSubmitFalhaWebhook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	reg := &registradorFake{}
	o := envio.New(notificacao.NewWebhook(srv.URL, 0), reg)
	s := sessaoIndividual(t)
	dir := testutil.DiretorioPadrao()

	_, err := o.Submit(context.Background(), s, dir, dir, "")
	require.ErrorIs(t, err, notificacao.ErrFalhaEnvio)
	assert.Contains(t, err.Error(), "Falha ao enviar formulário: ")

	require.Len(t, reg.regs, 1)
	assert.Equal(t, submissao.StatusFalhou, reg.regs[0].Status)
	assert.NotEmpty(t, reg.regs[0].Erro)
	assert.Equal(t, testutil.NomeDependente, s.Individual.Dependentes[0].Nome)
}

func TestSubmitFormato(t *testing.T) {
	dir := testutil.DiretorioPadrao()
	destino := &destinoFake{}
	o := envio.New(destino, nil)

	s := sessaoIndividual(t)
	s.Individual.Titular = nil
	_, err := o.Submit(context.Background(), s, dir, dir, "")
	assert.ErrorIs(t, err, envio.ErrFormatoInvalido)

	s = sessaoIndividual(t)
	s.Trilha = "outra"
	_, err = o.Submit(context.Background(), s, dir, dir, "")
	assert.ErrorIs(t, err, envio.ErrFormatoInvalido)

	pme, err := formulario.NovaSessao(etapas.TrilhaPME)
	require.NoError(t, err)
	pme.PME = testutil.FormularioPMECompleto()
	pme.PME.Empresa = nil
	_, err = o.Submit(context.Background(), pme, dir, dir, "")
	assert.ErrorIs(t, err, envio.ErrFormatoInvalido)

	assert.Zero(t, destino.chamadas)
}

func TestSubmitRevalida(t *testing.T) {
	dir := testutil.DiretorioPadrao()
	destino := &destinoFake{}
	o := envio.New(destino, nil)

	// edição feita depois de um salto direto para a revisão
	s := sessaoIndividual(t)
	s.Individual.Titular.CPF = "111.111.111-11"

	_, err := o.Submit(context.Background(), s, dir, dir, "")
	var ev *envio.ErroValidacao
	require.True(t, errors.As(err, &ev))
	assert.Contains(t, ev.Erros, "holder.cpf")
	assert.Zero(t, destino.chamadas)
}

func TestSubmitReferenciaDesconhecida(t *testing.T) {
	dir := testutil.DiretorioPadrao()
	destino := &destinoFake{}
	o := envio.New(destino, nil)

	s := sessaoIndividual(t)
	s.Individual.Plano.Operadora = formulario.NaoResolvida[operadora.Operadora]("99")
	_, err := o.Submit(context.Background(), s, dir, dir, "")
	assert.ErrorIs(t, err, envio.ErrReferencia)
	assert.ErrorIs(t, err, operadora.ErrNaoEncontrado)
	assert.Zero(t, destino.chamadas)
}

func TestSubmitIgnoraReferenciasForaDeUso(t *testing.T) {
	dir := testutil.DiretorioPadrao()
	destino := &destinoFake{}
	o := envio.New(destino, nil)

	// sobras de edições anteriores que não se aplicam mais
	s := sessaoIndividual(t)
	s.Individual.Carencia = formulario.Carencia{
		PossuiCoberturaAnterior: false,
		OperadoraAnterior:       formulario.NaoResolvida[operadora.Operadora]("99"),
	}
	s.Individual.Plano.Administradora = formulario.NaoResolvida[operadora.Administradora]("98")

	_, err := o.Submit(context.Background(), s, dir, dir, "")
	require.NoError(t, err)
	assert.Equal(t, 1, destino.chamadas)

	grace := destino.dados["gracePeriod"].(map[string]any)
	assert.Equal(t, "false", grace["hasGracePeriod"])
	assert.NotContains(t, grace, "previousOperator")
	assert.NotContains(t, destino.dados["plan"].(map[string]any), "administratorId")
}

func TestSubmitCarenciaComOperadoraDesconhecida(t *testing.T) {
	dir := testutil.DiretorioPadrao()
	destino := &destinoFake{}
	o := envio.New(destino, nil)

	s := sessaoIndividual(t)
	s.Individual.Carencia = formulario.Carencia{
		PossuiCoberturaAnterior: true,
		OperadoraAnterior:       formulario.NaoResolvida[operadora.Operadora]("99"),
	}
	_ = s.Individual.Documentos.Anexar(formulario.CategoriaCarencia, formulario.Arquivo{
		URL: "https://arquivos.exemplo.com/carta.pdf", Nome: "carta.pdf",
	})

	_, err := o.Submit(context.Background(), s, dir, dir, "")
	assert.ErrorIs(t, err, envio.ErrReferencia)
	assert.Zero(t, destino.chamadas)
}

func TestSubmitPME(t *testing.T) {
	dir := testutil.DiretorioPadrao()
	destino := &destinoFake{}
	reg := &registradorFake{err: errors.New("banco fora")}
	o := envio.New(destino, reg)

	s, err := formulario.NovaSessao(etapas.TrilhaPME)
	require.NoError(t, err)
	s.PME = testutil.FormularioPMECompleto()

	_, err = o.Submit(context.Background(), s, dir, dir, "cliente com pressa")
	require.NoError(t, err, "falha ao registrar não impede o envio")
	assert.Equal(t, 1, destino.chamadas)
	assert.Equal(t, "pme", destino.dados["formType"])
	assert.Equal(t, "cliente com pressa", destino.dados["notes"])
	company := destino.dados["company"].(map[string]any)
	assert.Equal(t, testutil.CNPJEmpresa, company["cnpj"])
}
