// Package consulta busca dados cadastrais por CPF e CNPJ para
// pré-preencher o formulário. Qualquer falha degrada para preenchimento
// manual em vez de interromper o fluxo
package consulta

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/corretora-saude/api-formulario/internal/formulario"
	"github.com/corretora-saude/api-formulario/internal/validacao"
	"github.com/corretora-saude/api-formulario/pkg/log"
)

const (
	MsgIndisponivel  = "Consulta indisponível, preencha os dados manualmente"
	MsgLimite        = "Limite de consultas atingido, preencha os dados manualmente"
	MsgNaoEncontrado = "Documento não encontrado, preencha os dados manualmente"

	limiteResposta = 1 << 20
)

type (
	// Resultado traz os dados encontrados ou o motivo do preenchimento manual
	Resultado struct {
		Pessoa   *formulario.Pessoa  `json:"pessoa,omitempty"`
		Empresa  *formulario.Empresa `json:"empresa,omitempty"`
		Manual   bool                `json:"manual"`
		Mensagem string              `json:"mensagem,omitempty"`
	}

	// Client consulta os serviços externos; URL vazia desativa a consulta
	Client struct {
		CPFURL  string
		CNPJURL string
		HTTP    *http.Client
	}
)

func NewClient(cpfURL, cnpjURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		CPFURL:  strings.TrimRight(cpfURL, "/"),
		CNPJURL: strings.TrimRight(cnpjURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func manual(msg string) Resultado {
	return Resultado{Manual: true, Mensagem: msg}
}

// BuscarCPF devolve o titular encontrado para o CPF
func (c *Client) BuscarCPF(ctx context.Context, cpf string) Resultado {
	if msg := validacao.CPF(cpf); msg != "" {
		return manual(msg)
	}
	doc := validacao.SomenteDigitos(cpf)
	body, res, ok := c.buscar(ctx, c.CPFURL, doc)
	if !ok {
		return res
	}

	p := &formulario.Pessoa{
		Nome:           primeiro(body, "nome", "name", "data.nome"),
		CPF:            cpf,
		DataNascimento: data(primeiro(body, "nascimento", "data_nascimento", "birthDate", "data.nascimento")),
		NomeMae:        primeiro(body, "nome_mae", "mae", "motherName", "data.nome_mae"),
	}
	if p.Nome == "" {
		return manual(MsgNaoEncontrado)
	}
	return Resultado{Pessoa: p}
}

// BuscarCNPJ devolve a empresa e o quadro societário do CNPJ
func (c *Client) BuscarCNPJ(ctx context.Context, cnpj string) Resultado {
	if msg := validacao.CNPJ(cnpj); msg != "" {
		return manual(msg)
	}
	doc := validacao.SomenteDigitos(cnpj)
	body, res, ok := c.buscar(ctx, c.CNPJURL, doc)
	if !ok {
		return res
	}

	e := &formulario.Empresa{
		CNPJ:             cnpj,
		RazaoSocial:      primeiro(body, "razao_social", "legalName", "nome"),
		NomeFantasia:     primeiro(body, "nome_fantasia", "tradeName", "fantasia"),
		DataAbertura:     data(primeiro(body, "data_inicio_atividade", "abertura", "foundingDate")),
		NaturezaJuridica: primeiro(body, "codigo_natureza_juridica", "natureza_juridica", "legalNatureCode"),
		CNAE:             primeiro(body, "cnae_fiscal", "cnae", "atividade_principal.0.code"),
		MEI:              body.Get("opcao_pelo_mei").Bool(),
		Endereco: formulario.Endereco{
			Logradouro:  primeiro(body, "logradouro", "address.street"),
			Numero:      primeiro(body, "numero", "address.number"),
			Complemento: primeiro(body, "complemento", "address.complement"),
			Bairro:      primeiro(body, "bairro", "address.neighborhood"),
			Cidade:      primeiro(body, "municipio", "address.city"),
			UF:          primeiro(body, "uf", "address.state"),
			CEP:         primeiro(body, "cep", "address.postalCode"),
			Selecionado: true,
		},
	}
	if e.RazaoSocial == "" {
		return manual(MsgNaoEncontrado)
	}
	for _, s := range body.Get("qsa").Array() {
		nome := primeiro(s, "nome_socio", "nome", "name")
		if nome == "" {
			continue
		}
		e.Socios = append(e.Socios, formulario.Socio{Nome: nome})
	}
	return Resultado{Empresa: e}
}

// buscar faz o GET e devolve o corpo já validado como JSON
func (c *Client) buscar(ctx context.Context, base, doc string) (gjson.Result, Resultado, bool) {
	if base == "" {
		return gjson.Result{}, manual(MsgIndisponivel), false
	}
	url := fmt.Sprintf("%s/%s", base, doc)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return gjson.Result{}, manual(MsgIndisponivel), false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		slog.Warn("Falha na consulta cadastral", log.Error(err))
		return gjson.Result{}, manual(MsgIndisponivel), false
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return gjson.Result{}, manual(MsgLimite), false
	case resp.StatusCode == http.StatusNotFound:
		return gjson.Result{}, manual(MsgNaoEncontrado), false
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		slog.Warn("Consulta cadastral recusada", log.Status(resp.StatusCode))
		return gjson.Result{}, manual(MsgIndisponivel), false
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, limiteResposta))
	if err != nil || !gjson.ValidBytes(raw) {
		slog.Warn("Resposta de consulta inválida")
		return gjson.Result{}, manual(MsgIndisponivel), false
	}
	return gjson.ParseBytes(raw), Resultado{}, true
}

// primeiro devolve o primeiro caminho com valor não vazio
func primeiro(r gjson.Result, caminhos ...string) string {
	for _, c := range caminhos {
		if v := strings.TrimSpace(r.Get(c).String()); v != "" {
			return v
		}
	}
	return ""
}

// data normaliza para AAAA-MM-DD quando reconhece o formato
func data(v string) string {
	if d, ok := validacao.ParseData(v); ok {
		return d.Format("2006-01-02")
	}
	return v
}
