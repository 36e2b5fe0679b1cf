package formulario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Contato é um telefone ou e-mail; só os selecionados seguem no envio
type Contato struct {
	Valor       string `json:"value"`
	Selecionado bool   `json:"selected"`
}

type Contatos []Contato

// Principal é o primeiro contato selecionado
func (c Contatos) Principal() string {
	for _, ct := range c {
		if ct.Selecionado {
			return strings.TrimSpace(ct.Valor)
		}
	}
	return ""
}

// Adicionais são os selecionados depois do principal
func (c Contatos) Adicionais() []string {
	var out []string
	primeiro := true
	for _, ct := range c {
		if !ct.Selecionado {
			continue
		}
		if primeiro {
			primeiro = false
			continue
		}
		out = append(out, strings.TrimSpace(ct.Valor))
	}
	return out
}

func (c Contatos) Selecionados() []string {
	var out []string
	for _, ct := range c {
		if ct.Selecionado {
			out = append(out, strings.TrimSpace(ct.Valor))
		}
	}
	return out
}

type Endereco struct {
	ID          string `json:"id"`
	Logradouro  string `json:"street"`
	Numero      string `json:"number"`
	Complemento string `json:"complement,omitempty"`
	Bairro      string `json:"neighborhood"`
	Cidade      string `json:"city"`
	UF          string `json:"state"`
	CEP         string `json:"postalCode"`
	Selecionado bool   `json:"selected"`
}

// Enderecos mantém no máximo um endereço selecionado
type Enderecos []Endereco

var ErrEnderecoNaoEncontrado = errors.New("endereço não encontrado")

// Adicionar inclui o endereço e devolve seu ID. O primeiro endereço, ou
// um que já chegue selecionado, passa a ser o único selecionado
func (e *Enderecos) Adicionar(end Endereco) string {
	if end.ID == "" {
		end.ID = uuid.NewString()
	}
	if len(*e) == 0 {
		end.Selecionado = true
	}
	if end.Selecionado {
		e.desmarcar()
	}
	*e = append(*e, end)
	return end.ID
}

func (e Enderecos) Selecionar(id string) error {
	i := e.indice(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEnderecoNaoEncontrado, id)
	}
	e.desmarcar()
	e[i].Selecionado = true
	return nil
}

// Remover exclui o endereço; se era o selecionado, o primeiro restante
// é promovido
func (e *Enderecos) Remover(id string) error {
	i := e.indice(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEnderecoNaoEncontrado, id)
	}
	eraSelecionado := (*e)[i].Selecionado
	*e = append((*e)[:i], (*e)[i+1:]...)
	if eraSelecionado && len(*e) > 0 {
		(*e)[0].Selecionado = true
	}
	return nil
}

func (e Enderecos) Selecionado() (Endereco, bool) {
	for _, end := range e {
		if end.Selecionado {
			return end, true
		}
	}
	return Endereco{}, false
}

// Normalizar gera IDs ausentes e deixa só o primeiro selecionado
func (e Enderecos) Normalizar() {
	achou := false
	for i := range e {
		if e[i].ID == "" {
			e[i].ID = uuid.NewString()
		}
		if e[i].Selecionado {
			if achou {
				e[i].Selecionado = false
			}
			achou = true
		}
	}
}

func (e Enderecos) desmarcar() {
	for i := range e {
		e[i].Selecionado = false
	}
}

func (e Enderecos) indice(id string) int {
	for i, end := range e {
		if end.ID == id {
			return i
		}
	}
	return -1
}

// Pessoa é o titular ou um dependente
type Pessoa struct {
	Nome           string    `json:"name"`
	CPF            string    `json:"cpf"`
	DataNascimento string    `json:"birthDate"`
	NomeMae        string    `json:"motherName,omitempty"`
	RG             string    `json:"rg,omitempty"`
	Parentesco     string    `json:"relationship,omitempty"`
	Telefones      Contatos  `json:"phones,omitempty"`
	Emails         Contatos  `json:"emails,omitempty"`
	Enderecos      Enderecos `json:"addresses,omitempty"`
}
