// Package validacao reúne as regras de campo do formulário de venda.
// Cada regra devolve "" quando o valor é aceito ou a mensagem de erro.
package validacao

import (
	"regexp"
	"strings"
	"time"
)

// Erros mapeia o caminho do campo (ex.: "holder.cpf") para a mensagem
type Erros map[string]string

// Adicionar registra msg em campo quando msg não é vazia
func (e Erros) Adicionar(campo, msg string) {
	if msg != "" {
		e[campo] = msg
	}
}

// Mesclar copia os erros de outro conjunto prefixando os campos
func (e Erros) Mesclar(prefixo string, outros Erros) {
	for k, v := range outros {
		if prefixo == "" {
			e[k] = v
			continue
		}
		e[prefixo+"."+k] = v
	}
}

func (e Erros) Vazio() bool { return len(e) == 0 }

const (
	MsgObrigatorio    = "Campo obrigatório"
	MsgCPFInvalido    = "CPF inválido"
	MsgCNPJInvalido   = "CNPJ inválido"
	MsgDocInvalido    = "CPF ou CNPJ inválido"
	MsgEmailInvalido  = "E-mail inválido"
	MsgFoneInvalido   = "Telefone inválido"
	MsgDataInvalida   = "Data inválida"
	MsgDataFutura     = "A data de nascimento deve estar no passado"
	MsgIdadeMaxima    = "Idade máxima de 100 anos"
	MsgCEPInvalido    = "CEP inválido"
	MsgUFInvalida     = "UF inválida"
	IdadeMaximaAnos   = 100
	formatoISO        = "2006-01-02"
	formatoBrasileiro = "02/01/2006"
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	telefoneRe = regexp.MustCompile(
		`^(\+?55\s?)?((\(\d{2}\)|\d{2})\s?)?9?\d{4}-?\d{4}$`,
	)

	ufs = map[string]bool{
		"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true,
		"DF": true, "ES": true, "GO": true, "MA": true, "MT": true, "MS": true,
		"MG": true, "PA": true, "PB": true, "PR": true, "PE": true, "PI": true,
		"RJ": true, "RN": true, "RS": true, "RO": true, "RR": true, "SC": true,
		"SP": true, "SE": true, "TO": true,
	}
)

func Obrigatorio(v string) string {
	if strings.TrimSpace(v) == "" {
		return MsgObrigatorio
	}
	return ""
}

func CPF(v string) string {
	if msg := Obrigatorio(v); msg != "" {
		return msg
	}
	if !CPFValido(v) {
		return MsgCPFInvalido
	}
	return ""
}

func CNPJ(v string) string {
	if msg := Obrigatorio(v); msg != "" {
		return msg
	}
	if !CNPJValido(v) {
		return MsgCNPJInvalido
	}
	return ""
}

// Documento aceita CPF (11 dígitos) ou CNPJ (14 dígitos)
func Documento(v string) string {
	if msg := Obrigatorio(v); msg != "" {
		return msg
	}
	switch len(SomenteDigitos(v)) {
	case 11:
		if CPFValido(v) {
			return ""
		}
	case 14:
		if CNPJValido(v) {
			return ""
		}
	}
	return MsgDocInvalido
}

func Email(v string) string {
	if msg := Obrigatorio(v); msg != "" {
		return msg
	}
	if !emailRe.MatchString(strings.TrimSpace(v)) {
		return MsgEmailInvalido
	}
	return ""
}

func Telefone(v string) string {
	if msg := Obrigatorio(v); msg != "" {
		return msg
	}
	if !telefoneRe.MatchString(strings.TrimSpace(v)) {
		return MsgFoneInvalido
	}
	return ""
}

func CEP(v string) string {
	if msg := Obrigatorio(v); msg != "" {
		return msg
	}
	if len(SomenteDigitos(v)) != 8 {
		return MsgCEPInvalido
	}
	return ""
}

func UF(v string) string {
	if msg := Obrigatorio(v); msg != "" {
		return msg
	}
	if !ufs[strings.ToUpper(strings.TrimSpace(v))] {
		return MsgUFInvalida
	}
	return ""
}

// ParseData aceita "2006-01-02" ou "02/01/2006"
func ParseData(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, f := range []string{formatoISO, formatoBrasileiro} {
		if t, err := time.Parse(f, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DataNascimento exige data no passado e idade de no máximo 100 anos,
// contando anos civis e descontando um se o aniversário ainda não chegou
func DataNascimento(v string, agora time.Time) string {
	if msg := Obrigatorio(v); msg != "" {
		return msg
	}
	nasc, ok := ParseData(v)
	if !ok {
		return MsgDataInvalida
	}
	hoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, time.UTC)
	if !nasc.Before(hoje) {
		return MsgDataFutura
	}
	if Idade(nasc, hoje) > IdadeMaximaAnos {
		return MsgIdadeMaxima
	}
	return ""
}

// Idade em anos completos na data de referência
func Idade(nasc, ref time.Time) int {
	anos := ref.Year() - nasc.Year()
	if ref.Month() < nasc.Month() ||
		(ref.Month() == nasc.Month() && ref.Day() < nasc.Day()) {
		anos--
	}
	return anos
}

// Campo escolhe a regra pelo nome do campo; sem regra específica vale
// a de preenchimento obrigatório
func Campo(nome, valor string) string {
	switch nome {
	case "cpf":
		return CPF(valor)
	case "cnpj":
		return CNPJ(valor)
	case "taxId":
		return Documento(valor)
	case "email":
		return Email(valor)
	case "phone":
		return Telefone(valor)
	case "birthDate":
		return DataNascimento(valor, time.Now())
	case "postalCode":
		return CEP(valor)
	case "state":
		return UF(valor)
	default:
		return Obrigatorio(valor)
	}
}
