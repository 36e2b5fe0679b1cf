package validacao

import "strings"

// SomenteDigitos remove tudo que não for dígito
func SomenteDigitos(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CPFValido confere tamanho e os dois dígitos verificadores
func CPFValido(v string) bool {
	if !bemFormado(v) {
		return false
	}
	d := SomenteDigitos(v)
	if len(d) != 11 || repetido(d) {
		return false
	}
	return digitoMod11(d[:9], 10) == int(d[9]-'0') &&
		digitoMod11(d[:10], 11) == int(d[10]-'0')
}

// CNPJValido confere tamanho e os dois dígitos verificadores
func CNPJValido(v string) bool {
	if !bemFormado(v) {
		return false
	}
	d := SomenteDigitos(v)
	if len(d) != 14 || repetido(d) {
		return false
	}
	p1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	p2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return digitoPesos(d[:12], p1) == int(d[12]-'0') &&
		digitoPesos(d[:13], p2) == int(d[13]-'0')
}

// digitoMod11 pondera os dígitos de pesoInicial até 2
func digitoMod11(digitos string, pesoInicial int) int {
	pesos := make([]int, len(digitos))
	for i := range pesos {
		pesos[i] = pesoInicial - i
	}
	return digitoPesos(digitos, pesos)
}

func digitoPesos(digitos string, pesos []int) int {
	soma := 0
	for i, r := range digitos {
		soma += int(r-'0') * pesos[i]
	}
	resto := soma % 11
	if resto < 2 {
		return 0
	}
	return 11 - resto
}

// bemFormado aceita só dígitos e a pontuação das máscaras de CPF e CNPJ
func bemFormado(v string) bool {
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '-', r == '/', r == ' ':
		default:
			return false
		}
	}
	return true
}

func repetido(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
