package payload

var (
	modalidades = map[string]string{
		"health": "saúde",
		"dental": "odontológico",
		"both":   "saúde e odontológico",
	}
	acomodacoes = map[string]string{
		"ward":    "enfermaria",
		"private": "apartamento",
	}
	coparticipacoes = map[string]string{
		"none":    "sem coparticipação",
		"partial": "coparticipação parcial",
		"full":    "coparticipação total",
	}
	tiposContrato = map[string]string{
		"individual": "individual/familiar",
		"adhesion":   "coletivo por adesão",
		"business":   "empresarial",
	}
	parentescos = map[string]string{
		"spouse":     "cônjuge",
		"partner":    "companheiro(a)",
		"child":      "filho(a)",
		"stepchild":  "enteado(a)",
		"parent":     "pai/mãe",
		"sibling":    "irmão(ã)",
		"grandchild": "neto(a)",
		"other":      "outro",
	}
)

// traduzir devolve o rótulo em português; valores desconhecidos passam
// sem alteração
func traduzir(tabela map[string]string, valor string) string {
	if rotulo, ok := tabela[valor]; ok {
		return rotulo
	}
	return valor
}
