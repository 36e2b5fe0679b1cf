package etapas

import (
	"fmt"

	"github.com/corretora-saude/api-formulario/internal/validacao"
)

// Navegador move a etapa atual de uma trilha. A etapa vive fora dele,
// num slot compartilhado pela sessão
type Navegador struct {
	seq       Sequencia
	atual     *Etapa
	validador Validador
}

// NovoNavegador liga a sequência ao slot da etapa atual. Slot vazio ou
// com etapa de outra trilha é posicionado na primeira etapa
func NovoNavegador(seq Sequencia, atual *Etapa, v Validador) *Navegador {
	if !seq.Contem(*atual) {
		*atual = seq.Primeira()
	}
	return &Navegador{seq: seq, atual: atual, validador: v}
}

func (n *Navegador) Atual() Etapa {
	return *n.atual
}

func (n *Navegador) Primeira() Etapa {
	return n.seq.Primeira()
}

// EhUltima indica a etapa de revisão, estado terminal da trilha
func (n *Navegador) EhUltima() bool {
	return *n.atual == n.seq.Ultima()
}

// Avancar só sai da etapa atual quando ela não tem erros de campo. Na
// revisão não há próxima etapa; a saída é o envio
func (n *Navegador) Avancar() (validacao.Erros, error) {
	if n.EhUltima() {
		return nil, nil
	}
	if n.validador != nil {
		if errs := n.validador.ValidarEtapa(*n.atual); len(errs) > 0 {
			return errs, fmt.Errorf("%w: %s", ErrEtapaInvalida, *n.atual)
		}
	}
	*n.atual = n.seq[n.seq.Indice(*n.atual)+1]
	return nil, nil
}

// Voltar recua sem validar. Devolve false na primeira etapa, sinal para
// sair do assistente e voltar à escolha de trilha
func (n *Navegador) Voltar() bool {
	i := n.seq.Indice(*n.atual)
	if i <= 0 {
		return false
	}
	*n.atual = n.seq[i-1]
	return true
}

// IrPara posiciona direto na etapa, sem validar as intermediárias
func (n *Navegador) IrPara(e Etapa) error {
	if !n.seq.Contem(e) {
		return fmt.Errorf("%w: %q", ErrEtapaDesconhecida, e)
	}
	*n.atual = e
	return nil
}

// Reiniciar volta para a primeira etapa
func (n *Navegador) Reiniciar() {
	*n.atual = n.seq.Primeira()
}
