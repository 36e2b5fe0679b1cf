package formulario

import (
	"errors"
	"fmt"
)

const (
	CategoriaBeneficiarios = "beneficiaries"
	CategoriaCotacao       = "quotation"
	CategoriaCarencia      = "grace"
	CategoriaAdicionais    = "additional"
	CategoriaEmpresa       = "company"
)

var (
	ErrCategoriaInvalida = errors.New("categoria de documento inválida")
	ErrArquivoInvalido   = errors.New("arquivo não encontrado na categoria")

	categorias = []string{
		CategoriaBeneficiarios, CategoriaCotacao, CategoriaCarencia,
		CategoriaAdicionais, CategoriaEmpresa,
	}
)

type Arquivo struct {
	URL  string `json:"url"`
	Nome string `json:"name"`
}

// Documentos agrupa os arquivos enviados por categoria, na ordem de envio
type Documentos map[string][]Arquivo

func Categorias() []string {
	return append([]string(nil), categorias...)
}

func CategoriaValida(c string) bool {
	for _, cat := range categorias {
		if cat == c {
			return true
		}
	}
	return false
}

func (d *Documentos) Anexar(categoria string, arqs ...Arquivo) error {
	if !CategoriaValida(categoria) {
		return fmt.Errorf("%w: %q", ErrCategoriaInvalida, categoria)
	}
	if *d == nil {
		*d = Documentos{}
	}
	(*d)[categoria] = append((*d)[categoria], arqs...)
	return nil
}

// Remover exclui o arquivo na posição i (base zero) da categoria
func (d Documentos) Remover(categoria string, i int) error {
	list, ok := d[categoria]
	if !ok || i < 0 || i >= len(list) {
		return fmt.Errorf("%w: %s[%d]", ErrArquivoInvalido, categoria, i)
	}
	d[categoria] = append(list[:i], list[i+1:]...)
	if len(d[categoria]) == 0 {
		delete(d, categoria)
	}
	return nil
}

func (d *Documentos) Limpar() {
	*d = Documentos{}
}
