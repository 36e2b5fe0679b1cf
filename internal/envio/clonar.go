package envio

import (
	"encoding/json"
	"fmt"

	"github.com/corretora-saude/api-formulario/internal/formulario"
)

// clonar faz uma cópia profunda para que a resolução de referências não
// toque a sessão de quem chamou
func clonar(s *formulario.Sessao) (*formulario.Sessao, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormatoInvalido, err)
	}
	var c formulario.Sessao
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormatoInvalido, err)
	}
	return &c, nil
}
