package formulario

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Referencia é um campo que chega só com o ID (não resolvida) ou com o
// registro completo (resolvida). A resolução acontece uma vez, no envio
type Referencia[T any] struct {
	id       string
	registro *T
}

func NaoResolvida[T any](id string) Referencia[T] {
	return Referencia[T]{id: strings.TrimSpace(id)}
}

func Resolvida[T any](id string, reg *T) Referencia[T] {
	return Referencia[T]{id: strings.TrimSpace(id), registro: reg}
}

func (r Referencia[T]) ID() string { return r.id }

func (r Referencia[T]) Vazia() bool { return r.id == "" }

// Registro devolve o registro quando a referência já foi resolvida
func (r Referencia[T]) Registro() (*T, bool) {
	return r.registro, r.registro != nil
}

// Resolver busca o registro pelo ID; vazia ou já resolvida não consulta
func (r *Referencia[T]) Resolver(
	ctx context.Context, buscar func(context.Context, string) (*T, error),
) error {
	if r.Vazia() || r.registro != nil {
		return nil
	}
	reg, err := buscar(ctx, r.id)
	if err != nil {
		return err
	}
	r.registro = reg
	return nil
}

// MarshalJSON grava o ID puro ou o registro completo
func (r Referencia[T]) MarshalJSON() ([]byte, error) {
	switch {
	case r.Vazia():
		return []byte("null"), nil
	case r.registro != nil:
		return json.Marshal(r.registro)
	default:
		return json.Marshal(r.id)
	}
}

// UnmarshalJSON aceita null, ID string, ID numérico ou objeto com "id"
func (r *Referencia[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = Referencia[T]{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		r.id = strings.TrimSpace(id)
		return nil
	case '{':
		var campos map[string]json.RawMessage
		if err := json.Unmarshal(data, &campos); err != nil {
			return err
		}
		id := strings.Trim(string(bytes.TrimSpace(campos["id"])), `"`)
		if id == "" || id == "null" {
			return fmt.Errorf("referência sem id: %s", data)
		}
		var reg T
		if err := json.Unmarshal(data, &reg); err != nil {
			return err
		}
		r.id, r.registro = id, &reg
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("referência inválida: %s", data)
		}
		r.id = n.String()
		return nil
	}
}
