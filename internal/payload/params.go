// Package payload transforma o estado acumulado de um formulário nos
// parâmetros planos enviados ao webhook de vendas
package payload

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Params é o conjunto plano chave → valor enviado ao webhook
type Params map[string]string

const prefixoDocumentos = "documents_"

// Achatar percorre obj e emite uma chave por folha. Listas viram
// prefixo_chave_<i> (base 1) e valores nil são ignorados
func Achatar(obj map[string]any, prefixo string) Params {
	out := Params{}
	achatar(out, obj, prefixo)
	return out
}

func achatar(out Params, obj map[string]any, prefixo string) {
	for k, val := range obj {
		achatarValor(out, juntar(prefixo, k), val)
	}
}

func achatarValor(out Params, chave string, val any) {
	switch x := val.(type) {
	case nil:
	case map[string]any:
		achatar(out, x, chave)
	case []map[string]any:
		for i, item := range x {
			achatar(out, item, chave+"_"+strconv.Itoa(i+1))
		}
	case []any:
		for i, item := range x {
			achatarValor(out, chave+"_"+strconv.Itoa(i+1), item)
		}
	case []string:
		for i, item := range x {
			out[chave+"_"+strconv.Itoa(i+1)] = item
		}
	case string:
		out[chave] = x
	case bool:
		out[chave] = strconv.FormatBool(x)
	case float64:
		out[chave] = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		out[chave] = fmt.Sprint(x)
	}
}

func juntar(prefixo, k string) string {
	if prefixo == "" {
		return k
	}
	return prefixo + "_" + k
}

// Aninhar reconstrói a árvore dividindo as chaves em "_". Chaves
// documents_<categoria> carregam JSON e são decodificadas no lugar.
// Quando uma chave é folha e prefixo ao mesmo tempo, o ramo prevalece
func Aninhar(p Params) (map[string]any, error) {
	raiz := map[string]any{}

	chaves := make([]string, 0, len(p))
	for k := range p {
		chaves = append(chaves, k)
	}
	sort.Strings(chaves)

	for _, k := range chaves {
		if cat, ok := strings.CutPrefix(k, prefixoDocumentos); ok && cat != "" {
			var arquivos any
			if err := json.Unmarshal([]byte(p[k]), &arquivos); err != nil {
				return nil, fmt.Errorf("documentos %q: %w", cat, err)
			}
			docs := ramo(raiz, "documents")
			docs[cat] = arquivos
			continue
		}

		partes := strings.Split(k, "_")
		no := raiz
		for _, parte := range partes[:len(partes)-1] {
			no = ramo(no, parte)
		}
		folha := partes[len(partes)-1]
		if _, ehRamo := no[folha].(map[string]any); ehRamo {
			continue
		}
		no[folha] = p[k]
	}
	return raiz, nil
}

// ramo devolve o mapa filho, substituindo uma folha se houver
func ramo(no map[string]any, chave string) map[string]any {
	if filho, ok := no[chave].(map[string]any); ok {
		return filho
	}
	filho := map[string]any{}
	no[chave] = filho
	return filho
}
