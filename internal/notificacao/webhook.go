package notificacao

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/corretora-saude/api-formulario/pkg/log"
)

// ErrFalhaEnvio é devolvido para qualquer falha de transporte ou resposta
// fora da faixa 2xx
var ErrFalhaEnvio = errors.New("Falha ao enviar formulário")

// Webhook envia o formulário montado para a URL fixa de automação
type Webhook struct {
	URL    string
	Client *http.Client
}

// NewWebhook usa o cliente HTTP padrão quando timeout é zero
func NewWebhook(url string, timeout time.Duration) *Webhook {
	client := http.DefaultClient
	if timeout > 0 {
		client = &http.Client{Timeout: timeout}
	}
	return &Webhook{URL: url, Client: client}
}

type envelope struct {
	Data map[string]any `json:"data"`
}

// Enviar faz um único POST com {"data": dados}. Não há nova tentativa
func (w *Webhook) Enviar(ctx context.Context, dados map[string]any) error {
	body, err := json.Marshal(envelope{Data: dados})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFalhaEnvio, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFalhaEnvio, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		slog.Error("Erro ao enviar webhook", log.Error(err))
		return fmt.Errorf("%w: %v", ErrFalhaEnvio, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Error("Webhook recusou o formulário", log.Status(resp.StatusCode))
		return fmt.Errorf("%w: status %d", ErrFalhaEnvio, resp.StatusCode)
	}
	return nil
}
