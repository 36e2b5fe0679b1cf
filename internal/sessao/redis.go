package sessao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/corretora-saude/api-formulario/internal/formulario"
)

const prefixoChave = "formulario:sessao:"

// RedisStore guarda cada sessão como JSON numa chave com TTL, renovado a
// cada gravação
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (r *RedisStore) Buscar(ctx context.Context, id string) (*formulario.Sessao, error) {
	dados, err := r.client.Get(ctx, chave(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessaoNaoEncontrada
	}
	if err != nil {
		return nil, fmt.Errorf("buscar sessão %s: %w", id, err)
	}
	return decodificar(dados)
}

func (r *RedisStore) Salvar(ctx context.Context, s *formulario.Sessao) error {
	dados, err := codificar(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, chave(s.ID), dados, r.ttl).Err(); err != nil {
		return fmt.Errorf("salvar sessão %s: %w", s.ID, err)
	}
	return nil
}

func (r *RedisStore) Remover(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, chave(id)).Err(); err != nil {
		return fmt.Errorf("remover sessão %s: %w", id, err)
	}
	return nil
}

// Ping confere a conexão na subida do servidor
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func chave(id string) string {
	return prefixoChave + id
}

func codificar(s *formulario.Sessao) ([]byte, error) {
	if s == nil || s.ID == "" {
		return nil, errors.New("sessão sem id")
	}
	return json.Marshal(s)
}

func decodificar(dados []byte) (*formulario.Sessao, error) {
	var s formulario.Sessao
	if err := json.Unmarshal(dados, &s); err != nil {
		return nil, fmt.Errorf("sessão corrompida: %w", err)
	}
	return &s, nil
}
