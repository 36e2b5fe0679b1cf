// Package sessao guarda as sessões de preenchimento entre requisições
package sessao

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/corretora-saude/api-formulario/internal/formulario"
)

type (
	Store interface {
		Buscar(ctx context.Context, id string) (*formulario.Sessao, error)
		Salvar(ctx context.Context, s *formulario.Sessao) error
		Remover(ctx context.Context, id string) error
	}

	// MemoryStore mantém as sessões no processo, com expiração por TTL
	MemoryStore struct {
		ttl     time.Duration
		agora   func() time.Time
		mu      sync.Mutex
		sessoes map[string]entrada
	}

	entrada struct {
		dados  []byte
		expira time.Time
	}
)

var ErrSessaoNaoEncontrada = errors.New("sessão não encontrada")

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)

// NewMemoryStore cria o store em memória; ttl zero não expira
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		agora:   time.Now,
		sessoes: map[string]entrada{},
	}
}

func (m *MemoryStore) Buscar(_ context.Context, id string) (*formulario.Sessao, error) {
	m.mu.Lock()
	e, ok := m.sessoes[id]
	if ok && m.expirada(e) {
		delete(m.sessoes, id)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return nil, ErrSessaoNaoEncontrada
	}
	return decodificar(e.dados)
}

// Salvar grava uma cópia serializada, então alterações posteriores no
// ponteiro não vazam para o store
func (m *MemoryStore) Salvar(_ context.Context, s *formulario.Sessao) error {
	dados, err := codificar(s)
	if err != nil {
		return err
	}
	e := entrada{dados: dados}
	if m.ttl > 0 {
		e.expira = m.agora().Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessoes[s.ID] = e
	return nil
}

func (m *MemoryStore) Remover(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessoes, id)
	return nil
}

// Limpar descarta as sessões expiradas e devolve quantas saíram
func (m *MemoryStore) Limpar() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessoes {
		if m.expirada(e) {
			delete(m.sessoes, id)
			n++
		}
	}
	return n
}

func (m *MemoryStore) expirada(e entrada) bool {
	return !e.expira.IsZero() && !m.agora().Before(e.expira)
}
