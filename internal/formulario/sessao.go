package formulario

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/corretora-saude/api-formulario/internal/etapas"
	"github.com/corretora-saude/api-formulario/internal/operadora"
	v "github.com/corretora-saude/api-formulario/internal/validacao"
)

// Formulario é o contrato comum aos formulários das duas trilhas
type Formulario interface {
	etapas.Validador
	Validar() v.Erros
	Resolver(context.Context, operadora.Diretorio, operadora.DiretorioSupervisores) error
	Reset()
}

var (
	_ Formulario = (*FormularioIndividual)(nil)
	_ Formulario = (*FormularioPME)(nil)
)

// Sessao é o estado completo de um preenchimento em andamento. Ela é a
// única dona dos dois formulários e do slot da etapa atual
type Sessao struct {
	ID           string                `json:"id"`
	Trilha       etapas.Trilha         `json:"trilha"`
	Etapa        etapas.Etapa          `json:"etapa"`
	Individual   *FormularioIndividual `json:"individual"`
	PME          *FormularioPME        `json:"pme"`
	CriadaEm     time.Time             `json:"criadaEm"`
	AtualizadaEm time.Time             `json:"atualizadaEm"`
}

// NovaSessao cria a sessão já posicionada na primeira etapa da trilha
func NovaSessao(trilha etapas.Trilha) (*Sessao, error) {
	agora := time.Now().UTC()
	s := &Sessao{
		ID:           uuid.NewString(),
		Individual:   NovoFormularioIndividual(),
		PME:          NovoFormularioPME(),
		CriadaEm:     agora,
		AtualizadaEm: agora,
	}
	if err := s.Iniciar(trilha); err != nil {
		return nil, err
	}
	return s, nil
}

// Iniciar troca de trilha e volta para a primeira etapa dela
func (s *Sessao) Iniciar(trilha etapas.Trilha) error {
	seq, err := etapas.SequenciaPara(trilha)
	if err != nil {
		return err
	}
	s.Trilha = trilha
	s.Etapa = seq.Primeira()
	s.garantirFormularios()
	return nil
}

// Formulario devolve o formulário da trilha ativa
func (s *Sessao) Formulario() (Formulario, error) {
	s.garantirFormularios()
	switch s.Trilha {
	case etapas.TrilhaIndividual:
		return s.Individual, nil
	case etapas.TrilhaPME:
		return s.PME, nil
	default:
		return nil, fmt.Errorf("%w: %q", etapas.ErrTrilhaDesconhecida, s.Trilha)
	}
}

// Navegador liga a sequência da trilha ativa ao slot de etapa da sessão
func (s *Sessao) Navegador() (*etapas.Navegador, error) {
	seq, err := etapas.SequenciaPara(s.Trilha)
	if err != nil {
		return nil, err
	}
	f, err := s.Formulario()
	if err != nil {
		return nil, err
	}
	return etapas.NovoNavegador(seq, &s.Etapa, f), nil
}

// Documentos devolve o conjunto de documentos da trilha ativa
func (s *Sessao) Documentos() (*Documentos, error) {
	s.garantirFormularios()
	switch s.Trilha {
	case etapas.TrilhaIndividual:
		return &s.Individual.Documentos, nil
	case etapas.TrilhaPME:
		return &s.PME.Documentos, nil
	default:
		return nil, fmt.Errorf("%w: %q", etapas.ErrTrilhaDesconhecida, s.Trilha)
	}
}

// Reset descarta os dados das duas trilhas e volta à primeira etapa
func (s *Sessao) Reset() {
	s.Individual = NovoFormularioIndividual()
	s.PME = NovoFormularioPME()
	if seq, err := etapas.SequenciaPara(s.Trilha); err == nil {
		s.Etapa = seq.Primeira()
	}
	s.Tocar()
}

// Tocar atualiza o horário da última alteração
func (s *Sessao) Tocar() {
	s.AtualizadaEm = time.Now().UTC()
}

func (s *Sessao) garantirFormularios() {
	if s.Individual == nil {
		s.Individual = NovoFormularioIndividual()
	}
	if s.PME == nil {
		s.PME = NovoFormularioPME()
	}
	if s.Individual.Documentos == nil {
		s.Individual.Documentos = Documentos{}
	}
	if s.PME.Documentos == nil {
		s.PME.Documentos = Documentos{}
	}
}
