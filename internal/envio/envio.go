// Package envio coordena a submissão final do formulário ao webhook
package envio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/corretora-saude/api-formulario/internal/etapas"
	"github.com/corretora-saude/api-formulario/internal/formulario"
	"github.com/corretora-saude/api-formulario/internal/operadora"
	"github.com/corretora-saude/api-formulario/internal/payload"
	"github.com/corretora-saude/api-formulario/internal/submissao"
	"github.com/corretora-saude/api-formulario/internal/validacao"
	"github.com/corretora-saude/api-formulario/pkg/log"
)

type (
	// Destino recebe o formulário já aninhado
	Destino interface {
		Enviar(ctx context.Context, dados map[string]any) error
	}

	// Registrador guarda o histórico de submissões
	Registrador interface {
		Registrar(ctx context.Context, s *submissao.Submissao) error
	}

	Orquestrador struct {
		destino     Destino
		registrador Registrador
	}

	// ErroValidacao carrega os erros de campo encontrados na revalidação
	ErroValidacao struct {
		Erros validacao.Erros
	}
)

var (
	ErrFormatoInvalido = errors.New("formato do formulário inválido")
	ErrReferencia      = errors.New("referência não resolvida")
)

func (e *ErroValidacao) Error() string {
	return fmt.Sprintf("formulário com %d campo(s) inválido(s)", len(e.Erros))
}

// New cria o orquestrador; registrador pode ser nil
func New(destino Destino, registrador Registrador) *Orquestrador {
	return &Orquestrador{destino: destino, registrador: registrador}
}

// Submit envia a sessão ao webhook. A sessão recebida nunca é alterada;
// quem chama decide resetá-la em caso de sucesso
func (o *Orquestrador) Submit(
	ctx context.Context,
	s *formulario.Sessao,
	operadoras operadora.Diretorio,
	supervisores operadora.DiretorioSupervisores,
	observacoes string,
) (map[string]any, error) {
	if s == nil {
		return nil, ErrFormatoInvalido
	}
	copia, err := clonar(s)
	if err != nil {
		return nil, err
	}
	if err := checarFormato(copia); err != nil {
		return nil, err
	}

	f, _ := copia.Formulario()
	if err := f.Resolver(ctx, operadoras, supervisores); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReferencia, err)
	}
	if errs := f.Validar(); !errs.Vazio() {
		return nil, &ErroValidacao{Erros: errs}
	}

	var b payload.Builder
	if copia.Trilha == etapas.TrilhaIndividual {
		b = payload.NewIndividualBuilder(copia.Individual)
	} else {
		b = payload.NewPMEBuilder(copia.PME)
	}
	params, err := b.Build(observacoes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormatoInvalido, err)
	}
	dados, err := payload.Aninhar(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormatoInvalido, err)
	}

	errEnvio := o.destino.Enviar(ctx, dados)
	o.registrar(ctx, copia, dados, errEnvio)
	if errEnvio != nil {
		slog.Error("Falha no envio do formulário",
			log.SessaoID(copia.ID), log.Trilha(copia.Trilha), log.Error(errEnvio))
		return nil, errEnvio
	}

	slog.Info("Formulário enviado", log.SessaoID(copia.ID), log.Trilha(copia.Trilha))
	return dados, nil
}

// checarFormato é só a presença dos blocos de topo de cada trilha
func checarFormato(s *formulario.Sessao) error {
	switch s.Trilha {
	case etapas.TrilhaIndividual:
		f := s.Individual
		if f == nil || f.Titular == nil || f.Plano == nil {
			return fmt.Errorf("%w: titular e plano são obrigatórios", ErrFormatoInvalido)
		}
	case etapas.TrilhaPME:
		f := s.PME
		if f == nil || f.Corretor == nil || f.Contrato == nil || f.Empresa == nil || len(f.Titulares) == 0 {
			return fmt.Errorf("%w: corretor, contrato, empresa e titulares são obrigatórios",
				ErrFormatoInvalido)
		}
	default:
		return fmt.Errorf("%w: trilha %q", ErrFormatoInvalido, s.Trilha)
	}
	return nil
}

func (o *Orquestrador) registrar(
	ctx context.Context, s *formulario.Sessao, dados map[string]any, errEnvio error,
) {
	if o.registrador == nil {
		return
	}
	reg := &submissao.Submissao{
		SessaoID: s.ID,
		Trilha:   string(s.Trilha),
		Status:   submissao.StatusEnviado,
		Payload:  dados,
	}
	if c := corretor(s); c != nil {
		reg.Corretor, reg.CorretorDocumento = c.Nome, c.Documento
	}
	if errEnvio != nil {
		reg.Status, reg.Erro = submissao.StatusFalhou, errEnvio.Error()
	}
	if err := o.registrador.Registrar(ctx, reg); err != nil {
		slog.Warn("Não foi possível registrar a submissão",
			log.SessaoID(s.ID), log.Error(err))
	}
}

func corretor(s *formulario.Sessao) *formulario.Corretor {
	if s.Trilha == etapas.TrilhaPME {
		return s.PME.Corretor
	}
	return s.Individual.Corretor
}
