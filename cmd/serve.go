package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/corretora-saude/api-formulario/internal/auth"
	"github.com/corretora-saude/api-formulario/internal/config"
	"github.com/corretora-saude/api-formulario/internal/consulta"
	"github.com/corretora-saude/api-formulario/internal/documentos"
	"github.com/corretora-saude/api-formulario/internal/envio"
	"github.com/corretora-saude/api-formulario/internal/notificacao"
	"github.com/corretora-saude/api-formulario/internal/operadora"
	"github.com/corretora-saude/api-formulario/internal/sessao"
	"github.com/corretora-saude/api-formulario/internal/submissao"
	"github.com/corretora-saude/api-formulario/internal/utils/db"
	"github.com/corretora-saude/api-formulario/internal/venda"
	"github.com/corretora-saude/api-formulario/pkg/log"

	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

const (
	intervaloLimpeza = 10 * time.Minute
	prazoDesligar    = 15 * time.Second
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API HTTP do formulário",
	Long: `Sobe a API HTTP do formulário de venda.

A configuração vem do ambiente (ou de um .env). Exemplos:
  api-formulario serve
  api-formulario serve --migrate`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "aplica as migrações antes de subir")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := carregarConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.ConnectDataBase(ctx, cfg.DB)
	if err != nil {
		return err
	}
	if serveMigrate {
		if err := db.Migrar(database); err != nil {
			return fmt.Errorf("migrar: %w", err)
		}
	}

	sessoes, err := novoStore(ctx, cfg)
	if err != nil {
		return err
	}
	tokens, err := auth.NewEmissor(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		return err
	}

	diretorio := operadora.NewRepository(database)
	orquestrador := envio.New(
		notificacao.NewWebhook(cfg.WebhookURL, cfg.WebhookTimeout),
		submissao.NewRegistro(database),
	)

	h := venda.NewHandler(sessoes, tokens, orquestrador, diretorio, diretorio)
	h.Consulta = consulta.NewClient(cfg.LookupCPFURL, cfg.LookupCNPJURL, 0)
	storage, err := documentos.NewStorage(ctx, cfg.DocumentsBucketURL, cfg.DocumentsPublicURL)
	if err != nil {
		return err
	}
	defer storage.Close()
	h.Documentos = storage

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           novoRouter(cfg, h, diretorio, database),
		ReadHeaderTimeout: 10 * time.Second,
	}

	erros := make(chan error, 1)
	go func() {
		slog.Info("API ouvindo", slog.String("addr", srv.Addr))
		erros <- srv.ListenAndServe()
	}()

	select {
	case err := <-erros:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Desligando API")
	desligar, cancel := context.WithTimeout(context.Background(), prazoDesligar)
	defer cancel()
	return srv.Shutdown(desligar)
}

func carregarConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.SetDefault(log.NewWithLevel("api-formulario", os.Getenv("ENV"), Version,
		log.ParseLevel(cfg.LogLevel)))
	return cfg, nil
}

func novoRouter(
	cfg *config.Config, h *venda.Handler, diretorio *operadora.Repository, database *gorm.DB,
) http.Handler {
	r := mux.NewRouter()
	h.Registrar(r)

	operadoras := operadora.NewHandler(diretorio)
	r.HandleFunc("/operadoras", operadoras.ListOperadoras).Methods(http.MethodGet)
	r.HandleFunc("/operadoras/{id}", operadoras.GetOperadora).Methods(http.MethodGet)
	r.HandleFunc("/administradoras", operadoras.ListAdministradoras).Methods(http.MethodGet)
	r.HandleFunc("/supervisores", operadoras.ListSupervisores).Methods(http.MethodGet)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.ChaveAdmin(cfg.AdminKeyHash))
	submissoes := submissao.NewHandler(database)
	admin.HandleFunc("/submissoes", submissoes.ListarSubmissoes).Methods(http.MethodGet)
	admin.HandleFunc("/submissoes/{id}", submissoes.BuscarSubmissao).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", auth.HeaderChaveAdmin},
	})
	return c.Handler(r)
}

// novoStore escolhe onde as sessões em andamento ficam guardadas
func novoStore(ctx context.Context, cfg *config.Config) (sessao.Store, error) {
	if cfg.SessionStore == config.StoreMemory {
		m := sessao.NewMemoryStore(cfg.SessionTTL)
		go limparSessoes(ctx, m)
		return m, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.Addr,
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		Protocol:        2,
		DisableIdentity: true,
	})
	st, err := sessao.NewRedisStore(client, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}
	if err := st.Ping(ctx); err != nil {
		return nil, fmt.Errorf("conectar ao redis: %w", err)
	}
	return st, nil
}

func limparSessoes(ctx context.Context, m *sessao.MemoryStore) {
	t := time.NewTicker(intervaloLimpeza)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Limpar(); n > 0 {
				slog.Debug("Sessões expiradas removidas", slog.Int("quantidade", n))
			}
		}
	}
}
