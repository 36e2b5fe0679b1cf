package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/corretora-saude/api-formulario/internal/etapas"
	"github.com/corretora-saude/api-formulario/internal/utils"
)

type ctxKey string

const (
	CtxSessaoID ctxKey = "sessaoID"
	CtxTrilha   ctxKey = "trilha"

	// HeaderChaveAdmin carrega a chave das rotas administrativas
	HeaderChaveAdmin = "X-Admin-Key"
)

// Middleware exige o Bearer de sessão e põe sessão e trilha no contexto
func (e *Emissor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		claims, err := e.Validar(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxSessaoID, claims.SessaoID)
		ctx = context.WithValue(ctx, CtxTrilha, claims.Trilha)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessaoID devolve a sessão autenticada pelo Middleware
func SessaoID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxSessaoID).(string)
	return id, ok && id != ""
}

func Trilha(ctx context.Context) etapas.Trilha {
	t, _ := ctx.Value(CtxTrilha).(etapas.Trilha)
	return t
}

// ChaveAdmin protege rotas administrativas comparando a chave enviada com
// o hash bcrypt configurado. Sem hash configurado, tudo é recusado
func ChaveAdmin(hash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			chave := r.Header.Get(HeaderChaveAdmin)
			if hash == "" || chave == "" || !utils.ConferirChave(hash, chave) {
				http.Error(w, "Forbidden (admin only)", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
