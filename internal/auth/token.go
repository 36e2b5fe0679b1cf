package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/corretora-saude/api-formulario/internal/etapas"
)

// Claims do token de sessão: identificam a sessão e a trilha escolhida
type Claims struct {
	SessaoID string        `json:"sessaoId"`
	Trilha   etapas.Trilha `json:"trilha"`
	jwt.RegisteredClaims
}

const emissorPadrao = "api-formulario"

var (
	ErrTokenInvalido = errors.New("token inválido")
	ErrSegredoVazio  = errors.New("JWT_SECRET não definida")
)

// Emissor gera e valida tokens HS256 de sessão
type Emissor struct {
	segredo []byte
	ttl     time.Duration
	agora   func() time.Time
}

func NewEmissor(segredo string, ttl time.Duration) (*Emissor, error) {
	if segredo == "" {
		return nil, ErrSegredoVazio
	}
	return &Emissor{segredo: []byte(segredo), ttl: ttl, agora: time.Now}, nil
}

// Gerar emite o token da sessão; ttl zero não expira
func (e *Emissor) Gerar(sessaoID string, trilha etapas.Trilha) (string, error) {
	now := e.agora()
	claims := &Claims{
		SessaoID: sessaoID,
		Trilha:   trilha,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   emissorPadrao,
			Subject:  sessaoID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if e.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(e.ttl))
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(e.segredo)
}

// Validar confere assinatura, emissor e validade
func (e *Emissor) Validar(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(emissorPadrao),
		jwt.WithTimeFunc(e.agora),
	)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return e.segredo, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalido, err)
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || c.SessaoID == "" {
		return nil, ErrTokenInvalido
	}
	return c, nil
}
