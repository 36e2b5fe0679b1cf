package submissao

import "gorm.io/gorm"

const (
	StatusEnviado = "enviado"
	StatusFalhou  = "falhou"
)

// Submissao registra cada tentativa de envio ao webhook
type Submissao struct {
	gorm.Model
	SessaoID          string         `gorm:"size:36;index" json:"sessaoId"`
	Trilha            string         `gorm:"size:20;index" json:"trilha"`
	Corretor          string         `gorm:"size:255" json:"corretor"`
	CorretorDocumento string         `gorm:"size:18" json:"corretorDocumento"`
	Status            string         `gorm:"size:20;index" json:"status"`
	Payload           map[string]any `gorm:"type:jsonb;serializer:json" json:"payload"`
	Erro              string         `gorm:"type:text" json:"erro,omitempty"`
}
