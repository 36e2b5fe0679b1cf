// internal/operadora/model.go
package operadora

import "time"

// Operadora é a operadora de plano de saúde selecionável no formulário
type Operadora struct {
	ID          uint      `gorm:"primaryKey" json:"id" yaml:"id"`
	Nome        string    `gorm:"size:255;not null" json:"nome" yaml:"nome"`
	RegistroANS string    `gorm:"size:20;index" json:"registroAns" yaml:"registroAns"`
	Ativa       bool      `gorm:"not null;default:true" json:"ativa" yaml:"ativa"`
	CreatedAt   time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"-"`
}

// Administradora de benefícios, exigida em planos coletivos por adesão
type Administradora struct {
	ID        uint      `gorm:"primaryKey" json:"id" yaml:"id"`
	Nome      string    `gorm:"size:255;not null" json:"nome" yaml:"nome"`
	CNPJ      string    `gorm:"size:18" json:"cnpj" yaml:"cnpj"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"-"`
}

// Supervisor responde pela equipe do corretor
type Supervisor struct {
	ID        uint      `gorm:"primaryKey" json:"id" yaml:"id"`
	Nome      string    `gorm:"size:255;not null" json:"nome" yaml:"nome"`
	Email     string    `gorm:"size:255" json:"email" yaml:"email"`
	Equipe    string    `gorm:"size:255" json:"equipe" yaml:"equipe"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"-"`
}

// Modelos lista as tabelas para o AutoMigrate
func Modelos() []any {
	return []any{&Operadora{}, &Administradora{}, &Supervisor{}}
}
