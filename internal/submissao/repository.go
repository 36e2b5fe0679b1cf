package submissao

import (
	"context"

	"gorm.io/gorm"
)

// Filtro restringe a listagem; campos vazios não filtram
type Filtro struct {
	Status string
	Trilha string
	Limite int
}

type Repository interface {
	Criar(db *gorm.DB, s *Submissao) error
	Listar(db *gorm.DB, f Filtro) ([]Submissao, error)
	ListarPorSessao(db *gorm.DB, sessaoID string) ([]Submissao, error)
	BuscarPorID(db *gorm.DB, id uint) (*Submissao, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, s *Submissao) error {
	return db.Create(s).Error
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtro) ([]Submissao, error) {
	var list []Submissao
	q := db.Order("id desc")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Trilha != "" {
		q = q.Where("trilha = ?", f.Trilha)
	}
	if f.Limite > 0 {
		q = q.Limit(f.Limite)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorSessao(db *gorm.DB, sessaoID string) ([]Submissao, error) {
	var list []Submissao
	err := db.Where("sessao_id = ?", sessaoID).Order("id").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Submissao, error) {
	var s Submissao
	err := db.First(&s, id).Error
	return &s, err
}

// Registro grava as submissões feitas pelo envio do formulário
type Registro struct {
	DB         *gorm.DB
	Repository Repository
}

func NewRegistro(db *gorm.DB) *Registro {
	return &Registro{DB: db, Repository: NewRepository()}
}

func (r *Registro) Registrar(ctx context.Context, s *Submissao) error {
	return r.Repository.Criar(r.DB.WithContext(ctx), s)
}
