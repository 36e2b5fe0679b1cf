// internal/operadora/repository.go
package operadora

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// Diretorio resolve operadoras e administradoras pelo ID
	Diretorio interface {
		BuscarOperadora(ctx context.Context, id string) (*Operadora, error)
		BuscarAdministradora(ctx context.Context, id string) (*Administradora, error)
	}

	// DiretorioSupervisores resolve supervisores pelo ID
	DiretorioSupervisores interface {
		BuscarSupervisor(ctx context.Context, id string) (*Supervisor, error)
	}

	// Repository encapsula as consultas de diretório no banco
	Repository struct {
		DB *gorm.DB
	}
)

var ErrNaoEncontrado = errors.New("registro não encontrado no diretório")

var (
	_ Diretorio             = (*Repository)(nil)
	_ DiretorioSupervisores = (*Repository)(nil)
)

// NewRepository cria um novo repositório
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ListOperadoras retorna as operadoras, opcionalmente só as ativas
func (r *Repository) ListOperadoras(ctx context.Context, somenteAtivas bool) ([]Operadora, error) {
	var list []Operadora
	q := r.DB.WithContext(ctx).Order("nome")
	if somenteAtivas {
		q = q.Where("ativa = ?", true)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *Repository) ListAdministradoras(ctx context.Context) ([]Administradora, error) {
	var list []Administradora
	err := r.DB.WithContext(ctx).Order("nome").Find(&list).Error
	return list, err
}

func (r *Repository) ListSupervisores(ctx context.Context) ([]Supervisor, error) {
	var list []Supervisor
	err := r.DB.WithContext(ctx).Order("nome").Find(&list).Error
	return list, err
}

func (r *Repository) BuscarOperadora(ctx context.Context, id string) (*Operadora, error) {
	var o Operadora
	if err := r.buscar(ctx, id, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) BuscarAdministradora(ctx context.Context, id string) (*Administradora, error) {
	var a Administradora
	if err := r.buscar(ctx, id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) BuscarSupervisor(ctx context.Context, id string) (*Supervisor, error) {
	var s Supervisor
	if err := r.buscar(ctx, id, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) buscar(ctx context.Context, id string, dest any) error {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: id %q", ErrNaoEncontrado, id)
	}
	err = r.DB.WithContext(ctx).First(dest, uint(n)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: id %q", ErrNaoEncontrado, id)
	}
	return err
}

// Carga insere ou atualiza o diretório inteiro numa transação
func (r *Repository) Carga(ctx context.Context, c Carga) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{UpdateAll: true})
		if len(c.Operadoras) > 0 {
			if err := upsert.Create(&c.Operadoras).Error; err != nil {
				return err
			}
		}
		if len(c.Administradoras) > 0 {
			if err := upsert.Create(&c.Administradoras).Error; err != nil {
				return err
			}
		}
		if len(c.Supervisores) > 0 {
			if err := upsert.Create(&c.Supervisores).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Carga é o conteúdo do arquivo de seed do diretório
type Carga struct {
	Operadoras      []Operadora      `yaml:"operadoras"`
	Administradoras []Administradora `yaml:"administradoras"`
	Supervisores    []Supervisor     `yaml:"supervisores"`
}
