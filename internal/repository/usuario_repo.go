package repository

import (
	"context"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	Update(ctx context.Context, id uuid.UUID, patch model.UsuarioPatch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update writes only the columns present in patch.
func (r *usuarioRepo) Update(ctx context.Context, id uuid.UUID, patch model.UsuarioPatch) error {
	if patch.Vacio() {
		return nil
	}
	return affected(r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).Updates(patch.Columnas()))
}

func (r *usuarioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Usuario{}))
}
