package repository

import (
	"context"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RolRepository reads the roles reference table.
type RolRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Rol, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Rol, error)
}

type rolRepo struct{ db *gorm.DB }

func NewRolRepository(db *gorm.DB) RolRepository { return &rolRepo{db: db} }

func (r *rolRepo) FindByID(ctx context.Context, id int64) (*model.Rol, error) {
	var rol model.Rol
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rol).Error; err != nil {
		return nil, err
	}
	return &rol, nil
}

func (r *rolRepo) FindByNombre(ctx context.Context, nombre string) (*model.Rol, error) {
	var rol model.Rol
	if err := r.db.WithContext(ctx).Where("name = ?", nombre).First(&rol).Error; err != nil {
		return nil, err
	}
	return &rol, nil
}

// RolUsuarioRepository manages the user_roles assignment rows.
type RolUsuarioRepository interface {
	FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.RolUsuario, error)
	Create(ctx context.Context, ru *model.RolUsuario) error
	UpdateRol(ctx context.Context, usuarioID uuid.UUID, rolID int64) error
	Delete(ctx context.Context, usuarioID uuid.UUID) error
}

type rolUsuarioRepo struct{ db *gorm.DB }

func NewRolUsuarioRepository(db *gorm.DB) RolUsuarioRepository { return &rolUsuarioRepo{db: db} }

func (r *rolUsuarioRepo) FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.RolUsuario, error) {
	var ru model.RolUsuario
	if err := r.db.WithContext(ctx).Where("user_id = ?", usuarioID).First(&ru).Error; err != nil {
		return nil, err
	}
	return &ru, nil
}

func (r *rolUsuarioRepo) Create(ctx context.Context, ru *model.RolUsuario) error {
	return r.db.WithContext(ctx).Create(ru).Error
}

func (r *rolUsuarioRepo) UpdateRol(ctx context.Context, usuarioID uuid.UUID, rolID int64) error {
	return affected(r.db.WithContext(ctx).Model(&model.RolUsuario{}).
		Where("user_id = ?", usuarioID).
		Update("role_id", rolID))
}

func (r *rolUsuarioRepo) Delete(ctx context.Context, usuarioID uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("user_id = ?", usuarioID).Delete(&model.RolUsuario{}))
}
