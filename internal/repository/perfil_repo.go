package repository

import (
	"context"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VeterinarioRepository interface {
	Create(ctx context.Context, v *model.Veterinario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Veterinario, error)
	UpdateEspecialidad(ctx context.Context, id uuid.UUID, especialidad string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type veterinarioRepo struct{ db *gorm.DB }

func NewVeterinarioRepository(db *gorm.DB) VeterinarioRepository { return &veterinarioRepo{db: db} }

func (r *veterinarioRepo) Create(ctx context.Context, v *model.Veterinario) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *veterinarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Veterinario, error) {
	var v model.Veterinario
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *veterinarioRepo) UpdateEspecialidad(ctx context.Context, id uuid.UUID, especialidad string) error {
	return affected(r.db.WithContext(ctx).Model(&model.Veterinario{}).
		Where("id = ?", id).
		Update("specialty", especialidad))
}

func (r *veterinarioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Veterinario{}))
}

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Cliente{}))
}
