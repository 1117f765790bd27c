package infra

import (
	"fmt"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate for
// every table the orchestrator touches, then applies the idempotent SQL patches
// GORM cannot express (case-insensitive email index, reference role rows).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates / updates the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Rol{},
		&model.Identidad{},
		&model.Usuario{},
		&model.RolUsuario{},
		&model.Veterinario{},
		&model.Cliente{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches runs idempotent DDL/DML statements. Each uses IF NOT EXISTS
// / ON CONFLICT DO NOTHING semantics so re-running on a patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Login matches emails case-insensitively; keep them unique the same way.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_auth_identities_email_lower
		    ON auth_identities (LOWER(email))`,
		// Role names recognised by the workflows. Other roles may be added by hand.
		`INSERT INTO roles (id, name) VALUES
		    (1, 'admin'),
		    (2, 'veterinario'),
		    (3, 'cliente')
		 ON CONFLICT DO NOTHING`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
