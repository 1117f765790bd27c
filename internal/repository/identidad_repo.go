package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrCredencialesInvalidas = errors.New("credenciales invalidas")
	ErrTokenInvalido         = errors.New("token invalido o expirado")
)

var bcryptCost = 12

// TokenClaims are the claims embedded in every locally issued access token.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IdentidadRepository is the local credential store: identities live in the
// auth_identities table and callers present HS256 tokens signed with secret.
type IdentidadRepository struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
}

func NewIdentidadRepository(db *gorm.DB, secret string, ttl time.Duration) *IdentidadRepository {
	return &IdentidadRepository{db: db, secret: []byte(secret), ttl: ttl}
}

// ResolveToken verifies the token and loads the identity named by its subject.
func (r *IdentidadRepository) ResolveToken(ctx context.Context, token string) (*model.Identidad, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return r.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrTokenInvalido
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrTokenInvalido
	}
	return r.FindByID(ctx, id)
}

// IssueToken signs an access token for the identity.
func (r *IdentidadRepository) IssueToken(id uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(r.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
}

// TTL is the lifetime of issued tokens.
func (r *IdentidadRepository) TTL() time.Duration { return r.ttl }

// Authenticate checks an email/password pair.
func (r *IdentidadRepository) Authenticate(ctx context.Context, email, password string) (*model.Identidad, error) {
	var ident model.Identidad
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&ident).Error
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(password)); err != nil {
		return nil, ErrCredencialesInvalidas
	}
	return &ident, nil
}

// Create stores a confirmed identity with a bcrypt password hash.
func (r *IdentidadRepository) Create(ctx context.Context, nueva model.NuevaIdentidad) (*model.Identidad, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(nueva.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("identidad: hash password: %w", err)
	}
	ident := &model.Identidad{
		ID:              uuid.New(),
		Email:           strings.TrimSpace(nueva.Email),
		PasswordHash:    string(hash),
		EmailConfirmado: true,
		Metadata:        map[string]interface{}{"name": nueva.Nombre},
	}
	if err := r.db.WithContext(ctx).Create(ident).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailDuplicado
		}
		return nil, err
	}
	return ident, nil
}

func (r *IdentidadRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Identidad, error) {
	var ident model.Identidad
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ident).Error; err != nil {
		return nil, err
	}
	return &ident, nil
}

func (r *IdentidadRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	err := affected(r.db.WithContext(ctx).Model(&model.Identidad{}).
		Where("id = ?", id).
		Update("email", strings.TrimSpace(email)))
	if isUniqueViolation(err) {
		return ErrEmailDuplicado
	}
	return err
}

func (r *IdentidadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Identidad{}))
}
