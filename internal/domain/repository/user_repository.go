package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Proveo-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*entity.User, error)
	SetVerificationToken(ctx context.Context, id, token string, expires time.Time) error
	MarkEmailVerified(ctx context.Context, id string) error
	SetRole(ctx context.Context, id, role string) error
}
