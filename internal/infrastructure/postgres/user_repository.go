package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, hashed_password, role, email_verified,
	verification_token, verification_token_expires, created_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.EmailVerified,
		&u.VerificationToken, &u.VerificationTokenExpires, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.EmailVerified,
		user.VerificationToken, user.VerificationTokenExpires, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, what, where string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by %s: %w", what, err)
	}
	return u, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "id", "id = $1", id)
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "email", "lower(email) = lower($1)", email)
}

// GetByVerificationToken obtiene el usuario dueño de un token de verificación.
func (r *UserRepo) GetByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	return r.getOne(ctx, "verification token", "verification_token = $1", token)
}

// SetVerificationToken guarda un nuevo token de verificación y su vencimiento.
func (r *UserRepo) SetVerificationToken(ctx context.Context, id, token string, expires time.Time) error {
	return r.execOne(ctx, "set verification token",
		`UPDATE users SET verification_token = $2, verification_token_expires = $3 WHERE id = $1`,
		id, token, expires)
}

// MarkEmailVerified marca el email como verificado y limpia el token.
func (r *UserRepo) MarkEmailVerified(ctx context.Context, id string) error {
	return r.execOne(ctx, "mark email verified",
		`UPDATE users SET email_verified = true, verification_token = NULL,
			verification_token_expires = NULL WHERE id = $1`, id)
}

// SetRole cambia el rol del usuario.
func (r *UserRepo) SetRole(ctx context.Context, id, role string) error {
	return r.execOne(ctx, "set role", `UPDATE users SET role = $2 WHERE id = $1`, id, role)
}

func (r *UserRepo) execOne(ctx context.Context, op, query string, args ...any) error {
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
