package entity

import "time"

// Roles válidos para User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User representa una cuenta del directorio. Cada usuario posee como máximo una Company.
type User struct {
	ID                       string
	Name                     string
	Email                    string
	PasswordHash             string // bcrypt hash, nunca plano en dominio después de persistir
	Role                     string // user, admin
	EmailVerified            bool
	VerificationToken        *string
	VerificationTokenExpires *time.Time
	CreatedAt                time.Time
}

// IsAdmin informa si el usuario tiene rol administrador.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Requester identidad de quien ejecuta una operación (extraída del JWT).
type Requester struct {
	UserID string
	Role   string
}

// IsAdmin informa si el solicitante es administrador.
func (r Requester) IsAdmin() bool { return r.Role == RoleAdmin }
