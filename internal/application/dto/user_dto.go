package dto

import "time"

// RegisterRequest entrada para registro (auth).
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// RegisterResponse usuario creado y token de verificación de email.
// El token se entrega al servicio de correo; aquí se expone para entornos sin SMTP.
type RegisterResponse struct {
	User              UserResponse `json:"user"`
	VerificationToken string       `json:"verification_token,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// VerifyEmailRequest entrada para verificar el email.
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required,min=16,max=100"`
}

// UserDeletionResponse resultado del borrado en cascada.
type UserDeletionResponse struct {
	UserID           string `json:"user_id"`
	Email            string `json:"email"`
	CompaniesDeleted int    `json:"companies_deleted"`
}
