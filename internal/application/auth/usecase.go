package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/application/ports"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
	"github.com/jhoicas/Proveo-api/pkg/jwt"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

// VerificationTTL vigencia del token de verificación de email.
const VerificationTTL = 24 * time.Hour

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y verificación de email.
type AuthUseCase struct {
	tx         ports.TxRunner
	jwtCfg     JWTConfig
	bcryptCost int
	log        *logger.Logger
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx ports.TxRunner, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{tx: tx, jwtCfg: jwtCfg, bcryptCost: bcrypt.DefaultCost, log: log.Component("auth"), now: time.Now}
}

// WithBcryptCost ajusta el costo de bcrypt (tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.bcryptCost = cost
	return uc
}

// RegisterUser crea un usuario con rol "user": hashea password con bcrypt, persiste y
// emite un token de verificación de email. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.newUser(in.Name, in.Email, in.Password, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	token := uuid.New().String()
	expires := uc.now().UTC().Add(VerificationTTL)
	user.VerificationToken = &token
	user.VerificationTokenExpires = &expires

	err = uc.tx.Run(ctx, repository.TxOptions{}, func(ctx context.Context, s repository.Store) error {
		existing, err := s.Users.GetByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		return s.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("usuario registrado")
	return &dto.RegisterResponse{User: *toUserResponse(user), VerificationToken: token}, nil
}

func (uc *AuthUseCase) newUser(name, email, password, role string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    uc.now().UTC(),
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y password incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var user *entity.User
	err := uc.tx.Run(ctx, repository.TxOptions{ReadOnly: true}, func(ctx context.Context, s repository.Store) error {
		var err error
		user, err = s.Users.GetByEmail(ctx, in.Email)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// VerifyEmail marca el email como verificado si el token existe y no venció.
func (uc *AuthUseCase) VerifyEmail(ctx context.Context, in dto.VerifyEmailRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var user *entity.User
	err := uc.tx.Run(ctx, repository.TxOptions{}, func(ctx context.Context, s repository.Store) error {
		var err error
		user, err = s.Users.GetByVerificationToken(ctx, in.Token)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.NewValidation("token", "token de verificación inválido")
		}
		if user.VerificationTokenExpires != nil && uc.now().After(*user.VerificationTokenExpires) {
			return domain.NewValidation("token", "token de verificación vencido")
		}
		if err := s.Users.MarkEmailVerified(ctx, user.ID); err != nil {
			return err
		}
		user.EmailVerified = true
		user.VerificationToken = nil
		user.VerificationTokenExpires = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// CreateAdmin crea un administrador con email verificado o, si el email ya existe,
// lo promueve a admin. Lo usa la herramienta de operación.
func (uc *AuthUseCase) CreateAdmin(ctx context.Context, name, email, password string) (*dto.UserResponse, error) {
	in := dto.RegisterRequest{Name: name, Email: email, Password: password}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	admin, err := uc.newUser(name, email, password, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	admin.EmailVerified = true

	var out *entity.User
	err = uc.tx.Run(ctx, repository.TxOptions{}, func(ctx context.Context, s repository.Store) error {
		existing, err := s.Users.GetByEmail(ctx, admin.Email)
		if err != nil {
			return err
		}
		if existing == nil {
			out = admin
			return s.Users.Create(ctx, admin)
		}
		if err := s.Users.SetRole(ctx, existing.ID, entity.RoleAdmin); err != nil {
			return err
		}
		existing.Role = entity.RoleAdmin
		out = existing
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, domain.NewConflict("el email fue registrado concurrentemente", 0)
		}
		return nil, err
	}
	uc.log.Info().Str("user_id", out.ID).Msg("administrador listo")
	return toUserResponse(out), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}
