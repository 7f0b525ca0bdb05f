// Package auth implementa el login y la emisión de tokens.
package auth

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/rbac"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/pkg/jwt"
)

// UseCase autentica usuarios contra el repositorio y emite JWT.
type UseCase struct {
	users  repository.UserRepository
	tokens *jwt.Manager
}

// NewUseCase crea el caso de uso.
func NewUseCase(users repository.UserRepository, tokens *jwt.Manager) *UseCase {
	return &UseCase{users: users, tokens: tokens}
}

// Login valida credenciales (username o email) y devuelve un token firmado.
// Las credenciales inválidas y el usuario inexistente devuelven el mismo
// error para no filtrar qué cuentas existen.
func (uc *UseCase) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Login == "" || req.Password == "" {
		return nil, &domain.ValidationError{Field: "login", Message: "login y password son requeridos"}
	}

	user, err := uc.users.FindByLogin(req.Login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	token, err := uc.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	// El last_login es informativo; un fallo al registrarlo no bloquea el login.
	if err := uc.users.TouchLastLogin(user.ID, time.Now()); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo registrar last_login")
	}

	perms := rbac.Permissions(user.Role)
	permStrings := make([]string, 0, len(perms))
	for _, p := range perms {
		permStrings = append(permStrings, string(p))
	}

	return &dto.LoginResponse{
		Token:       token,
		ExpiresIn:   int(uc.tokens.Expiration().Seconds()),
		User:        dto.ToUserResponse(user),
		Permissions: permStrings,
	}, nil
}
