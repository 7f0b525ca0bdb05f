package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo super_admin por middleware).
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase crea el caso de uso.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// Create registra un usuario con la contraseña hasheada con bcrypt.
func (uc *UserUseCase) Create(req dto.CreateUserRequest, actor string) (*entity.User, error) {
	if err := validateUserCreate(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(hash),
		Role:         req.Role,
		Phone:        req.Phone,
		IsActive:     true,
		CreatedBy:    actor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID devuelve un usuario por su ID.
func (uc *UserUseCase) GetByID(id string) (*entity.User, error) {
	return uc.users.GetByID(id)
}

// Update aplica los campos presentes. El username no es editable.
func (uc *UserUseCase) Update(id string, req dto.UpdateUserRequest) (*entity.User, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, &domain.ValidationError{Field: "email", Message: "email no válido"}
		}
		user.Email = email
	}
	if req.FullName != nil {
		if strings.TrimSpace(*req.FullName) == "" {
			return nil, &domain.ValidationError{Field: "full_name", Message: "no puede estar vacío"}
		}
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, &domain.ValidationError{Field: "password", Message: "mínimo 8 caracteres"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.Role != nil {
		if !entity.ValidRole(*req.Role) {
			return nil, &domain.ValidationError{Field: "role", Message: "rol no válido"}
		}
		user.Role = *req.Role
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	user.UpdatedAt = time.Now()

	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate es borrado lógico: desactiva la cuenta. El historial de ventas
// del usuario se conserva.
func (uc *UserUseCase) Deactivate(id string) error {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return err
	}
	user.IsActive = false
	user.UpdatedAt = time.Now()
	return uc.users.Update(user)
}

// List devuelve usuarios filtrados y paginados.
func (uc *UserUseCase) List(req dto.UserFilterRequest) ([]*entity.User, int, error) {
	req.Normalize()

	filter := repository.UserFilter{
		Role:   req.Role,
		Search: req.Search,
		Limit:  req.PageSize,
		Offset: req.Offset(),
	}
	switch req.Active {
	case "true":
		t := true
		filter.Active = &t
	case "false":
		f := false
		filter.Active = &f
	}

	return uc.users.List(filter)
}

// CountByRole devuelve el número de usuarios por rol.
func (uc *UserUseCase) CountByRole() (map[string]int, error) {
	return uc.users.CountByRole()
}

func validateUserCreate(req dto.CreateUserRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return &domain.ValidationError{Field: "username", Message: "requerido"}
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return &domain.ValidationError{Field: "email", Message: "email no válido"}
	}
	if strings.TrimSpace(req.FullName) == "" {
		return &domain.ValidationError{Field: "full_name", Message: "requerido"}
	}
	if len(req.Password) < 8 {
		return &domain.ValidationError{Field: "password", Message: "mínimo 8 caracteres"}
	}
	if !entity.ValidRole(req.Role) {
		return &domain.ValidationError{Field: "role", Message: "rol no válido"}
	}
	return nil
}
