package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Radiologia-api/internal/application/dto"
	"github.com/jhoicas/Radiologia-api/internal/domain"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
)

// UserUseCase administra las cuentas del portal. Solo admin llega aquí
// (el middleware corta antes), pero las reglas se validan igual.
type UserUseCase struct {
	users repository.UserRepository
	audit *AuditService
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(users repository.UserRepository, audit *AuditService) *UserUseCase {
	return &UserUseCase{users: users, audit: audit}
}

// List devuelve los usuarios sin el hash de contraseña.
func (uc *UserUseCase) List(ctx context.Context) ([]entity.User, error) {
	users, err := uc.users.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// Create da de alta un usuario; ErrEmailAlreadyExists si el email ya está en uso.
func (uc *UserUseCase) Create(ctx context.Context, actorEmail string, in dto.CreateUserRequest) (int, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.users.FindByEmail(email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	u := &entity.User{
		Name:              in.Name,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              in.Role,
		AllowedModalities: in.AllowedModalities,
	}
	id, err := uc.users.Create(u)
	if err != nil {
		return 0, err
	}
	uc.audit.Record(actorEmail, entity.AuditCreate, "user", id, nil, publicUser(*u))
	return id, nil
}

// Update aplica cambios parciales; la contraseña se re-hashea si viene.
func (uc *UserUseCase) Update(ctx context.Context, actorEmail string, id int, in dto.UpdateUserRequest) error {
	var hash string
	if in.Password != nil {
		h, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hash = string(h)
	}
	ok, err := uc.users.Update(id, func(u *entity.User) {
		if in.Name != nil {
			u.Name = *in.Name
		}
		if in.Role != nil {
			u.Role = *in.Role
		}
		if in.AllowedModalities != nil {
			u.AllowedModalities = *in.AllowedModalities
		}
		if hash != "" {
			u.PasswordHash = hash
		}
	})
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	uc.audit.Record(actorEmail, entity.AuditUpdate, "user", id, nil, nil)
	return nil
}

// Delete elimina una cuenta. Un admin no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actorEmail string, id int) error {
	target, err := uc.users.GetByID(id)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrUserNotFound
	}
	if strings.EqualFold(target.Email, actorEmail) {
		return domain.ErrConflict
	}
	ok, err := uc.users.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	uc.audit.Record(actorEmail, entity.AuditDelete, "user", id, publicUser(*target), nil)
	return nil
}

// publicUser copia sin hash para auditoría.
func publicUser(u entity.User) entity.User {
	u.PasswordHash = ""
	return u
}
