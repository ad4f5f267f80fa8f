// Package auth contiene el caso de uso de autenticación (login con JWT).
package auth

import (
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Radiologia-api/internal/application/dto"
	"github.com/jhoicas/Radiologia-api/internal/domain"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
	"github.com/jhoicas/Radiologia-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación: login contra el hash persistido.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, strconv.Itoa(user.ID), user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:             token,
		UserID:            user.ID,
		Name:              user.Name,
		Role:              user.Role,
		AllowedModalities: user.AllowedModalities,
	}, nil
}
