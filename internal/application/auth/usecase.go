package auth

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/domain/repository"
	"github.com/jhoicas/kitob-pos/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login de cajeros y administradores.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

var errBadCredentials = &domain.Error{Kind: domain.ErrUnauthorized, Message: "email o contraseña incorrectos"}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, errBadCredentials
	}
	if !user.IsActive {
		return nil, &domain.Error{Kind: domain.ErrForbidden, Message: "usuario inactivo"}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.BranchID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID,
		BranchID: u.BranchID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
