package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/Gel788/metch-dating-app/internal/auth"
	authmodels "github.com/Gel788/metch-dating-app/internal/auth/models"
	"github.com/Gel788/metch-dating-app/internal/auth/repository"
	"github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/common/validation"
	profilemodels "github.com/Gel788/metch-dating-app/internal/profile/models"
	profilerepo "github.com/Gel788/metch-dating-app/internal/profile/repository"
)

// Service carries the stateful auth dependencies. Repositories stay
// package-level functions like the other domains.
type Service struct {
	jwt       *auth.JWTService
	passwords *auth.PasswordManager
}

// NewService creates the auth service
func NewService(jwt *auth.JWTService) *Service {
	return &Service{
		jwt:       jwt,
		passwords: auth.NewPasswordManager(),
	}
}

// Signup creates an account with its initial profile and issues a token
func (s *Service) Signup(req authmodels.SignupRequest) (*authmodels.AuthResponse, error) {
	if verrs := validation.Validate(req); len(verrs) > 0 {
		return nil, errors.Validation("invalid signup data", verrs[0].Field+": "+verrs[0].Message)
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, errors.Validation("invalid birth date", "expected YYYY-MM-DD")
	}

	existing, err := repository.GetUserByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("user with this email already exists")
	}

	hashed, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Internal("failed to hash password", err.Error())
	}

	user := &authmodels.User{
		ID:       uuid.New().String(),
		Email:    req.Email,
		Password: hashed,
	}
	if err := repository.CreateUser(user); err != nil {
		return nil, err
	}

	profile := &profilemodels.Profile{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		Name:       req.Name,
		Gender:     req.Gender,
		BirthDate:  birthDate,
		LookingFor: req.LookingFor,
	}
	if err := profilerepo.CreateProfile(profile); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Signin exchanges credentials for a token
func (s *Service) Signin(req authmodels.SigninRequest) (*authmodels.AuthResponse, error) {
	user, err := repository.GetUserByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.Unauthorized("invalid email or password")
	}

	ok, err := s.passwords.VerifyPassword(req.Password, user.Password)
	if err != nil || !ok {
		return nil, errors.Unauthorized("invalid email or password")
	}

	return s.issueToken(user)
}

func (s *Service) issueToken(user *authmodels.User) (*authmodels.AuthResponse, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, errors.Internal("failed to issue token", err.Error())
	}
	return &authmodels.AuthResponse{
		Token: token,
		User:  authmodels.UserInfo{ID: user.ID, Email: user.Email},
	}, nil
}
