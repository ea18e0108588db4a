package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Gel788/metch-dating-app/internal/auth/models"
	"github.com/Gel788/metch-dating-app/internal/common/database"
	apperrors "github.com/Gel788/metch-dating-app/internal/common/errors"
)

// CreateUser inserts a new account
func CreateUser(user *models.User) error {
	result := database.DB.Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("user with this email already exists")
		}
		return apperrors.Internal("failed to create user", result.Error.Error())
	}
	return nil
}

// GetUserByEmail fetches an account by email, nil when absent
func GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := database.DB.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("failed to fetch user", result.Error.Error())
	}
	return &user, nil
}

// GetUserByID fetches an account by id, nil when absent
func GetUserByID(id string) (*models.User, error) {
	var user models.User
	result := database.DB.Where("id = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("failed to fetch user", result.Error.Error())
	}
	return &user, nil
}
