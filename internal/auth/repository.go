package auth

import (
	"errors"

	"gorm.io/gorm"

	"quizmaster/internal/apperr"
	"quizmaster/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) UserByUsername(username string) (*models.User, error) {
	var user models.User
	result := r.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user %q", username)
		}
		return nil, apperr.Storage(result.Error)
	}
	return &user, nil
}

func (r *Repository) UserByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user %d", id)
		}
		return nil, apperr.Storage(result.Error)
	}
	return &user, nil
}

func (r *Repository) CreateUser(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}
