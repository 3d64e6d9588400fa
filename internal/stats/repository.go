package stats

import (
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

func (r *Repository) ScoresByUser(userID uint) ([]models.Score, error) {
	var scores []models.Score
	if err := r.db.Where("user_id = ?", userID).Find(&scores).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return scores, nil
}

func (r *Repository) RecentScoresByUser(userID uint, limit int) ([]models.Score, error) {
	var scores []models.Score
	err := r.db.Preload("Quiz").
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&scores).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return scores, nil
}

func (r *Repository) Subjects() ([]models.Subject, error) {
	var subjects []models.Subject
	if err := r.db.Order("name asc").Find(&subjects).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return subjects, nil
}

func (r *Repository) count(model interface{}, query string, args ...interface{}) (int64, error) {
	var n int64
	tx := r.db.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Count(&n).Error; err != nil {
		return 0, apperr.Storage(err)
	}
	return n, nil
}

func (r *Repository) CountQuizzes() (int64, error) {
	return r.count(&models.Quiz{}, "")
}

func (r *Repository) CountNonAdminUsers() (int64, error) {
	return r.count(&models.User{}, "is_admin = ?", false)
}

func (r *Repository) CountSubjects() (int64, error) {
	return r.count(&models.Subject{}, "")
}

func (r *Repository) CountChapters() (int64, error) {
	return r.count(&models.Chapter{}, "")
}

func (r *Repository) CountQuestions() (int64, error) {
	return r.count(&models.Question{}, "")
}

func (r *Repository) CountScores() (int64, error) {
	return r.count(&models.Score{}, "")
}

func (r *Repository) RecentUsers(limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("is_admin = ?", false).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return users, nil
}

func (r *Repository) RecentScores(limit int) ([]models.Score, error) {
	var scores []models.Score
	err := r.db.Preload("Quiz").Preload("User").
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&scores).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return scores, nil
}
