package attempt

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

func (r *Repository) QuizByID(id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("quiz %d", id)
		}
		return nil, apperr.Storage(err)
	}
	return &quiz, nil
}

func (r *Repository) QuestionsByQuiz(quizID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Where("quiz_id = ?", quizID).Order("id asc").Find(&questions).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return questions, nil
}

func (r *Repository) CreateScore(score *models.Score) error {
	if err := r.db.Create(score).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *Repository) ScoreByID(id uint) (*models.Score, error) {
	var score models.Score
	if err := r.db.Preload("Quiz").First(&score, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("score %d", id)
		}
		return nil, apperr.Storage(err)
	}
	return &score, nil
}

func (r *Repository) ScoresByUser(userID uint) ([]models.Score, error) {
	var scores []models.Score
	err := r.db.Preload("Quiz").
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&scores).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return scores, nil
}
