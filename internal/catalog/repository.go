package catalog

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

func translate(err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundf("%s", notFound)
	}
	return apperr.Storage(err)
}

func (r *Repository) CreateSubject(subject *models.Subject) error {
	if err := r.db.Create(subject).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *Repository) Subjects() ([]models.Subject, error) {
	var subjects []models.Subject
	if err := r.db.Order("name asc").Find(&subjects).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return subjects, nil
}

func (r *Repository) SubjectByID(id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := r.db.First(&subject, id).Error; err != nil {
		return nil, translate(err, "subject")
	}
	return &subject, nil
}

// DeleteSubjectCascade removes the subject and every descendant row,
// child-first, inside one transaction: scores and questions of the
// subject's quizzes, then the quizzes, chapters, and the subject itself.
func (r *Repository) DeleteSubjectCascade(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var chapterIDs []uint
		if err := tx.Model(&models.Chapter{}).Where("subject_id = ?", id).Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}

		if len(chapterIDs) > 0 {
			var quizIDs []uint
			if err := tx.Model(&models.Quiz{}).Where("chapter_id IN ?", chapterIDs).Pluck("id", &quizIDs).Error; err != nil {
				return err
			}
			if err := deleteQuizChildren(tx, quizIDs); err != nil {
				return err
			}
			if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&models.Quiz{}).Error; err != nil {
				return err
			}
			if err := tx.Where("subject_id = ?", id).Delete(&models.Chapter{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Subject{}, id).Error
	})
	return apperr.Storage(err)
}

func (r *Repository) CreateChapter(chapter *models.Chapter) error {
	if err := r.db.Create(chapter).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *Repository) ChaptersBySubject(subjectID uint) ([]models.Chapter, error) {
	var chapters []models.Chapter
	if err := r.db.Where("subject_id = ?", subjectID).Order("name asc").Find(&chapters).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return chapters, nil
}

func (r *Repository) ChapterByID(id uint) (*models.Chapter, error) {
	var chapter models.Chapter
	if err := r.db.First(&chapter, id).Error; err != nil {
		return nil, translate(err, "chapter")
	}
	return &chapter, nil
}

func (r *Repository) DeleteChapterCascade(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var quizIDs []uint
		if err := tx.Model(&models.Quiz{}).Where("chapter_id = ?", id).Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if err := deleteQuizChildren(tx, quizIDs); err != nil {
			return err
		}
		if err := tx.Where("chapter_id = ?", id).Delete(&models.Quiz{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Chapter{}, id).Error
	})
	return apperr.Storage(err)
}

func deleteQuizChildren(tx *gorm.DB, quizIDs []uint) error {
	if len(quizIDs) == 0 {
		return nil
	}
	if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&models.Score{}).Error; err != nil {
		return err
	}
	return tx.Where("quiz_id IN ?", quizIDs).Delete(&models.Question{}).Error
}

// CreateQuizWithQuestions persists the quiz and its question batch
// atomically; a failure on any row rolls the whole batch back.
func (r *Repository) CreateQuizWithQuestions(quiz *models.Quiz, questions []models.Question) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperr.Storage(err)
	}
	quiz.Questions = questions
	return nil
}

func (r *Repository) QuizzesByChapter(chapterID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := r.db.Where("chapter_id = ?", chapterID).Order("date_of_quiz asc").Find(&quizzes).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return quizzes, nil
}

func (r *Repository) QuizByID(id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.First(&quiz, id).Error; err != nil {
		return nil, translate(err, "quiz")
	}
	return &quiz, nil
}

func (r *Repository) DeleteQuizCascade(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteQuizChildren(tx, []uint{id}); err != nil {
			return err
		}
		return tx.Delete(&models.Quiz{}, id).Error
	})
	return apperr.Storage(err)
}

func (r *Repository) NonAdminUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("is_admin = ?", false).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return users, nil
}

func (r *Repository) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (r *Repository) DeleteUserCascade(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Score{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	return apperr.Storage(err)
}

func (r *Repository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("lower(username) LIKE lower(?) AND is_admin = ?", "%"+query+"%", false).
		Find(&users).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return users, nil
}

func (r *Repository) SearchSubjects(query string) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := r.db.Where("lower(name) LIKE lower(?)", "%"+query+"%").Find(&subjects).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return subjects, nil
}

func (r *Repository) SearchQuizzes(query string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := r.db.Where("lower(title) LIKE lower(?)", "%"+query+"%").Find(&quizzes).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return quizzes, nil
}
