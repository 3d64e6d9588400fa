package catalog

import (
	"errors"
	"time"

	"quizmaster/internal/apperr"
	"quizmaster/internal/models"
)

// Store is the persistence surface the catalog service needs. Deletes are
// cascading: the implementation removes descendants child-first inside a
// single transaction.
type Store interface {
	CreateSubject(subject *models.Subject) error
	Subjects() ([]models.Subject, error)
	SubjectByID(id uint) (*models.Subject, error)
	DeleteSubjectCascade(id uint) error

	CreateChapter(chapter *models.Chapter) error
	ChaptersBySubject(subjectID uint) ([]models.Chapter, error)
	ChapterByID(id uint) (*models.Chapter, error)
	DeleteChapterCascade(id uint) error

	CreateQuizWithQuestions(quiz *models.Quiz, questions []models.Question) error
	QuizzesByChapter(chapterID uint) ([]models.Quiz, error)
	QuizByID(id uint) (*models.Quiz, error)
	DeleteQuizCascade(id uint) error

	NonAdminUsers() ([]models.User, error)
	UserByID(id uint) (*models.User, error)
	DeleteUserCascade(id uint) error

	SearchUsers(query string) ([]models.User, error)
	SearchSubjects(query string) ([]models.Subject, error)
	SearchQuizzes(query string) ([]models.Quiz, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) CreateSubject(name, description string) (*models.Subject, error) {
	subject := &models.Subject{Name: name, Description: description}
	if err := s.store.CreateSubject(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *Service) Subjects() ([]models.Subject, error) {
	return s.store.Subjects()
}

func (s *Service) DeleteSubject(id uint) error {
	if _, err := s.store.SubjectByID(id); err != nil {
		return err
	}
	return s.store.DeleteSubjectCascade(id)
}

// CreateChapter requires the parent subject to exist; a dangling reference
// is a creation-time validation failure, never a later integrity violation.
func (s *Service) CreateChapter(name, description string, subjectID uint) (*models.Chapter, error) {
	if _, err := s.store.SubjectByID(subjectID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Validationf("subject %d does not exist", subjectID)
		}
		return nil, err
	}

	chapter := &models.Chapter{Name: name, Description: description, SubjectID: subjectID}
	if err := s.store.CreateChapter(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *Service) ChaptersBySubject(subjectID uint) (*models.Subject, []models.Chapter, error) {
	subject, err := s.store.SubjectByID(subjectID)
	if err != nil {
		return nil, nil, err
	}
	chapters, err := s.store.ChaptersBySubject(subjectID)
	if err != nil {
		return nil, nil, err
	}
	return subject, chapters, nil
}

func (s *Service) DeleteChapter(id uint) error {
	if _, err := s.store.ChapterByID(id); err != nil {
		return err
	}
	return s.store.DeleteChapterCascade(id)
}

type QuestionInput struct {
	Statement     string
	Option1       string
	Option2       string
	Option3       string
	Option4       string
	CorrectOption int
}

type CreateQuizInput struct {
	Title        string
	LiveFrom     time.Time
	LiveTo       time.Time
	TimeDuration string
	Remarks      string
	Questions    []QuestionInput
}

// CreateQuiz persists the quiz and its ordered question batch in one
// transaction; a mid-batch failure leaves no partial quiz behind.
func (s *Service) CreateQuiz(chapterID uint, in CreateQuizInput) (*models.Quiz, error) {
	if _, err := s.store.ChapterByID(chapterID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Validationf("chapter %d does not exist", chapterID)
		}
		return nil, err
	}

	questions := make([]models.Question, 0, len(in.Questions))
	for i, q := range in.Questions {
		if q.Statement == "" {
			return nil, apperr.Validationf("question %d has no statement", i+1)
		}
		if q.CorrectOption < 1 || q.CorrectOption > 4 {
			return nil, apperr.Validationf("question %d: correct_option must be between 1 and 4", i+1)
		}
		questions = append(questions, models.Question{
			Statement:     q.Statement,
			Option1:       q.Option1,
			Option2:       q.Option2,
			Option3:       q.Option3,
			Option4:       q.Option4,
			CorrectOption: q.CorrectOption,
		})
	}

	quiz := &models.Quiz{
		Title:        in.Title,
		ChapterID:    chapterID,
		DateOfQuiz:   in.LiveFrom,
		LiveFrom:     in.LiveFrom,
		LiveTo:       in.LiveTo,
		TimeDuration: in.TimeDuration,
		Remarks:      in.Remarks,
	}
	if err := s.store.CreateQuizWithQuestions(quiz, questions); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *Service) QuizzesByChapter(chapterID uint) (*models.Chapter, []models.Quiz, error) {
	chapter, err := s.store.ChapterByID(chapterID)
	if err != nil {
		return nil, nil, err
	}
	quizzes, err := s.store.QuizzesByChapter(chapterID)
	if err != nil {
		return nil, nil, err
	}
	return chapter, quizzes, nil
}

func (s *Service) DeleteQuiz(id uint) error {
	if _, err := s.store.QuizByID(id); err != nil {
		return err
	}
	return s.store.DeleteQuizCascade(id)
}

func (s *Service) Users() ([]models.User, error) {
	return s.store.NonAdminUsers()
}

func (s *Service) DeleteUser(id uint) error {
	if _, err := s.store.UserByID(id); err != nil {
		return err
	}
	return s.store.DeleteUserCascade(id)
}

func (s *Service) Search(query string) (*models.SearchResults, error) {
	results := &models.SearchResults{
		Users:    []models.User{},
		Subjects: []models.Subject{},
		Quizzes:  []models.Quiz{},
	}
	if query == "" {
		return results, nil
	}

	var err error
	if results.Users, err = s.store.SearchUsers(query); err != nil {
		return nil, err
	}
	if results.Subjects, err = s.store.SearchSubjects(query); err != nil {
		return nil, err
	}
	if results.Quizzes, err = s.store.SearchQuizzes(query); err != nil {
		return nil, err
	}
	return results, nil
}
