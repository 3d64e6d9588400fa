package attempt

import (
	"fmt"
	"log"
	"time"

	"quizmaster/internal/apperr"
	"quizmaster/internal/models"
)

type Store interface {
	QuizByID(id uint) (*models.Quiz, error)
	QuestionsByQuiz(quizID uint) ([]models.Question, error)
	CreateScore(score *models.Score) error
	ScoreByID(id uint) (*models.Score, error)
	ScoresByUser(userID uint) ([]models.Score, error)
}

// StartStore tracks when a user began an attempt. The Redis implementation
// lives in pkg/cache; tests use an in-memory fake.
type StartStore interface {
	StartAttempt(userID, quizID uint, startedAt time.Time) error
	AttemptStart(userID, quizID uint) (time.Time, bool, error)
	ClearAttempt(userID, quizID uint) error
}

type Service struct {
	store  Store
	starts StartStore
	now    func() time.Time
}

func NewService(store Store, starts StartStore) *Service {
	return &Service{
		store:  store,
		starts: starts,
		now:    time.Now,
	}
}

type StartResult struct {
	Quiz      *models.Quiz         `json:"quiz"`
	Questions []models.QuestionDTO `json:"questions"`
	Total     int                  `json:"total"`
}

// Start opens an attempt: it refuses quizzes with no questions, records the
// start timestamp, and hands back the question set with correct answers
// withheld.
func (s *Service) Start(userID, quizID uint) (*StartResult, error) {
	quiz, err := s.store.QuizByID(quizID)
	if err != nil {
		return nil, err
	}
	questions, err := s.store.QuestionsByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, apperr.Validationf("this quiz has no questions yet")
	}

	if err := s.starts.StartAttempt(userID, quizID, s.now()); err != nil {
		return nil, apperr.Storage(err)
	}

	dtos := make([]models.QuestionDTO, len(questions))
	for i, q := range questions {
		dtos[i] = q.ToDTO(false)
	}
	quiz.Questions = nil

	return &StartResult{
		Quiz:      quiz,
		Questions: dtos,
		Total:     len(dtos),
	}, nil
}

// Submit grades the answers and persists a new Score row. Every submission
// creates its own row; there is no upsert and no attempt limit.
func (s *Service) Submit(userID, quizID uint, answers map[uint]int) (*models.Score, error) {
	if _, err := s.store.QuizByID(quizID); err != nil {
		return nil, err
	}
	questions, err := s.store.QuestionsByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	score, err := Grade(quizID, questions, answers)
	if err != nil {
		return nil, err
	}
	score.UserID = userID

	// A missing start stamp (expired or never recorded) still grades; the
	// attempt just reports zero elapsed time.
	elapsed := time.Duration(0)
	startedAt, found, err := s.starts.AttemptStart(userID, quizID)
	if err != nil {
		log.Printf("Error reading attempt start for user %d quiz %d: %v", userID, quizID, err)
	} else if found {
		elapsed = s.now().Sub(startedAt)
	}
	score.TimeTaken = FormatElapsed(elapsed)

	if err := s.store.CreateScore(score); err != nil {
		return nil, err
	}

	if err := s.starts.ClearAttempt(userID, quizID); err != nil {
		// The TTL will reclaim the key; the submission already succeeded.
		log.Printf("Error clearing attempt start for user %d quiz %d: %v", userID, quizID, err)
	}

	return score, nil
}

// Result returns one score row, only to the user who earned it.
func (s *Service) Result(userID, scoreID uint) (*models.AttemptView, error) {
	score, err := s.store.ScoreByID(scoreID)
	if err != nil {
		return nil, err
	}
	if score.UserID != userID {
		return nil, fmt.Errorf("%w: this result belongs to another user", apperr.ErrForbidden)
	}
	view := models.NewAttemptView(*score)
	return &view, nil
}

// History returns all of the user's attempts, most recent first.
func (s *Service) History(userID uint) ([]models.AttemptView, error) {
	scores, err := s.store.ScoresByUser(userID)
	if err != nil {
		return nil, err
	}
	views := make([]models.AttemptView, len(scores))
	for i, sc := range scores {
		views[i] = models.NewAttemptView(sc)
	}
	return views, nil
}
