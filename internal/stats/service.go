package stats

import (
	"quizmaster/internal/models"
)

// recentLimit caps every recency list on the dashboards.
const recentLimit = 5

type Store interface {
	ScoresByUser(userID uint) ([]models.Score, error)
	RecentScoresByUser(userID uint, limit int) ([]models.Score, error)
	Subjects() ([]models.Subject, error)
	CountQuizzes() (int64, error)

	CountNonAdminUsers() (int64, error)
	CountSubjects() (int64, error)
	CountChapters() (int64, error)
	CountQuestions() (int64, error)
	CountScores() (int64, error)
	RecentUsers(limit int) ([]models.User, error)
	RecentScores(limit int) ([]models.Score, error)
}

// Service computes dashboard aggregates. Every call reads current store
// state; nothing here is cached.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// averagePercentage is the mean of each row's percentage, rounded to two
// decimals. An empty set averages to 0, never an error, and the result does
// not depend on row order.
func averagePercentage(scores []models.Score) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s.Percentage()
	}
	return models.Round2(sum / float64(len(scores)))
}

func (s *Service) UserDashboard(userID uint) (*models.UserDashboard, error) {
	scores, err := s.store.ScoresByUser(userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.store.RecentScoresByUser(userID, recentLimit)
	if err != nil {
		return nil, err
	}
	recentViews := make([]models.AttemptView, len(recent))
	for i, sc := range recent {
		recentViews[i] = models.NewAttemptView(sc)
	}

	subjects, err := s.store.Subjects()
	if err != nil {
		return nil, err
	}
	totalQuizzes, err := s.store.CountQuizzes()
	if err != nil {
		return nil, err
	}

	return &models.UserDashboard{
		Stats: models.UserStats{
			TotalAttempts:     len(scores),
			AverageScore:      averagePercentage(scores),
			AvailableSubjects: len(subjects),
			TotalQuizzes:      int(totalQuizzes),
		},
		RecentAttempts: recentViews,
		Subjects:       subjects,
	}, nil
}

func (s *Service) AdminDashboard() (*models.AdminDashboard, error) {
	var (
		dash models.AdminDashboard
		err  error
	)

	if dash.Stats.TotalUsers, err = s.store.CountNonAdminUsers(); err != nil {
		return nil, err
	}
	if dash.Stats.TotalSubjects, err = s.store.CountSubjects(); err != nil {
		return nil, err
	}
	if dash.Stats.TotalChapters, err = s.store.CountChapters(); err != nil {
		return nil, err
	}
	if dash.Stats.TotalQuizzes, err = s.store.CountQuizzes(); err != nil {
		return nil, err
	}
	if dash.Stats.TotalQuestions, err = s.store.CountQuestions(); err != nil {
		return nil, err
	}
	if dash.Stats.TotalAttempts, err = s.store.CountScores(); err != nil {
		return nil, err
	}

	if dash.RecentUsers, err = s.store.RecentUsers(recentLimit); err != nil {
		return nil, err
	}

	recent, err := s.store.RecentScores(recentLimit)
	if err != nil {
		return nil, err
	}
	dash.RecentAttempts = make([]models.AttemptView, len(recent))
	for i, sc := range recent {
		dash.RecentAttempts[i] = models.NewAttemptView(sc)
	}

	return &dash, nil
}
