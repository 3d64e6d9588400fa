package attempt

import (
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"quizmaster/internal/apperr"
	"quizmaster/internal/models"
)

type fakeStore struct {
	quizzes   map[uint]models.Quiz
	questions map[uint][]models.Question
	scores    []models.Score
	nextScore uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		quizzes:   map[uint]models.Quiz{},
		questions: map[uint][]models.Question{},
	}
}

func (f *fakeStore) QuizByID(id uint) (*models.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, apperr.NotFoundf("quiz %d", id)
	}
	return &q, nil
}

func (f *fakeStore) QuestionsByQuiz(quizID uint) ([]models.Question, error) {
	return f.questions[quizID], nil
}

func (f *fakeStore) CreateScore(score *models.Score) error {
	f.nextScore++
	score.ID = f.nextScore
	if score.CreatedAt.IsZero() {
		score.CreatedAt = time.Now()
	}
	f.scores = append(f.scores, *score)
	return nil
}

func (f *fakeStore) ScoreByID(id uint) (*models.Score, error) {
	for _, s := range f.scores {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, apperr.NotFoundf("score %d", id)
}

func (f *fakeStore) ScoresByUser(userID uint) ([]models.Score, error) {
	var out []models.Score
	for _, s := range f.scores {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type fakeStarts struct {
	starts map[string]time.Time
}

func newFakeStarts() *fakeStarts {
	return &fakeStarts{starts: map[string]time.Time{}}
}

func startsKey(userID, quizID uint) string {
	return fmt.Sprintf("%d|%d", userID, quizID)
}

func (f *fakeStarts) StartAttempt(userID, quizID uint, startedAt time.Time) error {
	f.starts[startsKey(userID, quizID)] = startedAt
	return nil
}

func (f *fakeStarts) AttemptStart(userID, quizID uint) (time.Time, bool, error) {
	t, ok := f.starts[startsKey(userID, quizID)]
	return t, ok, nil
}

func (f *fakeStarts) ClearAttempt(userID, quizID uint) error {
	delete(f.starts, startsKey(userID, quizID))
	return nil
}

func seedQuiz(store *fakeStore, quizID uint, correct ...int) {
	store.quizzes[quizID] = models.Quiz{ID: quizID, Title: "seeded"}
	var qs []models.Question
	for i, c := range correct {
		qs = append(qs, models.Question{ID: uint(100*int(quizID) + i + 1), QuizID: quizID, CorrectOption: c})
	}
	store.questions[quizID] = qs
}

func TestStartRefusesEmptyQuiz(t *testing.T) {
	store := newFakeStore()
	store.quizzes[1] = models.Quiz{ID: 1, Title: "empty"}
	starts := newFakeStarts()
	svc := NewService(store, starts)

	_, err := svc.Start(10, 1)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(starts.starts) != 0 {
		t.Fatal("no attempt-start must be recorded for a refused start")
	}
}

func TestStartUnknownQuiz(t *testing.T) {
	svc := NewService(newFakeStore(), newFakeStarts())
	_, err := svc.Start(10, 42)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStartHidesCorrectOptions(t *testing.T) {
	store := newFakeStore()
	seedQuiz(store, 1, 2, 4)
	svc := NewService(store, newFakeStarts())

	result, err := svc.Start(10, 1)
	if err != nil {
		t.Fatal(err)
	}
	if result.Total != 2 || len(result.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(result.Questions))
	}
	for _, q := range result.Questions {
		if q.CorrectOption != 0 {
			t.Fatalf("correct option leaked to taker: %+v", q)
		}
	}
}

func TestSubmitRecordsElapsedTime(t *testing.T) {
	store := newFakeStore()
	seedQuiz(store, 1, 2, 4)
	starts := newFakeStarts()
	svc := NewService(store, starts)

	begin := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return begin }
	if _, err := svc.Start(10, 1); err != nil {
		t.Fatal(err)
	}

	svc.now = func() time.Time { return begin.Add(95 * time.Second) }
	score, err := svc.Submit(10, 1, map[uint]int{101: 2, 102: 1})
	if err != nil {
		t.Fatal(err)
	}
	if score.TotalScored != 1 || score.TotalQuestions != 2 {
		t.Fatalf("got %d/%d, want 1/2", score.TotalScored, score.TotalQuestions)
	}
	if score.TimeTaken != "0:01:35" {
		t.Fatalf("time_taken = %q, want 0:01:35", score.TimeTaken)
	}
	if _, ok, _ := starts.AttemptStart(10, 1); ok {
		t.Fatal("attempt start must be cleared after submit")
	}
}

func TestSubmitWithoutStartGradesWithZeroElapsed(t *testing.T) {
	store := newFakeStore()
	seedQuiz(store, 1, 3)
	svc := NewService(store, newFakeStarts())

	score, err := svc.Submit(10, 1, map[uint]int{101: 3})
	if err != nil {
		t.Fatal(err)
	}
	if score.TimeTaken != "0:00:00" {
		t.Fatalf("time_taken = %q, want 0:00:00", score.TimeTaken)
	}
}

func TestSubmitTwiceCreatesTwoRows(t *testing.T) {
	store := newFakeStore()
	seedQuiz(store, 1, 2)
	svc := NewService(store, newFakeStarts())

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	first, err := svc.Submit(10, 1, map[uint]int{101: 2})
	if err != nil {
		t.Fatal(err)
	}
	// Backdate the first row so ordering is observable.
	store.scores[0].CreatedAt = base.Add(-time.Hour)

	second, err := svc.Submit(10, 1, map[uint]int{101: 1})
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Fatal("each submission must create a distinct score row")
	}

	history, err := svc.History(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d rows, want 2", len(history))
	}
	if history[0].ID != second.ID {
		t.Fatal("history must be ordered most recent first")
	}
}

func TestResultOwnership(t *testing.T) {
	store := newFakeStore()
	seedQuiz(store, 1, 2)
	svc := NewService(store, newFakeStarts())

	score, err := svc.Submit(10, 1, map[uint]int{101: 2})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Result(11, score.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("another user's result must be forbidden, got %v", err)
	}

	view, err := svc.Result(10, score.ID)
	if err != nil {
		t.Fatalf("owner must be able to read their result: %v", err)
	}
	if view.TotalScored != 1 || view.Percentage != 100.00 {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestResultNotFound(t *testing.T) {
	svc := NewService(newFakeStore(), newFakeStarts())
	if _, err := svc.Result(10, 999); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
