package attempt

import (
	"errors"
	"testing"
	"time"

	"quizmaster/internal/apperr"
	"quizmaster/internal/models"
)

func twoQuestionQuiz() []models.Question {
	return []models.Question{
		{ID: 1, QuizID: 7, Statement: "q1", CorrectOption: 2},
		{ID: 2, QuizID: 7, Statement: "q2", CorrectOption: 4},
	}
}

func TestGradePartialCredit(t *testing.T) {
	score, err := Grade(7, twoQuestionQuiz(), map[uint]int{1: 2, 2: 1})
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	if score.TotalScored != 1 || score.TotalQuestions != 2 {
		t.Fatalf("got %d/%d, want 1/2", score.TotalScored, score.TotalQuestions)
	}
	if got := models.Round2(score.Percentage()); got != 50.00 {
		t.Fatalf("percentage = %v, want 50.00", got)
	}
}

func TestGradeEmptyQuestionSetRefused(t *testing.T) {
	_, err := Grade(7, nil, map[uint]int{1: 2})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for empty question set, got %v", err)
	}
}

func TestGradeBlankAnswersCountWrong(t *testing.T) {
	score, err := Grade(7, twoQuestionQuiz(), map[uint]int{})
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	if score.TotalScored != 0 || score.TotalQuestions != 2 {
		t.Fatalf("got %d/%d, want 0/2", score.TotalScored, score.TotalQuestions)
	}
}

func TestGradeIgnoresUnknownQuestions(t *testing.T) {
	score, err := Grade(7, twoQuestionQuiz(), map[uint]int{1: 2, 2: 4, 999: 1})
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	if score.TotalScored != 2 {
		t.Fatalf("extras must be ignored: got %d, want 2", score.TotalScored)
	}
}

func TestGradeOutOfRangeOptionIsWrongNotError(t *testing.T) {
	for _, picked := range []int{0, 5, -1} {
		score, err := Grade(7, twoQuestionQuiz(), map[uint]int{1: picked, 2: 4})
		if err != nil {
			t.Fatalf("option %d: unexpected error %v", picked, err)
		}
		if score.TotalScored != 1 {
			t.Fatalf("option %d: got %d, want 1", picked, score.TotalScored)
		}
	}
}

func TestGradeBounds(t *testing.T) {
	questions := twoQuestionQuiz()
	submissions := []map[uint]int{
		nil,
		{1: 1},
		{1: 2, 2: 4},
		{1: 9, 2: -3},
	}
	for _, answers := range submissions {
		score, err := Grade(7, questions, answers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if score.TotalScored < 0 || score.TotalScored > score.TotalQuestions {
			t.Fatalf("score %d/%d out of bounds", score.TotalScored, score.TotalQuestions)
		}
		if score.TotalQuestions != len(questions) {
			t.Fatalf("total_questions = %d, want %d", score.TotalQuestions, len(questions))
		}
	}
}

func TestGradeIdempotent(t *testing.T) {
	questions := twoQuestionQuiz()
	answers := map[uint]int{1: 2, 2: 1}
	first, err := Grade(7, questions, answers)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Grade(7, questions, answers)
	if err != nil {
		t.Fatal(err)
	}
	if first.TotalScored != second.TotalScored || first.TotalQuestions != second.TotalQuestions {
		t.Fatalf("grading is not idempotent: %+v vs %+v", first, second)
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{-5 * time.Second, "0:00:00"},
		{90 * time.Second, "0:01:30"},
		{90*time.Second + 700*time.Millisecond, "0:01:30"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{25 * time.Hour, "25:00:00"},
	}
	for _, c := range cases {
		if got := FormatElapsed(c.d); got != c.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}
