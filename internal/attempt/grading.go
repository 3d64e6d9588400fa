package attempt

import (
	"fmt"
	"time"

	"quizmaster/internal/apperr"
	"quizmaster/internal/models"
)

// Grade scores a submission against a quiz's question set. It is a pure
// function: answers maps question id to the submitted option (1-4); blank
// questions are simply absent, answers for questions outside the quiz are
// ignored, and an out-of-range option counts as wrong. total_questions
// snapshots the quiz size at grading time, so later edits to the quiz never
// change historical scores.
func Grade(quizID uint, questions []models.Question, answers map[uint]int) (*models.Score, error) {
	if len(questions) == 0 {
		return nil, apperr.Validationf("quiz has no questions")
	}

	correct := 0
	for _, q := range questions {
		if picked, ok := answers[q.ID]; ok && picked == q.CorrectOption {
			correct++
		}
	}

	return &models.Score{
		QuizID:         quizID,
		TotalScored:    correct,
		TotalQuestions: len(questions),
	}, nil
}

// FormatElapsed renders a duration as H:MM:SS, whole seconds only,
// matching the time_taken strings shown on result pages.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
