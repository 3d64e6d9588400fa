package models

import "time"

type QuestionDTO struct {
	ID            uint     `json:"id"`
	Statement     string   `json:"question_statement"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option,omitempty"` // Only for admins
}

// ToDTO flattens a question for delivery. The correct option is withheld
// unless the caller administers the quiz.
func (q Question) ToDTO(includeAnswer bool) QuestionDTO {
	dto := QuestionDTO{
		ID:        q.ID,
		Statement: q.Statement,
		Options:   []string{q.Option1, q.Option2, q.Option3, q.Option4},
	}
	if includeAnswer {
		dto.CorrectOption = q.CorrectOption
	}
	return dto
}

// AttemptView is a Score row prepared for dashboards and result pages.
type AttemptView struct {
	ID             uint      `json:"id"`
	QuizID         uint      `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title,omitempty"`
	Username       string    `json:"username,omitempty"`
	TotalScored    int       `json:"total_scored"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	TimeTaken      string    `json:"time_taken"`
	AttemptedAt    time.Time `json:"attempted_at"`
}

// NewAttemptView uses whatever associations were preloaded on the row.
func NewAttemptView(s Score) AttemptView {
	v := AttemptView{
		ID:             s.ID,
		QuizID:         s.QuizID,
		TotalScored:    s.TotalScored,
		TotalQuestions: s.TotalQuestions,
		Percentage:     Round2(s.Percentage()),
		TimeTaken:      s.TimeTaken,
		AttemptedAt:    s.CreatedAt,
	}
	if s.Quiz != nil {
		v.QuizTitle = s.Quiz.Title
	}
	if s.User != nil {
		v.Username = s.User.Username
	}
	return v
}

type UserStats struct {
	TotalAttempts     int     `json:"total_attempts"`
	AverageScore      float64 `json:"average_score"`
	AvailableSubjects int     `json:"available_subjects"`
	TotalQuizzes      int     `json:"total_quizzes"`
}

type UserDashboard struct {
	Stats          UserStats     `json:"stats"`
	RecentAttempts []AttemptView `json:"recent_attempts"`
	Subjects       []Subject     `json:"subjects"`
}

type AdminStats struct {
	TotalUsers     int64 `json:"total_users"`
	TotalSubjects  int64 `json:"total_subjects"`
	TotalChapters  int64 `json:"total_chapters"`
	TotalQuizzes   int64 `json:"total_quizzes"`
	TotalQuestions int64 `json:"total_questions"`
	TotalAttempts  int64 `json:"total_attempts"`
}

type AdminDashboard struct {
	Stats          AdminStats    `json:"stats"`
	RecentUsers    []User        `json:"recent_users"`
	RecentAttempts []AttemptView `json:"recent_attempts"`
}

type SearchResults struct {
	Users    []User    `json:"users"`
	Subjects []Subject `json:"subjects"`
	Quizzes  []Quiz    `json:"quizzes"`
}
