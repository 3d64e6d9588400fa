package models

import (
	"math"
	"time"
)

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at"`
	Username      string    `json:"username" gorm:"uniqueIndex;not null"`
	Password      string    `json:"-" gorm:"not null"`
	FullName      string    `json:"full_name"`
	Qualification string    `json:"qualification"`
	DOB           time.Time `json:"dob"`
	IsAdmin       bool      `json:"is_admin" gorm:"default:false"`
	Scores        []Score   `json:"-" gorm:"foreignKey:UserID"`
}

type Subject struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Chapters    []Chapter `json:"chapters,omitempty" gorm:"foreignKey:SubjectID"`
}

type Chapter struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	SubjectID   uint      `json:"subject_id" gorm:"not null"`
	Quizzes     []Quiz    `json:"quizzes,omitempty" gorm:"foreignKey:ChapterID"`
}

type Quiz struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time  `json:"created_at"`
	Title        string     `json:"title" gorm:"not null"`
	ChapterID    uint       `json:"chapter_id" gorm:"not null"`
	DateOfQuiz   time.Time  `json:"date_of_quiz"`
	LiveFrom     time.Time  `json:"live_from"`
	LiveTo       time.Time  `json:"live_to"`
	TimeDuration string     `json:"time_duration"`
	Remarks      string     `json:"remarks"`
	Questions    []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	Scores       []Score    `json:"-" gorm:"foreignKey:QuizID"`
}

type Question struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at"`
	QuizID        uint      `json:"quiz_id" gorm:"not null"`
	Statement     string    `json:"question_statement" gorm:"not null"`
	Option1       string    `json:"option1" gorm:"not null"`
	Option2       string    `json:"option2" gorm:"not null"`
	Option3       string    `json:"option3" gorm:"not null"`
	Option4       string    `json:"option4" gorm:"not null"`
	CorrectOption int       `json:"correct_option" gorm:"not null"`
}

// Score is one finished attempt. Rows are immutable after creation;
// CreatedAt is the attempt timestamp used for recency ordering.
type Score struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time `json:"created_at"`
	QuizID         uint      `json:"quiz_id" gorm:"not null"`
	UserID         uint      `json:"user_id" gorm:"not null"`
	TotalScored    int       `json:"total_scored"`
	TotalQuestions int       `json:"total_questions"`
	TimeTaken      string    `json:"time_taken"`
	Quiz           *Quiz     `json:"-" gorm:"foreignKey:QuizID"`
	User           *User     `json:"-" gorm:"foreignKey:UserID"`
}

// Percentage is the derived score percentage, 0 for an empty quiz snapshot.
func (s Score) Percentage() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.TotalScored) / float64(s.TotalQuestions) * 100
}

// Round2 rounds to two decimal places, the precision dashboards display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
