package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"quizmaster/internal/apperr"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

func pathID(r *http.Request, name string) (uint, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, apperr.Message(err), apperr.HTTPStatus(err))
}

type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *Handler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req CreateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	subject, err := h.service.CreateSubject(req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(subject)
}

func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.service.Subjects()
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(subjects)
}

func (h *Handler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "subjectID")
	if !ok {
		http.Error(w, "invalid subject id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteSubject(id); err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "subject deleted"})
}

type CreateChapterRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	SubjectID   uint   `json:"subject_id" validate:"required"`
}

func (h *Handler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	var req CreateChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	chapter, err := h.service.CreateChapter(req.Name, req.Description, req.SubjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(chapter)
}

func (h *Handler) ListChapters(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "subjectID")
	if !ok {
		http.Error(w, "invalid subject id", http.StatusBadRequest)
		return
	}
	subject, chapters, err := h.service.ChaptersBySubject(id)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"subject":  subject,
		"chapters": chapters,
	})
}

func (h *Handler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "chapterID")
	if !ok {
		http.Error(w, "invalid chapter id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteChapter(id); err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "chapter deleted"})
}

type QuestionRequest struct {
	Statement     string `json:"question_statement" validate:"required"`
	Option1       string `json:"option1" validate:"required"`
	Option2       string `json:"option2" validate:"required"`
	Option3       string `json:"option3" validate:"required"`
	Option4       string `json:"option4" validate:"required"`
	CorrectOption int    `json:"correct_option" validate:"required,min=1,max=4"`
}

type CreateQuizRequest struct {
	Title        string            `json:"title" validate:"required"`
	LiveFrom     time.Time         `json:"live_from" validate:"required"`
	LiveTo       time.Time         `json:"live_to" validate:"required"`
	TimeDuration string            `json:"time_duration"`
	Remarks      string            `json:"remarks"`
	Questions    []QuestionRequest `json:"questions" validate:"dive"`
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := pathID(r, "chapterID")
	if !ok {
		http.Error(w, "invalid chapter id", http.StatusBadRequest)
		return
	}

	var req CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	in := CreateQuizInput{
		Title:        req.Title,
		LiveFrom:     req.LiveFrom,
		LiveTo:       req.LiveTo,
		TimeDuration: req.TimeDuration,
		Remarks:      req.Remarks,
	}
	for _, q := range req.Questions {
		in.Questions = append(in.Questions, QuestionInput{
			Statement:     q.Statement,
			Option1:       q.Option1,
			Option2:       q.Option2,
			Option3:       q.Option3,
			Option4:       q.Option4,
			CorrectOption: q.CorrectOption,
		})
	}

	quiz, err := h.service.CreateQuiz(chapterID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(quiz)
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "chapterID")
	if !ok {
		http.Error(w, "invalid chapter id", http.StatusBadRequest)
		return
	}
	chapter, quizzes, err := h.service.QuizzesByChapter(id)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"chapter": chapter,
		"quizzes": quizzes,
	})
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "quizID")
	if !ok {
		http.Error(w, "invalid quiz id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteQuiz(id); err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "quiz deleted"})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.Users()
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(users)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "userID")
	if !ok {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteUser(id); err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "user deleted"})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Search(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(results)
}
