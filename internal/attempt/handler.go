package attempt

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"quizmaster/internal/apperr"
	"quizmaster/internal/auth"
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
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, apperr.Message(err), apperr.HTTPStatus(err))
}

func identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperr.ErrUnauthenticated)
	}
	return id, ok
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	quizID, ok := pathID(r, "quizID")
	if !ok {
		http.Error(w, "invalid quiz id", http.StatusBadRequest)
		return
	}

	result, err := h.service.Start(id.UserID, quizID)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(result)
}

type AnswerInput struct {
	QuestionID     uint `json:"question_id" validate:"required"`
	SelectedOption int  `json:"selected_option"`
}

type SubmitRequest struct {
	Answers []AnswerInput `json:"answers" validate:"dive"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	quizID, ok := pathID(r, "quizID")
	if !ok {
		http.Error(w, "invalid quiz id", http.StatusBadRequest)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	answers := make(map[uint]int, len(req.Answers))
	for _, a := range req.Answers {
		answers[a.QuestionID] = a.SelectedOption
	}

	score, err := h.service.Submit(id.UserID, quizID, answers)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(score)
}

func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	scoreID, ok := pathID(r, "scoreID")
	if !ok {
		http.Error(w, "invalid score id", http.StatusBadRequest)
		return
	}

	view, err := h.service.Result(id.UserID, scoreID)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(view)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	views, err := h.service.History(id.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(views)
}
