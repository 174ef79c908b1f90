package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/countries-quiz-bot/internal/infra/restcountries"
	"github.com/aliskhannn/countries-quiz-bot/internal/service"
)

const (
	// MaxQuestionCount caps the count accepted by POST /api/questions.
	MaxQuestionCount = 50

	maxRequestBody = 1 << 20
)

type handler struct {
	quiz   QuizService
	logger *zap.Logger
}

type statusResponse struct {
	Ready  bool `json:"ready"`
	Loaded int  `json:"loaded"`
}

type reloadResponse struct {
	Loaded int `json:"loaded"`
}

type poolResponse struct {
	Countries []entities.Country `json:"countries"`
}

type questionsRequest struct {
	Category string   `json:"category"`
	Count    int      `json:"count"`
	Pool     []string `json:"pool"`
}

type questionsResponse struct {
	Questions    []entities.Question `json:"questions"`
	Requested    int                 `json:"requested"`
	Insufficient bool                `json:"insufficient"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) status(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, statusResponse{
		Ready:  h.quiz.Ready(),
		Loaded: h.quiz.CountryCount(),
	})
}

func (h *handler) reload(w http.ResponseWriter, r *http.Request) {
	loaded, err := h.quiz.LoadRepository(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, restcountries.ErrDataSource) {
			status = http.StatusBadGateway
		}
		h.logger.Warn("reload via api failed", zap.Error(err))
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, reloadResponse{Loaded: loaded})
}

func (h *handler) pool(w http.ResponseWriter, r *http.Request) {
	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "size must be a non-negative integer")
			return
		}
		size = n
	}

	countries, err := h.quiz.BuildSessionPool(size)
	if errors.Is(err, service.ErrRepositoryNotReady) {
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("build pool", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, poolResponse{Countries: countries})
}

func (h *handler) questions(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req questionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := entities.ParseCategory(req.Category)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Count < 0 {
		respondError(w, http.StatusBadRequest, "count must not be negative")
		return
	}
	if !h.quiz.Ready() {
		respondError(w, http.StatusServiceUnavailable, service.ErrRepositoryNotReady.Error())
		return
	}

	count := req.Count
	if count == 0 {
		count = h.quiz.QuestionCount()
	}
	count = min(count, MaxQuestionCount)

	pool := make([]entities.Country, 0, len(req.Pool))
	for _, name := range req.Pool {
		c, err := h.quiz.Country(name)
		if err != nil {
			continue
		}
		pool = append(pool, c)
	}

	questions := h.quiz.GenerateQuestionSet(pool, category, count)
	if questions == nil {
		questions = []entities.Question{}
	}

	respondJSON(w, http.StatusOK, questionsResponse{
		Questions:    questions,
		Requested:    count,
		Insufficient: len(questions) < count,
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}
