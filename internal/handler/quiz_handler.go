package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rohitmodi970/casual-quizing/internal/model"
	"github.com/rohitmodi970/casual-quizing/internal/response"
	"github.com/rohitmodi970/casual-quizing/internal/service"
	"github.com/rohitmodi970/casual-quizing/internal/validator"
)

// QuizHandler handles quiz submission, history, annotation and deletion.
type QuizHandler struct {
	submissionService *service.SubmissionService
	resultService     *service.ResultService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(submissionService *service.SubmissionService, resultService *service.ResultService) *QuizHandler {
	return &QuizHandler{
		submissionService: submissionService,
		resultService:     resultService,
	}
}

// SubmitQuiz godoc
// POST /api/v1/quiz
// Validates, regrades and persists one completed attempt, then sends the
// result-summary email best-effort. Responds 201 with the receipt.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req model.SubmitQuizRequest
	if details := validator.Bind(c, &req); details != nil {
		response.FailWithDetails(c, http.StatusBadRequest, response.ErrValidation, details)
		return
	}

	receipt, err := h.submissionService.Submit(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, receipt)
}

// GetHistory godoc
// GET /api/v1/quiz?email=&userId=&page=&limit=
// Returns the paginated attempt history, newest first, with owner stats.
func (h *QuizHandler) GetHistory(c *gin.Context) {
	email := c.Query("email")
	var userID *uuid.UUID
	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		userID = &id
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	history, err := h.resultService.History(c.Request.Context(), email, userID, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrMissingFilter) {
			response.Fail(c, http.StatusBadRequest, response.ErrMissingQuery)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, history)
}

// AnnotateQuiz godoc
// PUT /api/v1/quiz?quizId=
// Applies the annotation path (notes/flagged) to a persisted result.
// Scores and answers are immutable; this endpoint cannot touch them.
func (h *QuizHandler) AnnotateQuiz(c *gin.Context) {
	id, ok := quizIDParam(c)
	if !ok {
		return
	}

	var req model.AnnotateQuizRequest
	if details := validator.Bind(c, &req); details != nil {
		response.FailWithDetails(c, http.StatusBadRequest, response.ErrValidation, details)
		return
	}

	res, err := h.resultService.Annotate(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// DeleteQuiz godoc
// DELETE /api/v1/quiz?quizId=
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id, ok := quizIDParam(c)
	if !ok {
		return
	}

	if err := h.resultService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func quizIDParam(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("quizId")
	if raw == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
