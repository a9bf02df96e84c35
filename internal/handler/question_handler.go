package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rohitmodi970/casual-quizing/internal/response"
	"github.com/rohitmodi970/casual-quizing/internal/service"
	"github.com/rohitmodi970/casual-quizing/internal/trivia"
)

// QuestionHandler serves cached question batches to clients that prefer not
// to hit the trivia provider directly.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// GetQuestions godoc
// GET /api/v1/questions
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	questions, err := h.questionService.GetBatch(c.Request.Context())
	if err != nil {
		if errors.Is(err, trivia.ErrRateLimited) || errors.Is(err, trivia.ErrEmptyPool) {
			response.Fail(c, http.StatusServiceUnavailable, response.ErrQuestionsUnavailable)
			return
		}
		response.Fail(c, http.StatusBadGateway, response.ErrQuestionsUnavailable)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"questions": questions,
		"count":     len(questions),
	})
}
