package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitmodi970/casual-quizing/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
	Setup()
}

func bindJSON(t *testing.T, body string, dst interface{}) []string {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return Bind(c, dst)
}

func TestBindValidPayload(t *testing.T) {
	var req model.RegisterEmailRequest
	details := bindJSON(t, `{"email":"taker@example.com"}`, &req)

	assert.Nil(t, details)
	assert.Equal(t, "taker@example.com", req.Email)
}

func TestBindReportsJSONFieldNames(t *testing.T) {
	var req model.SubmitQuizRequest
	details := bindJSON(t, `{"email":"not-an-email","totalQuestions":0}`, &req)

	require.NotEmpty(t, details)
	joined := strings.Join(details, "\n")
	// Errors are keyed by JSON tag, not Go field name.
	assert.Contains(t, joined, "email:")
	assert.Contains(t, joined, "totalQuestions:")
	assert.NotContains(t, joined, "TotalQuestions")
}

func TestBindNestedAnswerValidation(t *testing.T) {
	var req model.SubmitQuizRequest
	details := bindJSON(t, `{
		"email": "taker@example.com",
		"totalQuestions": 1,
		"answers": [{"question": "q", "correctAnswer": "a"}]
	}`, &req)

	require.NotEmpty(t, details)
	assert.Contains(t, strings.Join(details, "\n"), "userAnswer")
}

func TestBindMalformedJSON(t *testing.T) {
	var req model.RegisterEmailRequest
	details := bindJSON(t, `{"email": `, &req)

	require.Len(t, details, 1)
}

func TestTranslateErrorsSortsDetails(t *testing.T) {
	var req model.SubmitQuizRequest
	details := bindJSON(t, `{}`, &req)

	require.True(t, len(details) >= 2)
	for i := 1; i < len(details); i++ {
		assert.LessOrEqual(t, details[i-1], details[i])
	}
}
