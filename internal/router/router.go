package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rohitmodi970/casual-quizing/internal/config"
	"github.com/rohitmodi970/casual-quizing/internal/handler"
	"github.com/rohitmodi970/casual-quizing/internal/middleware"
	"github.com/rohitmodi970/casual-quizing/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Quiz     *handler.QuizHandler
	User     *handler.UserHandler
	Question *handler.QuestionHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// The whole surface is public; the write endpoints get a per-IP rate
	// limit instead of authentication (30 requests per minute per IP).
	writeLimiter := middleware.NewRateLimiter(30, time.Minute)

	api := router.Group("/api/v1")
	{
		api.POST("/register-email", writeLimiter.Middleware(), handlers.User.RegisterEmail)

		api.GET("/questions", handlers.Question.GetQuestions)

		api.POST("/quiz", writeLimiter.Middleware(), handlers.Quiz.SubmitQuiz)
		api.GET("/quiz", handlers.Quiz.GetHistory)
		api.PUT("/quiz", handlers.Quiz.AnnotateQuiz)
		api.DELETE("/quiz", handlers.Quiz.DeleteQuiz)
	}

	return router
}
