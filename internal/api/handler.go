package api

import (
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"quizbank/internal/store"
)

// Config wires dependencies for the HTTP handler.
type Config struct {
	Store *store.Store
	// Skills, when set, also receives every accepted question.
	Skills *store.SkillStore
	Logger *log.Logger
	Now    func() time.Time
	// DegradeOnCorrupt serves an empty list instead of a 500 when the bank
	// cannot be parsed.
	DegradeOnCorrupt bool
	// CORSOrigins lists allowed origins; empty or "*" allows any origin.
	CORSOrigins []string
}

// NewHandler builds an HTTP handler for the question bank API.
func NewHandler(cfg Config) http.Handler {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	h := &handler{
		store:            cfg.Store,
		skills:           cfg.Skills,
		logger:           cfg.Logger,
		nowFn:            cfg.Now,
		started:          cfg.Now(),
		degradeOnCorrupt: cfg.DegradeOnCorrupt,
	}

	engine := gin.New()
	engine.Use(gin.LoggerWithWriter(cfg.Logger.Writer()))
	engine.Use(gin.RecoveryWithWriter(cfg.Logger.Writer()))
	engine.Use(requestID())
	engine.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	api := engine.Group("/api")
	{
		api.GET("/health", h.handleHealth)
		api.GET("/questions", h.handleListQuestions)
		api.POST("/questions", h.handleSubmitQuestion)
	}
	return engine
}

type handler struct {
	store            *store.Store
	skills           *store.SkillStore
	logger           *log.Logger
	nowFn            func() time.Time
	started          time.Time
	degradeOnCorrupt bool
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}
	if len(allowed) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = allowed
	return cfg
}
