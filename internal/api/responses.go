package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"quizbank/internal/question"
)

// errorResponse never carries internal error text; details go to the log.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type healthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

type listResponse struct {
	Success     bool                `json:"success"`
	Data        []question.Question `json:"data"`
	Total       int                 `json:"total"`
	LastUpdated time.Time           `json:"lastUpdated"`
}

type submitResponse struct {
	Success        bool              `json:"success"`
	Message        string            `json:"message"`
	Question       question.Question `json:"question"`
	TotalQuestions int               `json:"totalQuestions"`
}

const (
	msgServerRunning = "Server is running"
	msgFetchFailed   = "Failed to fetch questions"
	msgSaved         = "Question saved successfully!"
	msgSaveFailed    = "Failed to save question"
	msgInvalidJSON   = "Invalid JSON body"
	msgBodyTooLarge  = "Request body too large"
)

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Success: false, Message: message})
}
