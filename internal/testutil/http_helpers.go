package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"quizbank/internal/question"
)

// Response is a decoded API reply.
type Response struct {
	Status         int                 `json:"-"`
	Success        bool                `json:"success"`
	Message        string              `json:"message"`
	Data           []question.Question `json:"data"`
	Total          int                 `json:"total"`
	Question       question.Question   `json:"question"`
	TotalQuestions int                 `json:"totalQuestions"`
	Uptime         float64             `json:"uptime"`
}

// HTTPHealth sends a GET /api/health request.
func HTTPHealth(t testing.TB, baseURL string) Response {
	t.Helper()
	return doRequest(t, http.MethodGet, baseURL+"/api/health", nil)
}

// HTTPListQuestions sends a GET /api/questions request. query may be empty.
func HTTPListQuestions(t testing.TB, baseURL, query string) Response {
	t.Helper()
	url := baseURL + "/api/questions"
	if query != "" {
		url += "?" + query
	}
	return doRequest(t, http.MethodGet, url, nil)
}

// HTTPSubmitQuestion sends a POST /api/questions request with payload
// marshaled as JSON.
func HTTPSubmitQuestion(t testing.TB, baseURL string, payload any) Response {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal question payload: %v", err)
	}
	return HTTPSubmitRaw(t, baseURL, data)
}

// HTTPSubmitRaw sends a POST /api/questions request with a raw body.
func HTTPSubmitRaw(t testing.TB, baseURL string, body []byte) Response {
	t.Helper()
	return doRequest(t, http.MethodPost, baseURL+"/api/questions", body)
}

// doRequest executes an HTTP request with a JSON payload and decodes the
// reply regardless of status.
func doRequest(t testing.TB, method, url string, payload []byte) Response {
	t.Helper()
	ctx := Context(t, 2*time.Second)
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("http request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	var parsed Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("decode response for %s %s (status %d): %v: %s", method, url, resp.StatusCode, err, string(body))
	}
	parsed.Status = resp.StatusCode
	return parsed
}
