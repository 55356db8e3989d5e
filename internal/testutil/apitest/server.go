// Package apitest starts the question bank API for tests.
package apitest

import (
	"bytes"
	"log"
	"sync"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"quizbank/internal/api"
	"quizbank/internal/store"
)

// ServerConfig wires dependencies for StartServer.
type ServerConfig struct {
	// BankPath defaults to questions.json in a temp dir.
	BankPath         string
	SkillsDir        string
	DegradeOnCorrupt bool
	Now              func() time.Time
}

// ServerInstance represents a running HTTP test server.
type ServerInstance struct {
	BaseURL  string
	BankPath string
	Logs     *LogBuffer
	Close    func()
}

// StartServer launches an in-memory HTTP server for the question bank API
// backed by a file store.
func StartServer(t testing.TB, cfg ServerConfig) *ServerInstance {
	t.Helper()
	if cfg.BankPath == "" {
		cfg.BankPath = filepath.Join(t.TempDir(), "questions.json")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	backend, err := store.NewFileBackend(cfg.BankPath)
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	var skills *store.SkillStore
	if cfg.SkillsDir != "" {
		skills, err = store.NewSkillStore(cfg.SkillsDir)
		if err != nil {
			t.Fatalf("skill store: %v", err)
		}
	}
	gin.SetMode(gin.TestMode)
	logs := &LogBuffer{}
	handler := api.NewHandler(api.Config{
		Store:            store.New(backend, cfg.Now),
		Skills:           skills,
		Logger:           log.New(logs, "", 0),
		Now:              cfg.Now,
		DegradeOnCorrupt: cfg.DegradeOnCorrupt,
	})
	server := httptest.NewServer(handler)
	return &ServerInstance{
		BaseURL:  server.URL,
		BankPath: cfg.BankPath,
		Logs:     logs,
		Close:    server.Close,
	}
}

// LogBuffer collects server logs. gin's request logger writes to it
// directly, so writes are serialized here rather than by log.Logger.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything logged so far.
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
