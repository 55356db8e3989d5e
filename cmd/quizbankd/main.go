package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"quizbank/internal/api"
	"quizbank/internal/store"
)

// main launches quizbankd.
func main() {
	os.Exit(run())
}

// run executes quizbankd and returns an exit code.
func run() int {
	configPath := flag.String("config", "", "path to quizbankd config (optional)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}
	logger := log.New(os.Stderr, "quizbankd ", log.LstdFlags)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store error: %v\n", err)
		return 1
	}
	questions := store.New(backend, time.Now)
	defer func() {
		_ = questions.Close()
	}()
	if err := initStore(ctx, questions, cfg.Store.DegradeOnCorrupt, logger); err != nil {
		fmt.Fprintf(os.Stderr, "store init error: %v\n", err)
		return 1
	}

	var skills *store.SkillStore
	if cfg.Skills.Dir != "" {
		skills, err = store.NewSkillStore(cfg.Skills.Dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skills error: %v\n", err)
			return 1
		}
	}

	handler := api.NewHandler(api.Config{
		Store:            questions,
		Skills:           skills,
		Logger:           logger,
		Now:              time.Now,
		DegradeOnCorrupt: cfg.Store.DegradeOnCorrupt,
		CORSOrigins:      cfg.Server.CORSOrigins,
	})
	server := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	logger.Printf("listening on %s", cfg.Server.ListenAddr)
	logger.Printf("questions store: %s", backend.Name())
	if skills != nil {
		logger.Printf("skills directory: %s", skills.Dir())
	}

	exit := 0
	select {
	case <-ctx.Done():
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		exit = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	return exit
}

// initStore seeds an empty bank when none exists. A corrupt bank is only
// fatal when degraded mode is off; otherwise the server starts and reports
// the corruption per request.
func initStore(ctx context.Context, questions *store.Store, degrade bool, logger *log.Logger) error {
	err := questions.Init(ctx)
	if err != nil && degrade && store.IsCorrupt(err) {
		logger.Printf("warning: starting with a corrupt questions bank: %v", err)
		return nil
	}
	return err
}

// openBackend builds the configured store backend.
func openBackend(ctx context.Context, cfg config) (store.Backend, error) {
	switch cfg.Store.Backend {
	case backendDuckDB:
		return store.OpenDuckDB(ctx, cfg.Store.DuckDB.Path)
	case backendRedis:
		r := cfg.Store.Redis
		return store.OpenRedis(ctx, r.Addr, r.Password, r.DB, r.Key)
	default:
		return store.NewFileBackend(cfg.Store.Path)
	}
}
