// main is the entry point of the student records HTTP API.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the backing store named in the config (sqlite, redis or memory)
//  4. Load the student list and display preference
//  5. Register all HTTP routes
//  6. Serve until an OS signal (Ctrl+C / kill) arrives, then shut down
//
// RUNNING THE SERVER:
//
//	go run ./cmd/students-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-api
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/http/handlers/preferences"
	"github.com/aanand-mishra/student-records/internal/http/handlers/student"
	"github.com/aanand-mishra/student-records/internal/logging"
	"github.com/aanand-mishra/student-records/internal/records"
	"github.com/aanand-mishra/student-records/internal/storage/backend"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Handlers log through the package-level slog functions, so the
	// configured logger also becomes the default.
	log := logging.New(cfg.Env, os.Stdout)
	slog.SetDefault(log)

	log.Info("starting students-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Open the Backing Store ─────────────────────────────────────────
	kv, err := backend.Open(cfg.Storage)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("backend", cfg.Storage.Backend),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer kv.Close()

	log.Info("storage initialised", slog.String("backend", cfg.Storage.Backend))

	// ── 4. Load State ─────────────────────────────────────────────────────
	// Load never fails: unreadable state starts empty and is logged.
	store := records.NewStore(kv, log)
	store.Load(context.Background())
	manager := records.NewManager(store, log)

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	// Route table:
	//   POST   /api/students                   → append a student
	//   GET    /api/students?q=&page=&size=    → search and paginate
	//   GET    /api/students/{index}           → one student by position
	//   PUT    /api/students/{index}           → replace a student
	//   DELETE /api/students/{index}?confirm=true → remove a student
	//   GET    /api/preferences                → display preference
	//   PUT    /api/preferences                → set display preference
	//   POST   /api/preferences/toggle         → flip display preference
	router := http.NewServeMux()

	router.HandleFunc("POST /api/students", student.New(manager))
	router.HandleFunc("GET /api/students", student.GetList(manager, cfg.PageSize))
	router.HandleFunc("GET /api/students/{index}", student.GetByIndex(manager))
	router.HandleFunc("PUT /api/students/{index}", student.Update(manager))
	router.HandleFunc("DELETE /api/students/{index}", student.Delete(manager))

	router.HandleFunc("GET /api/preferences", preferences.Get(manager))
	router.HandleFunc("PUT /api/preferences", preferences.Set(manager))
	router.HandleFunc("POST /api/preferences/toggle", preferences.Toggle(manager))

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Serve and Wait for Shutdown Signal ─────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed after Shutdown.
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped gracefully")
}
