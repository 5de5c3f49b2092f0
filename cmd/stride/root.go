package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyperengineering/stride/internal/api"
	"github.com/hyperengineering/stride/internal/config"
	"github.com/hyperengineering/stride/internal/personalize"
	"github.com/hyperengineering/stride/internal/planner"
	"github.com/hyperengineering/stride/internal/store"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "stride",
	Short: "Stride - goal-to-task planning service",
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("configuration loaded")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)
	slog.Info("logger initialized", "level", cfg.Log.Level)

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	slog.Info("task store initialized", "path", cfg.Database.Path)

	// Personalization is optional; without a key the planner keeps the
	// blueprint text as generated.
	var rewriter personalize.Rewriter
	model := ""
	if cfg.Rewrite.Enabled && cfg.Rewrite.APIKey != "" {
		openaiRewriter := personalize.NewOpenAI(cfg.Rewrite.APIKey, cfg.Rewrite.Model)
		rewriter = openaiRewriter
		model = openaiRewriter.ModelName()
		slog.Info("rewriter initialized", "model", model)
	} else {
		slog.Info("rewriter disabled")
	}

	scheduler := planner.NewScheduler(db, rewriter, cfg.Planner.StreakChunkSize)
	slog.Info("scheduler initialized", "streak_chunk_size", cfg.Planner.StreakChunkSize)

	handler := api.NewHandler(scheduler, db, cfg.Auth.APIKey, Version, model)
	router := api.NewRouter(handler)
	slog.Info("router initialized")

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	go func() {
		slog.Info("server starting", "address", addr)
		// ErrServerClosed is the expected error on graceful Shutdown();
		// anything else is a real failure and should trigger shutdown.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown initiated")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := db.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
