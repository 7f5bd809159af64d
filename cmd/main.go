package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"todo-app/db"
	"todo-app/internal/auth"
	"todo-app/internal/config"
	"todo-app/internal/logger"
	"todo-app/internal/task"
	"todo-app/internal/todolist"
	"todo-app/internal/web"
	"todo-app/middleware"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var envFile string
	var port string

	flagSet := pflag.NewFlagSet("todo-app", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", ".env", "path to a dotenv file with configuration")
	flagSet.StringVar(&port, "port", "", "listen port (overrides PORT)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if port != "" {
		cfg.Port = port
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repoFactory, err := db.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.DatabaseType, err)
	}
	log.Info().Str("database_type", string(cfg.DatabaseType)).Msg("store opened")
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repoFactory.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	// Create repositories
	userRepo := repoFactory.NewUserRepository()
	todoListRepo := repoFactory.NewTodoListRepository()
	taskRepo := repoFactory.NewTaskRepository()

	// Initialize services with repositories
	tokens := auth.NewTokenIssuer(cfg.JwtKey, cfg.TokenTTL)
	authService := auth.NewAuthService(userRepo, tokens, cfg.BcryptCost)
	todoListService := todolist.NewTodoListService(todoListRepo, taskRepo)
	taskService := task.NewTaskService(todoListRepo, taskRepo)

	handlers := &web.Handlers{
		Auth:       auth.NewAuthHandlers(authService),
		TodoLists:  todolist.NewTodoListHandlers(todoListService),
		Tasks:      task.NewTaskHandlers(taskService),
		Middleware: middleware.NewMiddleware(authService),
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           web.NewHandler(handlers.SetupRoutes(), log, cfg.CORSAllowedOrigin),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return serve(ctx, server, log)
}

func serve(ctx context.Context, server *http.Server, log zerolog.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server is starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
