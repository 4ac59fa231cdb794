package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rpggio/timeledger/internal/config"
	"github.com/rpggio/timeledger/internal/domain/activity"
	"github.com/rpggio/timeledger/internal/domain/directory"
	"github.com/rpggio/timeledger/internal/domain/entry"
	"github.com/rpggio/timeledger/internal/domain/session"
	"github.com/rpggio/timeledger/internal/domain/timer"
	"github.com/rpggio/timeledger/internal/mcp"
	"github.com/rpggio/timeledger/internal/sqlite"
	"github.com/rpggio/timeledger/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/natefinch/lumberjack.v2"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "apikey" {
		if err := runCreateAPIKey(cfg, os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "apikey: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger, closeLog := newLogger(cfg)
	defer closeLog()

	app, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer app.close()

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, app)
	} else {
		runHTTPMode(logger, app, cfg)
	}
}

// app holds the wired services shared by both transports.
type app struct {
	db        *sqlite.DB
	sessions  *session.Manager
	handler   *mcp.Handler
	mcpServer *sdkmcp.Server
	apiKeys   *sqlite.APIKeyRepository
	logger    *slog.Logger
}

func newApp(cfg config.Config, logger *slog.Logger) (*app, error) {
	db, err := openDB(cfg.DB.Path)
	if err != nil {
		return nil, err
	}

	entryRepo := sqlite.NewEntryRepository(db)
	directoryRepo := sqlite.NewDirectoryRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	apiKeys := sqlite.NewAPIKeyRepository(db)

	directorySvc := directory.NewService(directoryRepo, logger)
	activitySvc := activity.NewService(activityRepo, logger)
	ledger := entry.NewService(entryRepo, directorySvc, activityRepo, logger)
	sessions := session.NewManager(
		ledger,
		timer.NewIntervalScheduler(cfg.Timer.TickInterval),
		activityRepo,
		logger,
	)

	handler := mcp.NewHandler(mcp.Services{
		Ledger:    ledger,
		Directory: directorySvc,
		Sessions:  sessions,
		Activity:  activitySvc,
	})

	mcpServer := mcp.NewServer(mcp.Config{
		Handler:       handler,
		Resolver:      apiKeys,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		DefaultTenant: cfg.Identity.DefaultTenant,
		DefaultUser:   cfg.Identity.DefaultUser,
		Version:       version,
		Logger:        logger,
	})

	return &app{
		db:        db,
		sessions:  sessions,
		handler:   handler,
		mcpServer: mcpServer,
		apiKeys:   apiKeys,
		logger:    logger,
	}, nil
}

// close stops every running timer so its time is recorded, then closes
// the database.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.sessions.CloseAll(ctx); err != nil {
		a.logger.Error("failed to record running timers", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", "error", err)
	}
}

func openDB(path string) (*sqlite.DB, error) {
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("preparing database path: %w", err)
	}
	db, err := sqlite.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

func runStdioMode(logger *slog.Logger, a *app) {
	logger.Info("starting stdio transport", "auth", "disabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run blocks until stdin closes or context is canceled
	if err := a.mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
	}
	logger.Info("shutting down")
}

func runHTTPMode(logger *slog.Logger, a *app, cfg config.Config) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return a.mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	identity := transport.DefaultIdentityMiddleware(cfg.Identity.DefaultTenant, cfg.Identity.DefaultUser)
	if cfg.Auth.Enabled {
		identity = transport.AuthMiddleware(a.apiKeys)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr: addr,
		Handler: transport.NewServer(a.handler, transport.Options{
			Identity: identity,
			MCP:      mcpHandler,
			Logger:   logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "auth", cfg.Auth.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// runCreateAPIKey mints a bearer token for a tenant and user and prints it.
func runCreateAPIKey(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("apikey", flag.ContinueOnError)
	tenantID := fs.String("tenant", cfg.Identity.DefaultTenant, "tenant ID")
	userID := fs.String("user", "", "user ID")
	description := fs.String("description", "", "key description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID == "" {
		return errors.New("-user is required")
	}

	db, err := openDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("generating token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := sqlite.NewAPIKeyRepository(db).Create(context.Background(), token, *tenantID, *userID, *description); err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func newLogger(cfg config.Config) (*slog.Logger, func()) {
	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	closeLog := func() {}
	if cfg.Log.Path != "" {
		if err := ensureDir(cfg.Log.Path); err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			rotating := &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    cfg.Log.MaxSizeMB,
				MaxBackups: cfg.Log.MaxBackups,
			}
			logWriter = rotating
			closeLog = func() { _ = rotating.Close() }
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return logger, closeLog
}

func ensureDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
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
