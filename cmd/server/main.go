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

	"github.com/judahn02/Professional-Development/internal/api"
	"github.com/judahn02/Professional-Development/internal/auth"
	"github.com/judahn02/Professional-Development/internal/config"
	"github.com/judahn02/Professional-Development/internal/gateway"
	"github.com/judahn02/Professional-Development/internal/secrets"
	"github.com/judahn02/Professional-Development/internal/sessions"
)

func main() {
	// Logger
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Credentials are stored encrypted unless no key is configured.
	creds, err := loadCredentials(cfg)
	if err != nil {
		logger.Error("failed to prepare database credentials", "error", err)
		os.Exit(1)
	}

	// Stored-procedure gateway, one connection per request.
	gw := gateway.New(creds, logger)

	// Resource controller
	svc := sessions.NewService(gw, sessions.Procs{
		Fetch:  cfg.FetchProc,
		Detail: cfg.DetailProc,
		Insert: cfg.InsertProc,
		Update: cfg.UpdateProc,
	}, logger)

	// Request gate
	verifier := auth.NewNonceVerifier(cfg.NonceSecret, cfg.NonceLifetime)

	// Router
	router := api.NewRouter(svc, gw, verifier, logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("sessions server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

// loadCredentials decrypts the configured connection settings. With no
// encryption key the stored values are used as-is. A value that fails
// to decrypt is left empty so the gateway reports credentials_error on
// first use rather than connecting with garbage.
func loadCredentials(cfg *config.Config) (gateway.Credentials, error) {
	var dec secrets.Decryptor = secrets.Plaintext{}
	if cfg.EncryptionKey != "" {
		aes, err := secrets.NewAESGCM(cfg.EncryptionKey)
		if err != nil {
			return gateway.Credentials{}, err
		}
		dec = aes
	}

	decrypt := func(v string) string {
		if v == "" {
			return ""
		}
		plain, err := dec.Decrypt(v)
		if err != nil {
			return ""
		}
		return plain
	}

	return gateway.Credentials{
		Host: decrypt(cfg.DBHost),
		Name: decrypt(cfg.DBName),
		User: decrypt(cfg.DBUser),
		Pass: decrypt(cfg.DBPass),
	}, nil
}
