package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	l10n "github.com/goliatone/go-cms-l10n"
	"github.com/goliatone/go-cms-l10n/pkg/storage"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("l10nd: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("l10nd", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a TOML config file (defaults are used when empty)")
	envFile := fs.String("env-file", ".env", "Optional dotenv file read before the config")
	migrate := fs.Bool("migrate", false, "Apply the embedded SQL migrations before serving")
	addr := fs.String("addr", "", "Listen address (overrides http.addr)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", *envFile, err)
		}
	}

	cfg := l10n.DefaultConfig()
	if *configPath != "" {
		loaded, err := l10n.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	applyEnv(&cfg)
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []l10n.Option
	if storage.IsSQL(cfg.Storage.Provider) {
		db, err := storage.Open(storage.Config{Driver: cfg.Storage.Provider, DSN: cfg.Storage.DSN})
		if err != nil {
			return err
		}
		defer db.Close()
		if *migrate {
			if err := l10n.Migrate(ctx, db.DB, cfg.Storage.Provider); err != nil {
				return err
			}
		}
		opts = append(opts, l10n.WithBunDB(db))
	}

	module, err := l10n.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer module.Close()
	if err := module.Container().SettingsService().Watch(ctx); err != nil {
		return err
	}

	mux := http.NewServeMux()
	if err := module.RegisterRoutes(mux); err != nil {
		return err
	}
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("l10nd: serving %s on %s", cfg.HTTP.BasePath, cfg.HTTP.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// applyEnv lets the environment override storage and listen settings.
func applyEnv(cfg *l10n.Config) {
	if value := strings.TrimSpace(os.Getenv("L10N_STORAGE_PROVIDER")); value != "" {
		cfg.Storage.Provider = value
	}
	if value := strings.TrimSpace(os.Getenv("L10N_STORAGE_DSN")); value != "" {
		cfg.Storage.DSN = value
	}
	if value := strings.TrimSpace(os.Getenv("L10N_HTTP_ADDR")); value != "" {
		cfg.HTTP.Addr = value
	}
}
