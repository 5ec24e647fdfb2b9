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

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/welcomedesk/visitors/internal/config"
	"github.com/welcomedesk/visitors/internal/db"
	"github.com/welcomedesk/visitors/internal/logger"
	"github.com/welcomedesk/visitors/internal/notify"
	"github.com/welcomedesk/visitors/internal/services"
	"github.com/welcomedesk/visitors/internal/store"
	"github.com/welcomedesk/visitors/internal/uploads"
	"github.com/welcomedesk/visitors/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Run serves until ctx is canceled.
func Run(ctx context.Context, args []string) error {
	app, err := setup(args)
	if err != nil {
		return err
	}
	defer app.close()
	return app.serve(ctx)
}

type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
	srv *http.Server
}

func setup(args []string) (*app, error) {
	fs := pflag.NewFlagSet("welcome-desk", pflag.ContinueOnError)
	cfgPath := fs.String("config", os.Getenv("WELCOME_CONFIG"), "path to a YAML config file")
	addr := fs.String("addr", "", "listen address (overrides ADDR)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return nil, err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	// A missing or broken database leaves the stores unconfigured; every
	// data request then fails with a configuration error.
	var conn *gorm.DB
	if cfg.StoreConfigured() {
		conn, err = db.Open(cfg.DatabasePath)
		if err != nil {
			log.Error("database unavailable, store left unconfigured",
				zap.String("path", cfg.DatabasePath), zap.Error(err))
			conn = nil
		}
	} else {
		log.Warn("no database configured, store left unconfigured")
	}

	up, err := uploads.New(cfg.UploadDir)
	if err != nil {
		_ = db.Close(conn)
		return nil, err
	}

	sender, from := notify.FromConfig(cfg.Email)
	if sender == nil {
		log.Warn("email not configured, visitor notifications disabled")
	}
	loc := cfg.Location()
	disp := notify.NewDispatcher(sender, notify.Options{
		From:     from,
		Location: loc,
		Timeout:  cfg.NotifyTimeout,
	}, log.Named("notify"))

	visitors := store.NewVisitorStore(conn)
	settings := store.NewSettingsStore(conn)

	h := web.Router(web.Deps{
		Visitors:        visitors,
		Submissions:     services.NewSubmission(visitors, settings, disp, log),
		Settings:        services.NewSettings(settings),
		Uploads:         up,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		PublicURL:       cfg.PublicURL,
		Location:        loc,
		StoreConfigured: conn != nil,
		Log:             log.Named("http"),
	})

	return &app{
		cfg: cfg,
		log: log,
		db:  conn,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           h,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (a *app) serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("welcome desk listening", zap.String("addr", a.cfg.Addr), zap.String("env", a.cfg.Env))
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.srv.Shutdown(shutdownCtx)
}

func (a *app) close() {
	if err := db.Close(a.db); err != nil {
		a.log.Warn("close database", zap.Error(err))
	}
	_ = a.log.Sync()
}
