// Command server runs the guidepost API: the merchant back office endpoints
// plus the guidance engine that turns merchant state into daily, weekly and
// monthly action tasks.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"guidepost/internal/config"
	"guidepost/internal/events"
	"guidepost/internal/guidance"
	"guidepost/internal/httpmw"
	"guidepost/internal/server"
	"guidepost/internal/shop"
	"guidepost/internal/store"
	"guidepost/internal/telemetry"
)

func main() {
	cfg, err := config.LoadOrDefault("guidepost.yml")
	if err != nil {
		fallbackLog := zap.Must(zap.NewProduction())
		fallbackLog.Fatal("load config", zap.Error(err))
	}
	cfg.ApplyEnv()

	log := newLogger(cfg.Log.Level)
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	bootAt := time.Now()

	repo, err := shop.NewFileRepo(cfg.Data.Dir, log.Named("shop"))
	if err != nil {
		return err
	}

	kv, err := store.OpenSQLite(filepath.Join(cfg.Data.Dir, "guidance.db"))
	if err != nil {
		return err
	}
	defer kv.Close()

	bus := events.NewBus()
	telem := telemetry.NewMemoryRepository()
	telemetry.BindBus(bus, telem, log.Named("telemetry"))

	svc := guidance.NewService(kv, guidance.RealClock{}, log.Named("guidance"), guidance.Options{
		TierCapacity: cfg.Guidance.TierCapacity,
		Windows: guidance.ResetWindows{
			Daily:   cfg.Guidance.DailyResetWindow.Std(),
			Weekly:  cfg.Guidance.WeeklyResetWindow.Std(),
			Monthly: cfg.Guidance.MonthlyResetWindow.Std(),
		},
		Telemetry: telem,
	}, repo.Snapshot)
	if err := svc.Load(); err != nil {
		return err
	}
	svc.Bind(bus)

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}
	server.RegisterMetaRoutes(mux, rr, bootAt)
	shop.NewHandler(repo, bus).Register(mux, rr)
	guidance.NewHandler(svc).Register(mux, rr)
	telemetry.NewHandler(telem).Register(mux, rr)

	handler := httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(log),
		httpmw.WithAccessLog(log.Named("http")),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Lazy reset poll: cheap no-op until a window has elapsed.
	go func() {
		ticker := time.NewTicker(cfg.Guidance.PollInterval.Std())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := svc.Tick(); err != nil {
					log.Warn("guidance tick failed", zap.Error(err))
				}
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zap.Must(cfg.Build())
}
