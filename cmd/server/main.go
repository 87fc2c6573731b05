package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/Canvas/internal/adapters/http"
	wssignal "github.com/dkeye/Canvas/internal/adapters/signal"
	"github.com/dkeye/Canvas/internal/app"
	"github.com/dkeye/Canvas/internal/app/orch"
	"github.com/dkeye/Canvas/internal/board"
	"github.com/dkeye/Canvas/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Logger first so config loading can report.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	policy, err := app.ParsePolicy(cfg.SlowClient)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid slow client policy")
	}

	reg := app.NewRegistry()
	hub := wssignal.NewHub(policy)
	dispatcher := orch.NewDispatcher(reg, hub, orch.Options{
		RequireSharedVoiceRoom: cfg.Signal.RequireSharedVoiceRoom,
	})
	limiter := wssignal.NewRateLimiter(cfg.RateLimit.Events, cfg.RateLimit.Interval)
	ctl := wssignal.NewSignalWSController(dispatcher, hub, limiter, wssignal.Options{
		ReadLimit:      cfg.ReadLimit,
		PingPeriod:     cfg.PingPeriod,
		PongWait:       cfg.PongWait,
		WriteWait:      cfg.WriteWait,
		SendBuffer:     cfg.SendBuffer,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	var inner board.Store = board.NewMemoryStore()
	if cfg.Store.Mode == config.StoreNone {
		inner = board.UnavailableStore{}
	}

	r := router.SetupRouter(ctx, cfg, router.Deps{
		Signal:     ctl,
		Rooms:      reg,
		Boards:     board.NewFallbackStore(inner),
		ICEServers: cfg.WebRTCICEServers(),
	})
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Canvas relay started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Int("sessions", reg.SessionCount()).Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
