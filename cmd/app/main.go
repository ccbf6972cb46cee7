package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tixhook/internal/config"
	"tixhook/internal/dispatch"
	"tixhook/internal/httpx"
	"tixhook/internal/logger"
	"tixhook/internal/models"
	"tixhook/internal/pipeline"
	"tixhook/internal/rabbit"
	"tixhook/internal/repo"
	"tixhook/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New("tixhook", cfg.Common.LogLevel)

	ctxDB, cancelDB := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelDB()
	db, err := pgxpool.New(ctxDB, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("pg connect failed")
	}
	defer db.Close()

	attendees := &repo.AttendeesPG{DB: db}
	tickets := &repo.TicketsPG{DB: db}
	settings := &repo.SettingsPG{DB: db}

	rc, err := rabbit.Connect(cfg.Rabbit.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("rabbit connect failed")
	}
	defer func() { _ = rc.Close() }()

	if err := rabbit.DeclareBase(rc.Ch); err != nil {
		log.Fatal().Err(err).Msg("declare base failed")
	}

	if err := rabbit.DeclareQueueWithDLQ(rc.Ch, rabbit.QueueSpec{
		Name:     "tixhook.q",
		BindKeys: []string{"payment.result"},
		DLQKey:   "tixhook.dlq",
		Prefetch: 10,
	}); err != nil {
		log.Fatal().Err(err).Msg("declare tixhook topology failed")
	}

	deliveries, err := rabbit.NewConsumer(rc.Ch).Consume("tixhook.q", 10)
	if err != nil {
		log.Fatal().Err(err).Msg("consume failed")
	}

	pipe := &pipeline.Pipeline{
		Log:       log,
		Attendees: attendees,
		Tickets:   tickets,
		Hooks:     settings,
		Dispatch:  dispatch.NewWebhook(30 * time.Second),
		EventName: cfg.Site.EventName,
		SiteURL:   cfg.Site.URL,
	}

	w := &worker.Consumer{
		Log:         log,
		Pipe:        pipe,
		RetryPub:    rabbit.NewPublisher(rc.Ch, rabbit.ExchangeRetry),
		DLQPub:      rabbit.NewPublisher(rc.Ch, rabbit.ExchangeDLX),
		Service:     "tixhook",
		MaxAttempts: 0,
		DLQKey:      "tixhook.dlq",
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(appCtx, deliveries)

	eventsPub := rabbit.NewPublisher(rc.Ch, rabbit.ExchangeEvents)

	hooks := &httpx.HooksHandler{
		All: func(r *http.Request) (map[int]string, error) {
			return settings.AllHooks(r.Context())
		},
		Save: func(r *http.Request, in map[int]string) (map[int]string, error) {
			return settings.SaveHooks(r.Context(), in)
		},
	}
	fire := &httpx.FireHandler{
		Publish: func(r *http.Request, evt models.Event[models.PaymentResultPayload]) error {
			pubCtx, cancel := rabbit.WithTimeout(r.Context())
			defer cancel()
			return eventsPub.PublishJSON(pubCtx, evt.Type, evt, nil)
		},
	}

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: httpx.NewRouter(&httpx.Handlers{
			Health:   httpx.Health,
			GetHooks: hooks.Get,
			PutHooks: hooks.Put,
			Fire:     fire.ServeHTTP,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http failed")
		}
	}()

	log.Info().Msg("tixhook started")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutdown...")

	cancel()
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
}
