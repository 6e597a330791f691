// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal module packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"backoffice/internal/domain"
	httpapi "backoffice/internal/http"
	"backoffice/internal/member"
	memberhandler "backoffice/internal/member/handler"
	membermetrics "backoffice/internal/member/metrics"
	"backoffice/internal/order"
	orderhandler "backoffice/internal/order/handler"
	ordermetrics "backoffice/internal/order/metrics"
	"backoffice/internal/payment"
	paymenthandler "backoffice/internal/payment/handler"
	paymentmetrics "backoffice/internal/payment/metrics"
	"backoffice/internal/platform/config"
	"backoffice/internal/platform/httpserver"
	"backoffice/internal/platform/logger"
	platformmetrics "backoffice/internal/platform/metrics"
	platformmw "backoffice/internal/platform/middleware"
	platformredis "backoffice/internal/platform/redis"
	"backoffice/internal/platform/token"
	"backoffice/pkg/platform/events"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := map[string]httpapi.HealthCheck{}

	// Stores: postgres when DATABASE_URL is set, in-memory otherwise.
	var (
		memberStore  member.Store
		orderStore   order.Store
		paymentStore payment.Store
		eventStore   events.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		orderPg := order.NewPostgres(db)
		memberStore = member.NewPostgres(db)
		orderStore = orderPg
		paymentStore = payment.NewPostgres(db, orderPg)
		eventStore = events.NewPostgresStore(db)
		health["postgres"] = db.PingContext
		log.Info("using postgres stores")
	} else {
		memberStore = member.NewInMemory()
		orderStore = order.NewInMemory()
		paymentStore = payment.NewInMemory()
		eventStore = events.NewInMemoryStore()
		log.Warn("DATABASE_URL not set; using in-memory stores")
	}

	// Redis backs transaction-id idempotency when configured.
	var idempotency payment.IdempotencyStore = payment.NewInMemoryIdempotency()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		idempotency = payment.NewRedisIdempotency(redisClient.Client)
		health["redis"] = redisClient.Health
		log.Info("using redis idempotency store")
	}

	// Events flow through a buffered channel into the worker, which persists
	// them and optionally forwards to Kafka.
	inbox := make(chan events.Event, 256)
	publisher := events.NewChannelPublisher(inbox)
	workerOpts := []events.WorkerOption{events.WithWorkerLogger(log)}
	if len(cfg.KafkaBrokers) > 0 {
		sink, err := events.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		defer sink.Close()
		workerOpts = append(workerOpts, events.WithSink(sink))
		log.Info("kafka event sink enabled", "topic", cfg.KafkaTopic)
	}
	worker := events.NewWorker(eventStore, inbox, workerOpts...)

	memberMetrics := membermetrics.New()
	orderMetrics := ordermetrics.New()
	paymentMetrics := paymentmetrics.New()

	memberService := member.NewService(memberStore,
		member.WithLogger(log),
		member.WithPublisher(publisher),
		member.WithMetrics(memberMetrics),
	)
	orderService := order.NewService(orderStore, memberStore,
		order.WithLogger(log),
		order.WithPublisher(publisher),
		order.WithMetrics(orderMetrics),
		order.WithRules(domain.NewOrderRules(cfg.SettlementCurrency)),
	)
	paymentService := payment.NewService(paymentStore, orderStore,
		payment.WithLogger(log),
		payment.WithPublisher(publisher),
		payment.WithMetrics(paymentMetrics),
		payment.WithIdempotencyStore(idempotency),
	)

	var auth func(http.Handler) http.Handler
	if !cfg.AuthDisabled {
		tokens := token.NewService(cfg.JWTSigningKey, "backoffice", "backoffice-api")
		auth = platformmw.RequireAuth(tokens, log)
	} else {
		log.Warn("operator auth disabled")
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:  log,
		Metrics: platformmetrics.New(),
		Auth:    auth,
		Handlers: []httpapi.Registrar{
			memberhandler.New(memberService, log, memberMetrics),
			orderhandler.New(orderService, log, orderMetrics),
			paymenthandler.New(paymentService, log, paymentMetrics),
		},
		Health: health,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(ctx)
	})
	g.Go(func() error {
		log.Info("starting backoffice server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
