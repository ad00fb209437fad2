package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/m04kA/mehndi-booking-service/internal/api"
	availableSlotsHandler "github.com/m04kA/mehndi-booking-service/internal/api/handlers/available_slots"
	bookEventHandler "github.com/m04kA/mehndi-booking-service/internal/api/handlers/book_event"
	bookingOptionsHandler "github.com/m04kA/mehndi-booking-service/internal/api/handlers/booking_options"
	bookingStatusHandler "github.com/m04kA/mehndi-booking-service/internal/api/handlers/booking_status"
	cancelEventHandler "github.com/m04kA/mehndi-booking-service/internal/api/handlers/cancel_event"
	healthHandler "github.com/m04kA/mehndi-booking-service/internal/api/handlers/health"
	listEventsHandler "github.com/m04kA/mehndi-booking-service/internal/api/handlers/list_events"
	paymentWebhookHandler "github.com/m04kA/mehndi-booking-service/internal/api/handlers/payment_webhook"
	"github.com/m04kA/mehndi-booking-service/internal/api/middleware"
	"github.com/m04kA/mehndi-booking-service/internal/config"
	"github.com/m04kA/mehndi-booking-service/internal/infra/queue/rabbitmq"
	"github.com/m04kA/mehndi-booking-service/internal/infra/storage/migrations"
	"github.com/m04kA/mehndi-booking-service/internal/infra/storage/payments"
	"github.com/m04kA/mehndi-booking-service/internal/infra/storage/reconciliation"
	"github.com/m04kA/mehndi-booking-service/internal/integrations/emailjs"
	"github.com/m04kA/mehndi-booking-service/internal/integrations/googlecalendar"
	"github.com/m04kA/mehndi-booking-service/internal/integrations/stripepay"
	"github.com/m04kA/mehndi-booking-service/internal/service/availability"
	"github.com/m04kA/mehndi-booking-service/internal/service/catalog"
	"github.com/m04kA/mehndi-booking-service/internal/service/escalation"
	"github.com/m04kA/mehndi-booking-service/internal/service/events"
	"github.com/m04kA/mehndi-booking-service/internal/service/notifications"
	"github.com/m04kA/mehndi-booking-service/internal/service/pricing"
	"github.com/m04kA/mehndi-booking-service/internal/service/status"
	confirmPaymentUC "github.com/m04kA/mehndi-booking-service/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/mehndi-booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/mehndi-booking-service/internal/usecase/get_available_slots"
	"github.com/m04kA/mehndi-booking-service/pkg/dbmetrics"
	"github.com/m04kA/mehndi-booking-service/pkg/logger"
	"github.com/m04kA/mehndi-booking-service/pkg/metrics"
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log, migrateUp)
		},
	}
	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations before serving")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger, migrateUp bool) error {
	log = log.With("service", cfg.Metrics.ServiceName, "version", Version)
	log.Info("Starting mehndi-booking %s...", Version)

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Ledger database
	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Connected to database (host=%s, port=%d, db=%s)", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopPoolStats := make(chan struct{})
	defer close(stopPoolStats)
	var store *dbmetrics.DB
	if cfg.Metrics.Enabled {
		store = dbmetrics.WrapWithDefault(db, metricsCollector, stopPoolStats)
	} else {
		store = dbmetrics.Wrap(db, metricsCollector)
	}

	if migrateUp {
		if err := migrations.Up(ctx, store, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Booking rules
	schedule, err := cfg.Schedule()
	if err != nil {
		return err
	}
	calculator, err := pricing.NewCalculator(cfg.PricingRules())
	if err != nil {
		return err
	}

	// Collaborators
	calendarClient, err := googlecalendar.NewClient(ctx, googlecalendar.Config{
		CalendarID:      cfg.Calendar.CalendarID,
		CredentialsFile: cfg.Calendar.CredentialsFile,
		Location:        schedule.Location,
		Timeout:         config.Seconds(cfg.Calendar.Timeout),
	}, log, metricsCollector)
	if err != nil {
		return fmt.Errorf("calendar client: %w", err)
	}

	stripeClient, err := stripepay.NewClient(stripepay.Config{
		SecretKey:         cfg.Stripe.SecretKey,
		WebhookSecret:     cfg.Stripe.WebhookSecret,
		WebhookTolerance:  config.Seconds(cfg.Stripe.WebhookTolerance),
		Timeout:           config.Seconds(cfg.Stripe.Timeout),
		MaxNetworkRetries: cfg.Stripe.MaxNetworkRetries,
	}, log, metricsCollector)
	if err != nil {
		return fmt.Errorf("stripe client: %w", err)
	}

	emailClient := emailjs.NewClient(emailjs.Config{
		BaseURL:    cfg.EmailJS.BaseURL,
		ServiceID:  cfg.EmailJS.ServiceID,
		PublicKey:  cfg.EmailJS.PublicKey,
		PrivateKey: cfg.EmailJS.PrivateKey,
		Timeout:    config.Seconds(cfg.EmailJS.Timeout),
	}, log, metricsCollector)

	// Escalations go to the database and, when configured, to RabbitMQ
	sinks := []escalation.Sink{reconciliation.NewRepository(store)}
	if cfg.RabbitMQ.URL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, escalations stay in the database: %v", err)
		} else {
			defer publisher.Close()
			sinks = append(sinks, publisher)
			log.Info("Escalations published to exchange %s", cfg.RabbitMQ.Exchange)
		}
	}

	// Services and use cases
	ledger := payments.NewRepository(store)
	checker := availability.NewChecker(calendarClient, log)
	notifier := notifications.NewService(emailClient, notifications.Templates{
		Owner:      cfg.EmailJS.OwnerTemplateID,
		Customer:   cfg.EmailJS.CustomerTemplateID,
		Refund:     cfg.EmailJS.RefundTemplateID,
		OwnerEmail: cfg.EmailJS.OwnerEmail,
	}, schedule.Location, log)
	escalator := escalation.NewFanout(log, sinks...)
	eventsSvc := events.NewService(calendarClient, schedule, log)
	statusSvc := status.NewService(ledger, log)
	catalogSvc := catalog.NewService(calculator, schedule, cfg.Booking.Currency, cfg.Booking.RequireTerms, log)

	createBooking := createBookingUC.NewUseCase(
		schedule,
		calculator,
		checker,
		stripeClient,
		metricsCollector,
		createBookingUC.Policy{RequireTerms: cfg.Booking.RequireTerms, Currency: cfg.Booking.Currency},
		log,
	)
	confirmPayment := confirmPaymentUC.NewUseCase(
		schedule,
		ledger,
		calendarClient,
		checker,
		stripeClient,
		notifier,
		escalator,
		metricsCollector,
		confirmPaymentUC.Options{
			MaxAttempts:  cfg.Booking.WebhookMaxAttempts,
			ClaimTimeout: config.Seconds(cfg.Booking.WebhookClaimTimeout),
		},
		log,
	)
	getAvailableSlots := getAvailableSlotsUC.NewUseCase(schedule, checker, calculator, log)

	// Handlers
	webhook := paymentWebhookHandler.NewHandler(stripeClient, confirmPayment, log)
	handlers := api.Handlers{
		BookEvent:      bookEventHandler.NewHandler(createBooking, log).Handle,
		Webhook:        webhook.Handle,
		WebhookAlive:   webhook.Alive,
		ListEvents:     listEventsHandler.NewHandler(eventsSvc, log).Handle,
		AvailableSlots: availableSlotsHandler.NewHandler(getAvailableSlots, log).Handle,
		CancelEvent:    cancelEventHandler.NewHandler(eventsSvc, log).Handle,
		BookingOptions: bookingOptionsHandler.NewHandler(catalogSvc).Handle,
		BookingStatus:  bookingStatusHandler.NewHandler(statusSvc, log).Handle,
		Health:         healthHandler.NewHandler(db, log).Handle,
	}

	proxies, err := cfg.Server.Proxies()
	if err != nil {
		return err
	}

	opts := api.Options{
		Logger: log,
		CORS: middleware.CORSPolicy{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: cfg.CORS.AllowedMethods,
			AllowedHeaders: cfg.CORS.AllowedHeaders,
			MaxAge:         config.Seconds(cfg.CORS.MaxAge),
		},
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		TrustedProxies:  middleware.TrustedProxies(proxies),
		LimiterFailOpen: cfg.RateLimit.FailOpen,
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = metricsCollector
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = promhttp.Handler()
	}
	if cfg.RateLimit.Enabled {
		limiter, closeLimiter := newBookingLimiter(ctx, cfg.RateLimit, log)
		defer closeLimiter()
		opts.BookingLimiter = limiter
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      api.NewRouter(handlers, opts),
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeout),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Seconds(cfg.Server.IdleTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Seconds(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		return err
	}
	log.Info("Server stopped gracefully")
	return nil
}

// newBookingLimiter picks the shared Redis limiter when an address is
// configured and the in-process limiter otherwise
func newBookingLimiter(ctx context.Context, cfg config.RateLimitConfig, log *logger.Logger) (middleware.Limiter, func()) {
	window := config.Seconds(cfg.WindowSeconds)
	if cfg.RedisAddr == "" {
		log.Info("Rate limit: %d requests per %s per IP (in-process)", cfg.Requests, window)
		return middleware.NewLocalLimiter(cfg.Requests, window), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis at %s not reachable yet: %v", cfg.RedisAddr, err)
	}
	log.Info("Rate limit: %d requests per %s per IP (redis %s)", cfg.Requests, window, cfg.RedisAddr)
	return middleware.NewRedisLimiter(rdb, cfg.Requests, window, cfg.RedisPrefix), func() { _ = rdb.Close() }
}
