package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"elyseeWeb/internal/config"
	content "elyseeWeb/internal/modules/content/infrastructure"
	handler "elyseeWeb/internal/modules/realtime/application/handler"
	usecase "elyseeWeb/internal/modules/realtime/application/usecase"
	"elyseeWeb/internal/modules/realtime/infrastructure"
	transport "elyseeWeb/internal/modules/realtime/interface"
	"elyseeWeb/internal/modules/reservations/application/port"
	reservations "elyseeWeb/internal/modules/reservations/application/usecase"
	mail "elyseeWeb/internal/modules/reservations/infrastructure"
	site "elyseeWeb/internal/modules/site/interface"
	viewer "elyseeWeb/internal/modules/viewer/interface"
	"elyseeWeb/internal/platform/broker"
	"elyseeWeb/internal/shared/auth"
	"elyseeWeb/internal/shared/logging"
	"elyseeWeb/internal/shared/metrics"
)

func main() {
	// Load .env so local runs pick up configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := logging.Setup(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Directory: cfg.Logging.Directory,
		AddSource: cfg.Logging.AddSource,
	}, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()

	store, err := loadCatalog(ctx, cfg.Content, m, logger)
	if err != nil {
		slog.Error("catalog load failed", slog.Any("error", err))
		os.Exit(1)
	}

	hub := infrastructure.NewHub()
	registry := infrastructure.NewHandlerRegistry()
	broadcastUC := usecase.NewBroadcastUseCase(hub)

	relay := newEmailRelay(ctx, cfg)

	var publisher port.EventPublisher = mail.NewHubPublisher(hub)
	if cfg.Kafka.Enabled() {
		kafkaPublisher := mail.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.WriteTimeout)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		slog.Info("reservation events routed through kafka", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.Topic))
	}

	submitOpts := []reservations.SubmitOption{
		reservations.WithPublisher(publisher),
		reservations.WithObserver(m),
		reservations.WithLogger(logging.Component(logger, "reservations")),
	}
	if cfg.Telegram.Token != "" {
		notifier, err := mail.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			slog.Warn("telegram notifier disabled", slog.Any("error", err))
		} else {
			submitOpts = append(submitOpts, reservations.WithNotifier(notifier))
		}
	}
	submitUC := reservations.NewSubmitUseCase(relay, cfg.WhatsApp.Phone, submitOpts...)

	// Kafka carries reservation events back to the concierge stream.
	registry.Register(handler.NewReservationStreamHandler(broadcastUC))
	broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, []string{cfg.Kafka.Topic})

	var validator auth.TokenValidator
	if cfg.Security.ConciergeEnabled() {
		validator = auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey, cfg.Security.StaffRoles...)
	} else {
		slog.Warn("concierge stream disabled: no JWT key configured")
	}
	connectUC := usecase.NewConnectConciergeUseCase(validator, cfg.Concierge.Topics)
	upgrader := infrastructure.NewUpgrader(cfg.Server.AllowedOrigins)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Skipper: func(c echo.Context) bool { return strings.HasPrefix(c.Request().URL.Path, "/ws/") },
	}))

	e.GET("/ws/viewer/:dish", viewer.NewViewerWebsocketHandler(hub, store, upgrader, m))
	e.POST("/api/viewer/transform", viewer.NewTransformHandler(store))
	e.GET("/ws/concierge", transport.NewConciergeWebsocketHandler(hub, connectUC, upgrader, m))
	e.POST("/api/concierge/broadcast", transport.NewBroadcastHTTPHandler(broadcastUC), transport.RequireStaff(validator))
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	pages, err := site.NewSite(store, submitUC)
	if err != nil {
		slog.Error("site setup failed", slog.Any("error", err))
		os.Exit(1)
	}
	pages.Register(e)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer done()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.Any("error", err))
	}
	submitUC.Wait()
}

// loadCatalog reads the configured catalog, or the embedded one, and starts a
// file watcher when hot reload is on.
func loadCatalog(ctx context.Context, cfg config.ContentConfig, m *metrics.Metrics, logger *slog.Logger) (*content.Store, error) {
	if cfg.Path == "" {
		catalog, err := content.DefaultCatalog()
		if err != nil {
			return nil, err
		}
		return content.NewStore(catalog), nil
	}

	catalog, err := content.LoadCatalog(cfg.Path)
	if err != nil {
		return nil, err
	}
	store := content.NewStore(catalog)
	slog.Info("catalog loaded", slog.String("path", cfg.Path), slog.Int("dishes", len(catalog.Dishes)))

	if cfg.Watch {
		watcher, err := content.NewWatcher(cfg.Path, store, m, logging.Component(logger, "catalog"))
		if err != nil {
			slog.Warn("catalog hot reload disabled", slog.Any("error", err))
			return store, nil
		}
		go watcher.Run(ctx)
	}
	return store, nil
}

// newEmailRelay returns nil when no provider is usable; submissions then fail
// with the WhatsApp fallback offered to the guest.
func newEmailRelay(ctx context.Context, cfg *config.Config) port.EmailRelay {
	switch cfg.Email.Provider {
	case config.EmailProviderSES:
		relay, err := mail.NewSESRelay(ctx, cfg.SES.Region, cfg.SES.From, cfg.SES.To)
		if err != nil {
			slog.Warn("ses relay disabled", slog.Any("error", err))
			return nil
		}
		return relay
	case config.EmailProviderEmailJS:
		if !cfg.Email.EmailJSReady() {
			slog.Warn("emailjs relay disabled: service, template and public key are required")
			return nil
		}
		return mail.NewEmailJSClient(mail.EmailJSConfig{
			BaseURL:    cfg.Email.BaseURL,
			ServiceID:  cfg.Email.ServiceID,
			TemplateID: cfg.Email.TemplateID,
			PublicKey:  cfg.Email.PublicKey,
			PrivateKey: cfg.Email.PrivateKey,
			Timeout:    cfg.Email.Timeout,
		}, nil)
	default:
		slog.Info("email relay disabled")
		return nil
	}
}
