// Package app assembles the gateway from configuration: stores, BaaS
// clients, repositories, services and the fiber application.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ambientefest/docs"
	"ambientefest/internal/baas"
	"ambientefest/internal/cache"
	"ambientefest/internal/config"
	handlers "ambientefest/internal/http/handler"
	"ambientefest/internal/http/middleware"
	"ambientefest/internal/notify"
	"ambientefest/internal/repository/kv"
	"ambientefest/internal/repository/xano"
	"ambientefest/internal/service"
	"ambientefest/internal/session"
	"ambientefest/internal/storage"
)

const (
	// bodyLimit leaves room for several images per multipart request.
	bodyLimit           = 64 << 20
	memorySweepInterval = time.Minute
)

// App is the assembled gateway.
type App struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Fiber    *fiber.App
	Registry *prometheus.Registry

	Auth service.AuthService

	kv cache.Store
}

// New wires every component from cfg. The caller owns Close.
func New(cfg *config.AppConfig, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	kvStore, err := newKV(cfg, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	baasMetrics, err := baas.NewMetrics(reg)
	if err != nil {
		_ = kvStore.Close()
		return nil, fmt.Errorf("register baas metrics: %w", err)
	}

	clientOpts := func(name, baseURL string) baas.Options {
		return baas.Options{
			Name:          name,
			BaseURL:       baseURL,
			Timeout:       cfg.BaaS.Timeout(),
			UploadTimeout: cfg.BaaS.UploadTimeout(),
			MaxRetries:    cfg.BaaS.MaxRetries,
			Cache:         kvStore,
			Logger:        logger,
			Metrics:       baasMetrics,
		}
	}
	storeClient := baas.New(clientOpts("store", cfg.BaaS.StoreURL))
	authClient := baas.New(clientOpts("auth", cfg.BaaS.AuthURL))

	repos := xano.New(storeClient, authClient, cfg.BaaS.FileBaseURL)
	drafts := kv.NewDraftCartStore(kvStore)

	imageStore, err := newImageStore(cfg, storeClient)
	if err != nil {
		_ = kvStore.Close()
		return nil, err
	}

	notifier, err := notify.New(cfg.SMTP)
	if err != nil {
		_ = kvStore.Close()
		return nil, fmt.Errorf("init notifier: %w", err)
	}

	tokens := session.NewManager(cfg.Session.JWTSecret, cfg.Session.TTL())
	sessions := session.NewStore(kvStore, cfg.Session.TTL())

	images := service.NewImageService(imageStore, cfg.Images.MaxBytes)
	catalog := service.NewCatalogService(repos.Services, repos.Categories, images, time.Duration(cfg.Cache.DefaultTTLSec)*time.Second)
	cart := service.NewCartService(drafts, repos.Carts, repos.Services, repos.Payments, cfg.Checkout.TaxRate, cfg.Checkout.Currency, logger)
	schedule := service.NewScheduleService(repos.TimeSlots, repos.Reservations, repos.Services, cart, logger, nil)
	payments := service.NewPaymentService(repos.Payments, repos.Users, repos.Carts, logger)
	auth := service.NewAuthService(repos.Auth, repos.Users, sessions, tokens, logger)
	users := service.NewUserService(repos.Users, repos.Roles, sessions, logger)
	blogs := service.NewBlogService(repos.Blogs, repos.Comments, repos.Categories, images)
	contacts := service.NewContactService(repos.Contacts, notifier, logger)

	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		_ = kvStore.Close()
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    bodyLimit,
	})
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(promMW.Handler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", swaggerHandler)

	handlers.RegisterRoutes(app, handlers.Deps{
		Backend:  storeClient,
		Tokens:   tokens,
		Sessions: sessions,
		Auth:     auth,
		Catalog:  catalog,
		Schedule: schedule,
		Cart:     cart,
		Payments: payments,
		Blogs:    blogs,
		Contacts: contacts,
		Users:    users,
		Images:   images,
	})

	return &App{
		Config:   cfg,
		Logger:   logger,
		Fiber:    app,
		Registry: reg,
		Auth:     auth,
		kv:       kvStore,
	}, nil
}

// swaggerMu guards docs.SwaggerInfo, which the swagger handler reads while
// rendering.
var swaggerMu sync.Mutex

// swaggerHandler serves the UI with the host and scheme of the request.
func swaggerHandler(c *fiber.Ctx) error {
	scheme := c.Protocol()
	if proto := c.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	host := utils.CopyString(c.Get(fiber.HeaderHost))
	scheme = utils.CopyString(scheme)

	swaggerMu.Lock()
	defer swaggerMu.Unlock()
	docs.SwaggerInfo.Host = host
	docs.SwaggerInfo.Schemes = []string{scheme}
	return swagger.HandlerDefault(c)
}

func newKV(cfg *config.AppConfig, logger *zap.Logger) (cache.Store, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("using in-memory store")
		return cache.NewMemoryWithSweep(memorySweepInterval), nil
	}
	store, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info("using redis store", zap.String("addr", cfg.Redis.Addr))
	return store, nil
}

func newImageStore(cfg *config.AppConfig, storeClient *baas.Client) (storage.ImageStore, error) {
	switch cfg.Images.Store {
	case "", "baas":
		return storage.NewBaaSImageStore(storeClient, cfg.BaaS.UploadField, cfg.BaaS.FileBaseURL), nil
	case "minio":
		objects, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("init object storage: %w", err)
		}
		return storage.NewObjectImageStore(objects, cfg.MinIO.PublicURL), nil
	default:
		return nil, fmt.Errorf("unknown IMAGE_STORE %q", cfg.Images.Store)
	}
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (a *App) Serve(ctx context.Context) error {
	addr := ":" + a.Config.Port
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", zap.String("addr", addr))
		errCh <- a.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close releases the key/value store.
func (a *App) Close() error {
	return a.kv.Close()
}
