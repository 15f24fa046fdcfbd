package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"surveikita_web/internals/configs"
	database "surveikita_web/internals/databases"
	contactModel "surveikita_web/internals/features/home/contacts/model"
	surveyModel "surveikita_web/internals/features/surveys/model"
	"surveikita_web/internals/features/surveys/scheduler"
	"surveikita_web/internals/features/surveys/service"
	middlewares "surveikita_web/internals/middlewares"
	routes "surveikita_web/internals/route"
	"surveikita_web/internals/views"
)

func main() {
	logger := configs.InitLogger()
	defer func() { _ = logger.Sync() }()

	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		Views:                   views.NewEngine(),
		ErrorHandler:            errorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR proxy jika perlu
	})

	// ⚙️ middleware dasar + performa
	middlewares.SetupMiddlewares(app)
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing; timeout juga membatasi fetch & relay ke backend
	app.Use(middlewares.RequestIDMiddleware(20 * time.Second))

	// 🔌 DB (opsional) + pool + migrasi + warm-up
	database.ConnectDB()
	database.TunePool()
	database.Migrate(&contactModel.ContactLeadModel{}, &surveyModel.RelayAuditModel{})
	database.WarmUpQueries()

	// ⏱ scheduler setelah DB siap
	if database.DB != nil {
		reaper, err := scheduler.StartAuditReaperCron(
			service.NewGormAuditStore(database.DB),
			scheduler.AuditReaperConfigFromEnv(),
		)
		if err != nil {
			logger.Fatal("audit reaper gagal start", zap.Error(err))
		}
		defer reaper.Stop()
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	// Start server non-blocking
	go func() {
		logger.Info("✅ Listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close()
}
