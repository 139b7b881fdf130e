package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"precinct-backend/config"
	"precinct-backend/internal/jobs"
	"precinct-backend/internal/model"
	"precinct-backend/internal/notify"
	"precinct-backend/internal/routes"
	"precinct-backend/internal/storage"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log.Println("1. Starting precinct backend, loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	log.Println("2. Connecting to database...")
	config.ConnectDB(cfg)

	store, err := storage.New(context.Background(), cfg.S3Bucket, cfg.UploadDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	alerter := notify.NewAlerter(cfg.SlackToken, cfg.SlackChannel)

	log.Println("3. Database ready, registering routes...")
	svc := routes.NewServices(config.DB, cfg, mailer, alerter, store)

	app := fiber.New(fiber.Config{
		AppName:      "precinct-backend",
		BodyLimit:    (cfg.MaxUploadMB + 1) * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: allowOrigins(cfg.CORSOrigins)}))
	app.Use(logger.New())

	routes.Setup(app, svc)

	var scheduler *jobs.Scheduler
	if cfg.CronEnabled {
		scheduler = jobs.NewScheduler(cfg.Location(), map[string]jobs.Completer{
			model.KindLeave:    svc.Leave,
			model.KindOvertime: svc.Overtime,
			model.KindTraining: svc.Training,
			model.KindCourt:    svc.Court,
		}, svc.Court, svc.Notifications)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("jobs: %v", err)
		}
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down...")
		if scheduler != nil {
			scheduler.Stop()
		}
		_ = app.Shutdown()
	}()

	log.Printf("4. Server ready, listening on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func allowOrigins(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}

// errorHandler keeps error replies in the {"error": ...} shape handlers use.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(code).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
