package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/albaranes/albaranes-api/internal/application/auth"
	"github.com/albaranes/albaranes-api/internal/application/ports"
	"github.com/albaranes/albaranes-api/internal/application/usecase"
	inframail "github.com/albaranes/albaranes-api/internal/infrastructure/mail"
	infrapdf "github.com/albaranes/albaranes-api/internal/infrastructure/pdf"
	"github.com/albaranes/albaranes-api/internal/infrastructure/postgres"
	"github.com/albaranes/albaranes-api/internal/infrastructure/storage"
	httpRouter "github.com/albaranes/albaranes-api/internal/interfaces/http"
	"github.com/albaranes/albaranes-api/pkg/config"
	"github.com/albaranes/albaranes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	noteRepo := postgres.NewDeliveryNoteRepository(pool)

	// Notificador: por log en desarrollo, SMTP en producción.
	var notifier ports.Notifier
	if cfg.Mail.Driver == "smtp" {
		notifier = inframail.NewSMTPNotifier(cfg.Mail)
	} else {
		notifier = inframail.NewConsoleNotifier(log)
	}

	pinner := storage.NewPinataClient(cfg.Pinata)
	pdfGenerator := infrapdf.NewMarotoNoteGenerator()

	authUC := auth.NewUseCase(userRepo, notifier, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.App.PublicURL, log)
	userUC := usecase.NewUserUseCase(userRepo, pinner)
	clientUC := usecase.NewClientUseCase(clientRepo)
	projectUC := usecase.NewProjectUseCase(projectRepo, clientRepo)
	noteUC := usecase.NewDeliveryNoteUseCase(
		noteRepo, projectRepo, clientRepo, userRepo,
		pinner, pdfGenerator, cfg.App.PDFDir,
	)
	mailUC := usecase.NewMailUseCase(notifier)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024, // firmas y logos multipart
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Albaranes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		ClientUC:       clientUC,
		ProjectUC:      projectUC,
		DeliveryNoteUC: noteUC,
		MailUC:         mailUC,
		Users:          userRepo,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
