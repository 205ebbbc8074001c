package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/ordenes-pro/internal/application/auth"
	"github.com/tu-usuario/ordenes-pro/internal/application/ordenes"
	"github.com/tu-usuario/ordenes-pro/internal/application/proveedores"
	"github.com/tu-usuario/ordenes-pro/internal/application/reportes"
	infrapdf "github.com/tu-usuario/ordenes-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/ordenes-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/ordenes-pro/internal/interfaces/http"
	"github.com/tu-usuario/ordenes-pro/pkg/config"
	"github.com/tu-usuario/ordenes-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	ordenRepo := postgres.NewOrdenRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	comprobanteRepo := postgres.NewComprobanteRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ordenesUC := ordenes.NewUseCase(txRunner, ordenRepo, proveedorRepo)
	proveedoresUC := proveedores.NewUseCase(proveedorRepo, comprobanteRepo)
	estadoCuentaUC := reportes.NewEstadoCuentaUseCase(
		proveedorRepo, ordenRepo, infrapdf.NewMarotoEstadoCuentaGenerator(),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ordenes Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/api/ping", func(c *fiber.Ctx) error {
		var now time.Time
		if err := pool.QueryRow(c.Context(), "SELECT NOW()").Scan(&now); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"now": now})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrdenesUC:     ordenesUC,
		ProveedoresUC: proveedoresUC,
		EstadoCuenta:  estadoCuentaUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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
