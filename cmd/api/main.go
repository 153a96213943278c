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

	"github.com/arnesssr/nextpms-api/internal/application/adjustment"
	"github.com/arnesssr/nextpms-api/internal/application/inventory"
	"github.com/arnesssr/nextpms-api/internal/application/reorder"
	"github.com/arnesssr/nextpms-api/internal/application/summary"
	"github.com/arnesssr/nextpms-api/internal/infrastructure/postgres"
	httpRouter "github.com/arnesssr/nextpms-api/internal/interfaces/http"
	"github.com/arnesssr/nextpms-api/pkg/config"
	"github.com/arnesssr/nextpms-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	stockRepo := postgres.NewStockRecordRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	ruleRepo := postgres.NewReorderRuleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	movementUC := inventory.NewRecordMovementUseCase(txRunner, movementRepo)
	stockUC := inventory.NewStockUseCase(txRunner, stockRepo)
	adjustmentUC := adjustment.NewWorkflowUseCase(txRunner, adjustmentRepo, stockRepo)
	reorderUC := reorder.NewUseCase(ruleRepo, stockRepo, movementRepo)
	summaryUC := summary.NewUseCase(stockRepo, movementRepo, adjustmentRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "NextPMS Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Movements:  movementUC,
		Stock:      stockUC,
		Adjustment: adjustmentUC,
		Reorder:    reorderUC,
		Summary:    summaryUC,
		JWTSecret:  cfg.JWT.Secret,
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
