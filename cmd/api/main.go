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
	"github.com/tu-usuario/sklad-pro/internal/application/auth"
	"github.com/tu-usuario/sklad-pro/internal/application/operations"
	"github.com/tu-usuario/sklad-pro/internal/application/report"
	"github.com/tu-usuario/sklad-pro/internal/application/stats"
	"github.com/tu-usuario/sklad-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/sklad-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/sklad-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/sklad-pro/internal/infrastructure/qrcode"
	"github.com/tu-usuario/sklad-pro/internal/infrastructure/xmlexport"
	httpRouter "github.com/tu-usuario/sklad-pro/internal/interfaces/http"
	"github.com/tu-usuario/sklad-pro/pkg/config"
	"github.com/tu-usuario/sklad-pro/pkg/logger"
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

	// Repositorios
	userRepo := postgres.NewUserRepository(pool)
	organizationRepo := postgres.NewOrganizationRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	operationRepo := postgres.NewOperationRepository(pool)
	inviteRepo := postgres.NewInviteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Estadísticas: agregador con fan-out + coordinador de recálculos
	aggregator := stats.NewAggregator(documentRepo, itemRepo, warehouseRepo, log)
	recomputer := stats.NewRecomputer(aggregator, log, time.Duration(cfg.Stats.RecomputeTimeoutSeconds)*time.Second)

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, organizationRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	organizationUC := usecase.NewOrganizationUseCase(organizationRepo, userRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	documentUC := usecase.NewDocumentUseCase(documentRepo, itemRepo, xmlexport.NewWaybillBuilder())
	inviteUC := usecase.NewInviteUseCase(inviteRepo, userRepo, qrcode.NewGenerator(), time.Duration(cfg.Invite.TTLHours)*time.Hour)
	submitUC := operations.NewSubmitUseCase(txRunner, itemRepo, warehouseRepo)
	historyUC := operations.NewHistoryUseCase(operationRepo)
	reportUC := report.NewUseCase(warehouseRepo, itemRepo, aggregator, infrapdf.NewMarotoReportGenerator())

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
		Title:    "Sklad Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OrganizationUC: organizationUC,
		WarehouseUC:    warehouseUC,
		ItemUC:         itemUC,
		DocumentUC:     documentUC,
		InviteUC:       inviteUC,
		SubmitUC:       submitUC,
		HistoryUC:      historyUC,
		ReportUC:       reportUC,
		Recomputer:     recomputer,
		JWTSecret:      cfg.JWT.Secret,
		InviteQRSize:   cfg.Invite.QRSize,
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
