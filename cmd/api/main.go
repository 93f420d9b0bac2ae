package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/Proveo-api/internal/application/auth"
	"github.com/jhoicas/Proveo-api/internal/application/index"
	"github.com/jhoicas/Proveo-api/internal/application/usecase"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/image"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/translator"
	httpRouter "github.com/jhoicas/Proveo-api/internal/interfaces/http"
	"github.com/jhoicas/Proveo-api/pkg/config"
	"github.com/jhoicas/Proveo-api/pkg/logger"
	"github.com/jhoicas/Proveo-api/pkg/retry"
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

	if cfg.DB.AutoMigrate {
		migrator, err := postgres.NewMigrator(cfg.DB.ConnectionString(), postgres.MigrationsFS, log)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar migraciones")
		}
		err = migrator.Up(ctx)
		migrator.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
	}

	rec := metrics.New()
	txRunner := postgres.NewTxRunner(pool, retry.Policy{
		MaxAttempts: cfg.Retry.Attempts,
		Multiplier:  cfg.Retry.WaitMultiplier,
		MaxWait:     cfg.Retry.MaxWait,
	}, log, rec)

	searchIndex := postgres.NewSearchIndex(pool)
	refresher := index.NewRefresher(searchIndex, index.Options{
		Concurrent: cfg.Search.RefreshConcurrent,
		Timeout:    cfg.Search.RefreshTimeout,
	}, log, rec)

	images, err := image.NewResolver(cfg.Images.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de imágenes")
	}
	tr := translator.New(cfg.Translator.AnthropicAPIKey, cfg.Translator.AnthropicModel, cfg.Translator.Timeout)
	if _, ok := tr.(translator.Noop); ok {
		log.Warn().Msg("ANTHROPIC_API_KEY vacío: los nombres de producto no se traducen")
	}

	companyUC := usecase.NewCompanyUseCase(txRunner, refresher, images, log)
	productUC := usecase.NewProductUseCase(txRunner, refresher, tr, log)
	communeUC := usecase.NewCommuneUseCase(txRunner, refresher, log)
	userUC := usecase.NewUserUseCase(txRunner, refresher, log)
	searchUC := usecase.NewSearchUseCase(searchIndex, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	authUC := auth.NewAuthUseCase(txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	app := httpRouter.NewApp(cfg.App.Name, log, rec)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Proveo API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC: companyUC,
		ProductUC: productUC,
		CommuneUC: communeUC,
		UserUC:    userUC,
		SearchUC:  searchUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
		Metrics:   rec,
		AppName:   cfg.App.Name,
		Log:       log,
		Health: func(ctx context.Context) (map[string]any, error) {
			details := map[string]any{"db": postgres.Stats(pool)}
			return details, pool.Ping(ctx)
		},
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
