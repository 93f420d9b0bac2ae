package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Proveo-api/internal/application/auth"
	"github.com/jhoicas/Proveo-api/internal/application/usecase"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

// HealthFunc verifica dependencias y devuelve detalles para /health.
type HealthFunc func(ctx context.Context) (map[string]any, error)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC *usecase.CompanyUseCase
	ProductUC *usecase.ProductUseCase
	CommuneUC *usecase.CommuneUseCase
	UserUC    *usecase.UserUseCase
	SearchUC  *usecase.SearchUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
	Metrics   *metrics.Recorder // nil = sin /metrics
	Health    HealthFunc        // nil = siempre ok
	AppName   string
	Log       *logger.Logger // nil = sin logs de health
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1")
	authn := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleUser, entity.RoleAdmin)

	// Búsqueda (público)
	api.Get("/search", NewSearchHandler(deps.SearchUC).Search)

	// Users
	userHandler := NewUserHandler(deps.AuthUC, deps.UserUC)
	users := api.Group("/users")
	users.Post("/register", userHandler.Register)
	users.Post("/login", userHandler.Login)
	users.Post("/verify", userHandler.Verify)
	users.Get("/me", authn, anyRole, userHandler.Me)
	users.Delete("/me", authn, anyRole, userHandler.DeleteMe)

	// Companies: lectura pública, escritura autenticada
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies := api.Group("/companies")
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Post("/", authn, anyRole, companyHandler.Create)
	companies.Patch("/:id", authn, anyRole, companyHandler.Update)
	companies.Delete("/:id", authn, anyRole, companyHandler.Delete)

	// Products: lectura pública, escritura admin
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authn, adminOnly, productHandler.Create)
	products.Patch("/:id", authn, adminOnly, productHandler.Update)
	products.Delete("/:id", authn, adminOnly, productHandler.Delete)

	// Communes: lectura pública, escritura admin
	communeHandler := NewCommuneHandler(deps.CommuneUC)
	communes := api.Group("/communes")
	communes.Get("/", communeHandler.List)
	communes.Get("/:id", communeHandler.GetByID)
	communes.Post("/", authn, adminOnly, communeHandler.Create)
	communes.Patch("/:id", authn, adminOnly, communeHandler.Update)
	communes.Delete("/:id", authn, adminOnly, communeHandler.Delete)

	// Admin
	admin := api.Group("/admin", authn, adminOnly)
	admin.Delete("/companies/:id", companyHandler.AdminDelete)
	admin.Delete("/users/:id", userHandler.AdminDelete)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("health")
	return func(c *fiber.Ctx) error {
		body := fiber.Map{"status": "ok", "service": deps.AppName}
		if deps.Health == nil {
			return c.JSON(body)
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		details, err := deps.Health(ctx)
		for k, v := range details {
			body[k] = v
		}
		if err != nil {
			log.Error().Err(err).Msg("health check falló")
			body["status"] = "unavailable"
			body["error"] = "dependencias no disponibles"
			return c.Status(fiber.StatusServiceUnavailable).JSON(body)
		}
		return c.JSON(body)
	}
}
