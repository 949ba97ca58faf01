package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/comandahq/backoffice-backend/api/controllers"
	"github.com/comandahq/backoffice-backend/api/middleware"
	"github.com/comandahq/backoffice-backend/internal/categories"
	"github.com/comandahq/backoffice-backend/internal/companies"
	"github.com/comandahq/backoffice-backend/internal/modifiergroups"
	"github.com/comandahq/backoffice-backend/internal/products"
	"github.com/comandahq/backoffice-backend/internal/taxes"
	"github.com/comandahq/backoffice-backend/pkg/config"
	"github.com/comandahq/backoffice-backend/pkg/db"
	"github.com/comandahq/backoffice-backend/pkg/logger"
	"github.com/comandahq/backoffice-backend/pkg/metrics"
	pkgredis "github.com/comandahq/backoffice-backend/pkg/redis"
)

type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *pkgredis.Client
	Idempotency pkgredis.IdempotencyStore
	Metrics     *metrics.HTTPMetrics
	Companies   companies.Service
	Categories  categories.Service
	Taxes       taxes.Service
	Products    products.Service
	Groups      modifiergroups.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	defaultCompany := cfg.Defaults.DefaultCompanyID()

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}

	readyChecks := []controllers.Pinger{deps.DB}
	if deps.Redis != nil {
		readyChecks = append(readyChecks, deps.Redis)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyChecks...))
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if deps.Idempotency != nil {
			r.Use(middleware.Idempotency(deps.Idempotency, logg))
		}

		r.Route("/companies", func(r chi.Router) {
			r.Post("/", controllers.CreateCompany(deps.Companies, logg))
			r.Get("/", controllers.ListCompanies(deps.Companies, logg))
			r.Get("/{companyID}", controllers.GetCompany(deps.Companies, logg))
			r.Patch("/{companyID}", controllers.UpdateCompany(deps.Companies, logg))
			r.Delete("/{companyID}", controllers.DeleteCompany(deps.Companies, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CreateCategory(deps.Categories, defaultCompany, logg))
			r.Get("/", controllers.ListCategories(deps.Categories, defaultCompany, logg))
			r.Get("/{categoryID}", controllers.GetCategory(deps.Categories, defaultCompany, logg))
			r.Patch("/{categoryID}", controllers.UpdateCategory(deps.Categories, defaultCompany, logg))
			r.Delete("/{categoryID}", controllers.DeleteCategory(deps.Categories, defaultCompany, logg))
		})

		r.Route("/taxes", func(r chi.Router) {
			r.Post("/", controllers.CreateTax(deps.Taxes, defaultCompany, logg))
			r.Get("/", controllers.ListTaxes(deps.Taxes, defaultCompany, logg))
			r.Get("/{taxID}", controllers.GetTax(deps.Taxes, defaultCompany, logg))
			r.Patch("/{taxID}", controllers.UpdateTax(deps.Taxes, defaultCompany, logg))
			r.Delete("/{taxID}", controllers.DeleteTax(deps.Taxes, defaultCompany, logg))
		})

		r.Route("/modifier-groups", func(r chi.Router) {
			r.Post("/", controllers.CreateModifierGroup(deps.Groups, logg))
			r.Get("/", controllers.ListModifierGroups(deps.Groups, logg))
			r.Get("/{groupID}", controllers.GetModifierGroup(deps.Groups, logg))
			r.Put("/{groupID}", controllers.UpdateModifierGroup(deps.Groups, logg))
			r.Delete("/{groupID}", controllers.DeleteModifierGroup(deps.Groups, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(deps.Products, logg))
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/{productID}", controllers.GetProduct(deps.Products, logg))
			r.Patch("/{productID}", controllers.UpdateProduct(deps.Products, logg))
			r.Delete("/{productID}", controllers.DeleteProduct(deps.Products, logg))
		})
	})

	return r
}
