package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harpsglobal/harps-portal-backend/api/controllers"
	"github.com/harpsglobal/harps-portal-backend/api/middleware"
	"github.com/harpsglobal/harps-portal-backend/internal/addresses"
	"github.com/harpsglobal/harps-portal-backend/internal/cart"
	"github.com/harpsglobal/harps-portal-backend/internal/catalog"
	"github.com/harpsglobal/harps-portal-backend/internal/invoice"
	"github.com/harpsglobal/harps-portal-backend/internal/orders"
	"github.com/harpsglobal/harps-portal-backend/internal/profiles"
	"github.com/harpsglobal/harps-portal-backend/internal/settings"
	"github.com/harpsglobal/harps-portal-backend/internal/templates"
	"github.com/harpsglobal/harps-portal-backend/internal/tickets"
	"github.com/harpsglobal/harps-portal-backend/pkg/config"
	"github.com/harpsglobal/harps-portal-backend/pkg/logger"
	pkgredis "github.com/harpsglobal/harps-portal-backend/pkg/redis"
)

// Services bundles everything the HTTP layer dispatches to.
type Services struct {
	Catalog   catalog.Service
	Cart      cart.Service
	Addresses addresses.Service
	Profiles  profiles.Service
	Orders    orders.Service
	Tickets   tickets.Service
	Templates templates.Service
	Settings  settings.Service
	Invoice   invoice.Service
}

// NewRouter assembles the portal's HTTP surface.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	health map[string]controllers.Pinger,
	gatherer prometheus.Gatherer,
	redisClient *pkgredis.Client,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, health))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		if redisClient != nil {
			r.Use(middleware.Idempotency(redisClient, logg))
		}

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(svcs.Catalog, logg))
			r.Get("/{productId}", controllers.CatalogGet(svcs.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddLine(svcs.Cart, logg))
			r.Patch("/items", controllers.CartUpdateLine(svcs.Cart, logg))
			r.Delete("/items", controllers.CartRemoveLine(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrdersSubmit(svcs.Orders, logg))
			r.Get("/", controllers.OrdersList(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrdersGet(svcs.Orders, logg))
			r.Get("/{orderId}/export/pdf", controllers.OrderExportPDF(svcs.Orders, svcs.Profiles, svcs.Invoice, logg))
			r.Get("/{orderId}/export/xlsx", controllers.OrderExportXLSX(svcs.Orders, svcs.Profiles, svcs.Invoice, logg))
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", controllers.AddressesList(svcs.Addresses, logg))
			r.Post("/", controllers.AddressCreate(svcs.Addresses, logg))
			r.Put("/{addressId}", controllers.AddressUpdate(svcs.Addresses, logg))
			r.Delete("/{addressId}", controllers.AddressDelete(svcs.Addresses, logg))
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(svcs.Profiles, logg))
			r.Put("/", controllers.ProfileUpdate(svcs.Profiles, logg))
		})

		r.Route("/tickets", func(r chi.Router) {
			r.Post("/", controllers.TicketsCreate(svcs.Tickets, logg))
			r.Get("/", controllers.TicketsList(svcs.Tickets, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrdersList(svcs.Orders, logg))
				r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(svcs.Orders, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.AdminProductCreate(svcs.Catalog, logg))
				r.Put("/{productId}", controllers.AdminProductUpdate(svcs.Catalog, logg))
				r.Delete("/{productId}", controllers.AdminProductDelete(svcs.Catalog, logg))
				r.Post("/import", controllers.AdminProductsImport(svcs.Catalog, logg))
			})

			r.Route("/templates", func(r chi.Router) {
				r.Get("/", controllers.TemplatesList(svcs.Templates, logg))
				r.Get("/{slug}", controllers.TemplateGet(svcs.Templates, logg))
				r.Put("/{slug}", controllers.TemplateUpdate(svcs.Templates, logg))
			})

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", controllers.AdminTicketsList(svcs.Tickets, logg))
				r.Patch("/{ticketId}/status", controllers.AdminTicketUpdateStatus(svcs.Tickets, logg))
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/{key}", controllers.SettingGet(svcs.Settings, logg))
				r.Put("/{key}", controllers.SettingPut(svcs.Settings, logg))
			})
		})
	})

	return r
}
