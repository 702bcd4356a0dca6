package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/torqueworks/garageledger-backend/api/controllers"
	"github.com/torqueworks/garageledger-backend/api/middleware"
	"github.com/torqueworks/garageledger-backend/internal/ledger"
	"github.com/torqueworks/garageledger-backend/internal/reports"
	"github.com/torqueworks/garageledger-backend/pkg/config"
	"github.com/torqueworks/garageledger-backend/pkg/logger"
	"github.com/torqueworks/garageledger-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	storePinger controllers.StoragePinger,
	ledgerService ledger.Service,
	reportsService reports.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, storePinger))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", controllers.Dashboard(ledgerService, logg))

		r.Route("/parts", func(r chi.Router) {
			r.Get("/", controllers.ListParts(ledgerService, logg))
			r.Post("/", controllers.CreatePart(ledgerService, logg))
			r.Get("/low-stock", controllers.LowStockParts(ledgerService, logg))
			r.Get("/{partId}", controllers.GetPart(ledgerService, logg))
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", controllers.ListServices(ledgerService, logg))
			r.Post("/", controllers.CreateService(ledgerService, logg))
			r.Get("/{serviceId}", controllers.GetService(ledgerService, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(ledgerService, logg))
			r.Post("/", controllers.CreateCustomer(ledgerService, logg))
			r.Get("/{customerId}", controllers.GetCustomer(ledgerService, logg))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", controllers.ListInvoices(ledgerService, logg))
			r.Post("/", controllers.CreateInvoice(ledgerService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/sales-summary", controllers.SalesSummaryReport(reportsService, logg))
			r.Get("/popular-parts", controllers.PopularPartsReport(reportsService, logg))
			r.Get("/service-popularity", controllers.ServicePopularityReport(reportsService, logg))
		})
	})

	return r
}
