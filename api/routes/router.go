package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopcartlabs/shopcart-backend/api/controllers"
	"github.com/shopcartlabs/shopcart-backend/api/middleware"
	"github.com/shopcartlabs/shopcart-backend/internal/basket"
	products "github.com/shopcartlabs/shopcart-backend/internal/products"
	"github.com/shopcartlabs/shopcart-backend/pkg/config"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
	"github.com/shopcartlabs/shopcart-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	Redis           *redis.Client
	BasketService   basket.Service
	BasketPublisher *basket.Publisher
	ProductService  products.Service
	Probes          map[string]controllers.Pinger
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Probes))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Replay protection wraps the queued mutations only; reads stay bare.
		idem := middleware.Idempotency(deps.Redis, cfg.Idempotency.TTL, logg)

		r.Route("/basket", func(r chi.Router) {
			r.With(idem).Post("/add-product", controllers.BasketAddProduct(deps.BasketService, deps.BasketPublisher, logg))
			r.With(idem).Delete("/remove-product", controllers.BasketRemoveProduct(deps.BasketService, deps.BasketPublisher, logg))
			r.With(idem).Post("/{id}", controllers.BasketCreate(deps.BasketPublisher, logg))
			r.Get("/{id}", controllers.BasketFetch(deps.BasketService, logg))
			r.With(idem).Delete("/{id}", controllers.BasketDelete(deps.BasketPublisher, logg))
		})

		r.Route("/product", func(r chi.Router) {
			r.Post("/", controllers.ProductCreate(deps.ProductService, logg))
			r.Get("/", controllers.ProductList(deps.ProductService, logg))
			r.Get("/filter", controllers.ProductFilter(deps.ProductService, logg))
			r.Get("/{productId}", controllers.ProductGet(deps.ProductService, logg))
			r.Patch("/{productId}", controllers.ProductUpdate(deps.ProductService, logg))
			r.Delete("/{productId}", controllers.ProductDelete(deps.ProductService, logg))
		})
	})

	return r
}
