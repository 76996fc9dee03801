package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/homestylefoods/storefront-backend/api/controllers"
	"github.com/homestylefoods/storefront-backend/api/middleware"
	"github.com/homestylefoods/storefront-backend/internal/admin"
	"github.com/homestylefoods/storefront-backend/internal/auth"
	"github.com/homestylefoods/storefront-backend/internal/cart"
	"github.com/homestylefoods/storefront-backend/internal/catalog"
	"github.com/homestylefoods/storefront-backend/internal/checkout"
	"github.com/homestylefoods/storefront-backend/internal/session"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
	"github.com/homestylefoods/storefront-backend/pkg/metrics"
)

// Deps carries everything the route table wires together.
type Deps struct {
	View        *controllers.View
	Catalog     *catalog.Store
	CartEngine  *cart.Engine
	Auth        auth.Service
	Checkout    checkout.Service
	Admin       admin.Service
	Contact     controllers.ContactNotifier
	SessionMgr  *session.Manager
	Pinger      controllers.SessionPinger
	Metrics     *metrics.HTTPMetrics
	Registry    *prometheus.Registry
	Logg        *logger.Logger
	UploadsDir  string
	MaxUploadMB int
}

// New builds the storefront router.
func New(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(deps.Logg))
	r.Use(middleware.RequestID(deps.Logg))
	r.Use(middleware.Logging(deps.Logg))
	r.Use(middleware.Metrics(deps.Metrics))

	// Pages: everything here runs with a resolved session.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(deps.SessionMgr, deps.Logg))

		r.Get("/", controllers.Index(deps.View))
		r.Get("/home", controllers.Home(deps.View, deps.Catalog))
		r.Get("/about", controllers.About(deps.View))
		r.Get("/contact", controllers.ContactForm(deps.View))
		r.Post("/contact", controllers.ContactSubmit(deps.View, deps.Contact))

		r.Get("/login", controllers.LoginForm(deps.View))
		r.Post("/login", controllers.LoginSubmit(deps.View, deps.Auth))
		r.Get("/signup", controllers.SignupForm(deps.View))
		r.Post("/signup", controllers.SignupSubmit(deps.View, deps.Auth))
		r.Get("/logout", controllers.Logout(deps.View))

		r.Get("/veg_pickles", controllers.CategoryPage(deps.View, deps.Catalog, catalog.CategoryVegPickles, "Veg Pickles"))
		r.Get("/non_veg_pickles", controllers.CategoryPage(deps.View, deps.Catalog, catalog.CategoryNonVegPickles, "Non-Veg Pickles"))
		r.Get("/snacks", controllers.CategoryPage(deps.View, deps.Catalog, catalog.CategorySnacks, "Snacks"))

		r.Get("/cart", controllers.CartView(deps.View))
		r.Post("/add_to_cart", controllers.AddToCart(deps.View, deps.CartEngine))
		r.Get("/remove_from_cart/{productId}", controllers.RemoveFromCart(deps.View, deps.CartEngine))

		r.Get("/checkout", controllers.CheckoutForm(deps.View, deps.Checkout))
		r.Post("/checkout", controllers.CheckoutSubmit(deps.View, deps.Checkout))
		r.Get("/success", controllers.Success(deps.View))

		r.Get("/admin/add_product", controllers.AddProductForm(deps.View))
		r.Post("/admin/add_product", controllers.AddProductSubmit(deps.View, deps.Admin, deps.MaxUploadMB))
	})

	if deps.UploadsDir != "" {
		fileServer := http.StripPrefix("/static/images/", http.FileServer(http.Dir(deps.UploadsDir)))
		r.Get("/static/images/*", fileServer.ServeHTTP)
	}

	r.Get("/healthz", controllers.Healthz(deps.Pinger))
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	return r
}
