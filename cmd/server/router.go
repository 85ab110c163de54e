package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mando-cx/mando-api/internal/api"
	apiMiddleware "github.com/mando-cx/mando-api/internal/api/middleware"
	"github.com/mando-cx/mando-api/internal/apierr"
	"github.com/mando-cx/mando-api/internal/cors"
	"github.com/mando-cx/mando-api/internal/openapi"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	basePath := app.config.Server.BasePath
	if basePath == "" {
		basePath = "/"
	}

	errs := api.NewErrorHandler(apierr.NewClassifier(app.logger), app.metrics)

	// Create a router
	r := chi.NewRouter()
	r.NotFound(errs.NotFound)
	r.MethodNotAllowed(errs.MethodNotAllowed)

	// Apply the request pipeline in order
	r.Use(apiMiddleware.RequestID(app.logger))
	r.Use(apiMiddleware.Recoverer(errs.HandleError))
	r.Use(middleware.RealIP)
	r.Use(cors.Middleware(app.originValidator, cors.Options{
		AllowedHeaders: app.config.CORS.AllowedHeaders,
		ExposedHeaders: app.config.CORS.ExposedHeaders,
		MaxAge:         app.config.CORS.MaxAgeSeconds,
		OnVerdict: func(res cors.Result) {
			app.metrics.CORSVerdicts.WithLabelValues(res.Kind.String(), res.Reason).Inc()
		},
	}))
	r.Use(apiMiddleware.Metrics(app.metrics))
	r.Use(apiMiddleware.AccessLog(app.logger))
	r.Use(apiMiddleware.RequestLogger(apiMiddleware.DefaultMaxLoggedBody))
	r.Use(apiMiddleware.SecureHeaders)
	r.Use(apiMiddleware.ServerTiming)
	r.Use(apiMiddleware.TrailingSlash(joinPath(basePath, "/")))

	// Create API handlers using the application's dependencies
	notificationHandler := api.NewNotificationHandler(app.notifier)
	uploadHandler := api.NewUploadHandler(app.metrics)
	docsHandler := api.NewDocsHandler(openapi.Options{
		Title:    app.config.Docs.Title,
		Version:  app.config.Docs.Version,
		BasePath: basePath,
	})

	routes := func(r chi.Router) {
		r.NotFound(errs.NotFound)
		r.MethodNotAllowed(errs.MethodNotAllowed)

		r.Get("/", errs.Handle(api.Index))
		r.Get("/ping", errs.Handle(api.Ping))

		// Notification endpoints
		r.Post("/notifications/trigger", errs.Handle(notificationHandler.Trigger))

		// Upload validation endpoints
		r.Route("/uploads", func(r chi.Router) {
			r.Post("/assets", errs.Handle(uploadHandler.Assets))
			r.Post("/processed", errs.Handle(uploadHandler.Processed))
			r.Get("/mime-types", errs.Handle(uploadHandler.MimeTypes))
		})

		// API reference
		if app.config.Docs.Enabled {
			r.Get("/openapi.json", errs.Handle(docsHandler.OpenAPI))
			r.Get("/swagger", func(w http.ResponseWriter, req *http.Request) {
				http.Redirect(w, req, joinPath(basePath, "/swagger/index.html"), http.StatusMovedPermanently)
			})
			r.Get("/swagger/*", httpSwagger.Handler(
				httpSwagger.URL(joinPath(basePath, "/openapi.json")),
			))
		}
	}

	if basePath == "/" {
		r.Group(routes)
	} else {
		r.Route(basePath, routes)
	}

	// Health check endpoint
	r.Get("/health", api.Health)

	// Prometheus scrape endpoint
	r.Handle("/metrics", app.metrics.Handler())

	return r
}

// joinPath joins the base path and a route without doubling slashes.
func joinPath(base, route string) string {
	if base == "/" {
		return route
	}
	return base + route
}
