package router

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"course-promo/app/controller"
)

type Controllers struct {
	Page *controller.PageController
	API  *controller.APIController
}

// Options tune the middleware stack
type Options struct {
	AllowedOrigins []string
	// RequestTimeout bounds every request; capture and webhook calls must fit inside it
	RequestTimeout time.Duration
	// AdminCredentials maps user to password for the admin routes; empty leaves them unmounted
	AdminCredentials map[string]string
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// loggingMiddleware logs one line per request
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			log.Printf("%s %s %d %dB %dms req=%s",
				r.Method,
				r.URL.Path,
				ww.Status(),
				ww.BytesWritten(),
				time.Since(start).Milliseconds(),
				middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// NewRouter builds the HTTP handler for every route
func NewRouter(controllers *Controllers, opts Options) http.Handler {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))

	// Ping endpoint
	r.Get("/ping", pingHandler)

	// Page routes
	r.Get("/", controllers.Page.Index)
	r.Post("/form", controllers.Page.HandleForm)
	r.Get("/poster/render", controllers.Page.RenderPoster)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
			MaxAge:         300,
		}))

		r.Get("/catalog", controllers.API.GetCatalog)
		r.Get("/poster", controllers.API.GetPoster)
		r.Get("/poster/image", controllers.API.GetPosterImage)
		r.Post("/submissions", controllers.API.CreateSubmission)
	})

	// Admin routes expose leads' contact details
	if len(opts.AdminCredentials) > 0 {
		r.Group(func(r chi.Router) {
			r.Use(middleware.BasicAuth("course-promo admin", opts.AdminCredentials))
			r.Get("/admin/submissions", controllers.API.ListSubmissions)
			r.Get("/admin/posters", controllers.API.ListArchivedPosters)
		})
	} else {
		log.Printf("⚠️  ADMIN_USER/ADMIN_PASSWORD not set, admin routes disabled")
	}

	return r
}
