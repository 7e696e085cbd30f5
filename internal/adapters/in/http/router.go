// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Madman-dev/ZZin/internal/adapters/in/http/handlers"
	"github.com/Madman-dev/ZZin/internal/adapters/in/http/middleware"
	"github.com/Madman-dev/ZZin/internal/adapters/out/memory"
	"github.com/Madman-dev/ZZin/internal/application/usecase"
)

// RouterDeps collects the usecases and middleware inputs built by the DI
// container.
type RouterDeps struct {
	AuthUC       *usecase.AuthUsecase
	CatalogUC    *usecase.CatalogUsecase
	SubmissionUC *usecase.ReviewSubmissionUsecase

	TokenVerifier middleware.TokenVerifier
	// MemoryBlobs is served under /blobs when set.
	MemoryBlobs *memory.BlobStore

	CORSOrigins    []string
	RequestTimeout time.Duration
	Logger         zerolog.Logger
}

// NewRouter builds the HTTP API.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Recover)
	r.Use(middleware.CORS(deps.CORSOrigins))
	if deps.RequestTimeout > 0 {
		r.Use(chimw.Timeout(deps.RequestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if deps.AuthUC != nil {
		ah := handlers.NewAuthHandler(deps.AuthUC)
		r.Post("/auth/signup", ah.SignUp)
		r.Post("/auth/signin", ah.SignIn)
	}

	if deps.CatalogUC != nil {
		uh := handlers.NewUserHandler(deps.CatalogUC)
		r.Get("/users/{uid}", uh.Get)
		r.Get("/users/{uid}/exists", uh.Exists)

		ph := handlers.NewPlaceHandler(deps.CatalogUC)
		r.Get("/places", ph.List)
		r.Get("/places/{pid}", ph.Get)

		rh := handlers.NewReviewHandler(deps.CatalogUC, deps.SubmissionUC)
		r.Get("/reviews", rh.List)
		r.Get("/reviews/{rid}", rh.Get)
		r.Get("/reviews/{rid}/image", rh.Image)
		if deps.SubmissionUC != nil {
			auth := &middleware.UserAuthMiddleware{Verifier: deps.TokenVerifier}
			r.With(auth.Handler).Post("/reviews", rh.Submit)
		}
	}

	if deps.MemoryBlobs != nil {
		r.Get("/blobs/*", handlers.NewBlobHandler(deps.MemoryBlobs).Get)
	}

	return r
}
