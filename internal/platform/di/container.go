// internal/platform/di/container.go
package di

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	httpin "github.com/Madman-dev/ZZin/internal/adapters/in/http"
	"github.com/Madman-dev/ZZin/internal/adapters/in/http/middleware"
	authadp "github.com/Madman-dev/ZZin/internal/adapters/out/auth"
	"github.com/Madman-dev/ZZin/internal/adapters/out/cache"
	fsrepo "github.com/Madman-dev/ZZin/internal/adapters/out/firestore"
	gcsrepo "github.com/Madman-dev/ZZin/internal/adapters/out/gcs"
	"github.com/Madman-dev/ZZin/internal/adapters/out/memory"
	"github.com/Madman-dev/ZZin/internal/application/usecase"
	appcfg "github.com/Madman-dev/ZZin/internal/infra/config"
	redisinfra "github.com/Madman-dev/ZZin/internal/infra/redis"
	"github.com/Madman-dev/ZZin/internal/platform/di/shared"
)

// RequestTimeout bounds one HTTP request end to end.
const RequestTimeout = 60 * time.Second

// Container wires stores, usecases and router dependencies.
type Container struct {
	Config *appcfg.Config
	Infra  *shared.Infra // nil with the memory backend

	Store    usecase.DocumentStore
	Blobs    usecase.BlobStore
	Fetch    *usecase.FetchService
	Catalog  *usecase.CatalogUsecase
	Submit   *usecase.ReviewSubmissionUsecase
	Auth     *usecase.AuthUsecase
	Verifier middleware.TokenVerifier

	memoryBlobs *memory.BlobStore
	redis       *redisinfra.Client
	logger      zerolog.Logger
}

// NewContainer builds the container for cfg.StoreBackend.
func NewContainer(ctx context.Context, cfg *appcfg.Config, logger zerolog.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("di: config is nil")
	}
	c := &Container{Config: cfg, logger: logger}

	var (
		accounts usecase.AccountService
		signIn   usecase.PasswordSignIn
	)

	if cfg.UsesMemoryStore() {
		c.Store = memory.NewDocumentStore()
		c.memoryBlobs = memory.NewBlobStore(fmt.Sprintf("http://localhost:%s/blobs", cfg.Port))
		c.Blobs = c.memoryBlobs
		acc := memory.NewAccounts()
		accounts, signIn, c.Verifier = acc, acc, acc

		rc, err := shared.ConnectRedis(ctx, cfg, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("[di] redis unavailable (document cache disabled)")
		}
		c.redis = rc
		logger.Info().Msg("[di] using in-memory stores")
	} else {
		inf, err := shared.NewInfra(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		c.Infra = inf
		c.redis = inf.Redis
		c.Store = fsrepo.NewDocumentStoreFS(inf.Firestore.Client)
		c.Blobs = gcsrepo.NewBlobStoreGCS(inf.GCS, cfg.GCSBucket, cfg.GCSSignedURLs)

		if inf.FirebaseAuth != nil {
			accounts = authadp.NewFirebaseAccountService(inf.FirebaseAuth)
			c.Verifier = inf.FirebaseAuth
		}
		if inf.FirebaseAPIKey != "" {
			ps, err := authadp.NewPasswordSignIn(ctx, inf.FirebaseAPIKey)
			if err != nil {
				logger.Warn().Err(err).Msg("[di] password sign-in init failed")
			} else {
				signIn = ps
			}
		}
	}

	if c.redis != nil {
		c.Store = cache.NewCachedDocumentStore(c.Store, cache.NewRedisCache(c.redis.Client()), cfg.CacheTTL, logger).
			WithWriteGuard(max(cache.DefaultWriteGuard, 2*cfg.RemoteCallTimeout))
	}

	c.Fetch = usecase.NewFetchService(c.Store, cfg.RemoteCallTimeout, logger)
	c.Catalog = usecase.NewCatalogUsecase(c.Fetch, c.Blobs)
	c.Submit = usecase.NewReviewSubmissionUsecase(
		c.Fetch,
		c.Blobs,
		usecase.PlaceDefaults{City: cfg.DefaultCity, Town: cfg.DefaultTown},
		logger,
	).WithUploadTimeout(cfg.RemoteCallTimeout)
	c.Auth = usecase.NewAuthUsecase(accounts, signIn, c.Fetch, logger).WithCallTimeout(cfg.RemoteCallTimeout)

	return c, nil
}

// RouterDeps returns the inputs of httpin.NewRouter.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		AuthUC:         c.Auth,
		CatalogUC:      c.Catalog,
		SubmissionUC:   c.Submit,
		TokenVerifier:  c.Verifier,
		MemoryBlobs:    c.memoryBlobs,
		CORSOrigins:    c.Config.CORSOrigins,
		RequestTimeout: RequestTimeout,
		Logger:         c.logger,
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Infra != nil {
		return c.Infra.Close()
	}
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
