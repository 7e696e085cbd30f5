// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	appcfg "github.com/Madman-dev/ZZin/internal/infra/config"
	firestoreinfra "github.com/Madman-dev/ZZin/internal/infra/firestore"
	redisinfra "github.com/Madman-dev/ZZin/internal/infra/redis"
	secretinfra "github.com/Madman-dev/ZZin/internal/infra/secret"
)

// Infra owns the external clients of the firestore backend.
// Firestore and GCS are strict; Firebase Auth, Secret Manager and Redis are
// best-effort (warn and continue).
type Infra struct {
	Config    *appcfg.Config
	ProjectID string

	Firestore    *firestoreinfra.ClientWrapper
	GCS          *storage.Client
	FirebaseApp  *firebase.App
	FirebaseAuth *firebaseauth.Client
	Secrets      *secretinfra.Provider
	Redis        *redisinfra.Client

	// FirebaseAPIKey is the Web API key used for password sign-in.
	FirebaseAPIKey string
	ClientOptions  []option.ClientOption
}

// NewInfra connects every client the configuration asks for.
func NewInfra(ctx context.Context, cfg *appcfg.Config, logger zerolog.Logger) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}
	log := logger.With().Str("component", "shared.infra").Logger()

	projectID := strings.TrimSpace(cfg.GetFirestoreProjectID())
	if projectID == "" {
		return nil, errors.New("shared.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID)")
	}
	inf := &Infra{Config: cfg, ProjectID: projectID}

	// Credentials file (optional; mainly for local dev)
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}
	if credFile != "" {
		inf.ClientOptions = append(inf.ClientOptions, option.WithCredentialsFile(credFile))
		log.Info().Msg("[shared.infra] using credentials file for GCP clients")
	} else {
		log.Info().Msg("[shared.infra] using Application Default Credentials")
	}

	// 1) Firestore (strict)
	fs, err := firestoreinfra.NewClient(ctx, projectID, credFile, logger)
	if err != nil {
		return nil, fmt.Errorf("shared.infra: %w", err)
	}
	inf.Firestore = fs

	// 2) GCS (strict)
	gcsClient, err := storage.NewClient(ctx, inf.ClientOptions...)
	if err != nil {
		_ = inf.Close()
		return nil, fmt.Errorf("shared.infra: storage.NewClient failed: %w", err)
	}
	inf.GCS = gcsClient
	log.Info().Str("bucket", cfg.GCSBucket).Msg("[shared.infra] GCS storage client initialized")

	// 3) Firebase App/Auth (best-effort)
	fbProject := strings.TrimSpace(cfg.GetFirebaseProjectID())
	if fbProject == "" {
		fbProject = projectID
	}
	if app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: fbProject}, inf.ClientOptions...); err != nil {
		log.Warn().Err(err).Msg("[shared.infra] firebase app init failed")
	} else {
		inf.FirebaseApp = app
		if authClient, err := app.Auth(ctx); err != nil {
			log.Warn().Err(err).Msg("[shared.infra] firebase auth init failed")
		} else {
			inf.FirebaseAuth = authClient
			log.Info().Msg("[shared.infra] Firebase Auth initialized")
		}
	}

	// 4) Web API key: env first, then Secret Manager (best-effort)
	inf.FirebaseAPIKey = strings.TrimSpace(cfg.FirebaseAPIKey)
	if inf.FirebaseAPIKey == "" && strings.TrimSpace(cfg.FirebaseAPIKeySecret) != "" {
		sp, err := secretinfra.NewProvider(ctx, projectID)
		if err != nil {
			log.Warn().Err(err).Msg("[shared.infra] secret manager init failed (sign-in disabled)")
		} else {
			inf.Secrets = sp
			key, err := sp.Get(ctx, cfg.FirebaseAPIKeySecret)
			if err != nil {
				log.Warn().Err(err).Msg("[shared.infra] firebase api key secret unavailable (sign-in disabled)")
			} else {
				inf.FirebaseAPIKey = key
			}
		}
	}
	if inf.FirebaseAPIKey == "" {
		log.Warn().Msg("[shared.infra] FIREBASE_API_KEY not configured (sign-in disabled)")
	}

	// 5) Redis document cache (best-effort)
	rc, err := ConnectRedis(ctx, cfg, logger)
	if err != nil {
		log.Warn().Err(err).Msg("[shared.infra] redis unavailable (document cache disabled)")
	}
	inf.Redis = rc

	return inf, nil
}

// ConnectRedis returns nil without error when REDIS_URL is unset.
func ConnectRedis(ctx context.Context, cfg *appcfg.Config, logger zerolog.Logger) (*redisinfra.Client, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil, nil
	}
	rc, err := redisinfra.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	logger.Info().Dur("ttl", cfg.CacheTTL).Msg("[shared.infra] redis document cache enabled")
	return rc, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.Secrets != nil {
		_ = i.Secrets.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	return nil
}
