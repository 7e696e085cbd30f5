// internal/application/usecase/ports.go
package usecase

import (
	"context"

	"github.com/Madman-dev/ZZin/internal/domain/document"
)

// DocumentStore is the raw persistence port behind FetchService.
// Implementations report a missing document as document.ErrNotFound.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (map[string]any, error)
	GetAll(ctx context.Context, collection string) ([]document.Snapshot, error)
	// Set upserts (merges) fields.
	Set(ctx context.Context, collection, id string, fields document.Fields) error
	// Update applies fields to an existing document.
	Update(ctx context.Context, collection, id string, fields document.Fields) error
}

// DocumentWriter is the write side of FetchService used by the submission
// pipeline and registration.
type DocumentWriter interface {
	Write(ctx context.Context, collection, id string, fields document.Fields) error
	Update(ctx context.Context, collection, id string, fields document.Fields) error
}

// BlobStore stores binary payloads by path.
type BlobStore interface {
	// Put stores data and returns a stable reference to it.
	Put(ctx context.Context, path, contentType string, data []byte) (string, error)
	// ResolveURL turns a reference into a fetchable URL.
	ResolveURL(ctx context.Context, ref string) (string, error)
}

// AccountService creates auth accounts.
type AccountService interface {
	CreateAccount(ctx context.Context, email, password string) (uid string, err error)
}

// PasswordSignIn verifies email/password credentials.
type PasswordSignIn interface {
	SignIn(ctx context.Context, email, password string) (SignInResult, error)
}

// SignInResult is returned on successful sign-in.
type SignInResult struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}
