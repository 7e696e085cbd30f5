// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Madman-dev/ZZin/internal/domain/document"
	placedom "github.com/Madman-dev/ZZin/internal/domain/place"
	reviewdom "github.com/Madman-dev/ZZin/internal/domain/review"
	userdom "github.com/Madman-dev/ZZin/internal/domain/user"
)

// CatalogUsecase serves the read side: users, reviews and places.
type CatalogUsecase struct {
	users   *Collection[userdom.User]
	reviews *Collection[reviewdom.Review]
	places  *Collection[placedom.Place]
	blobs   BlobStore
	timeout time.Duration
}

func NewCatalogUsecase(svc *FetchService, blobs BlobStore) *CatalogUsecase {
	return &CatalogUsecase{
		users:   NewCollection[userdom.User](svc, userdom.Collection, userdom.Schema),
		reviews: NewCollection[reviewdom.Review](svc, reviewdom.Collection, reviewdom.Schema),
		places:  NewCollection[placedom.Place](svc, placedom.Collection, placedom.Schema),
		blobs:   blobs,
		timeout: svc.timeout,
	}
}

// ListResult is a list read. Skipped is only filled by lenient reads.
type ListResult[T any] struct {
	Items   []T                     `json:"items"`
	Skipped []*document.DecodeError `json:"-"`
}

// =======================
// Users
// =======================

func (u *CatalogUsecase) GetUser(ctx context.Context, uid string) (userdom.User, error) {
	return u.users.FetchOne(ctx, uid)
}

// ListUserIDs returns every registered uid.
func (u *CatalogUsecase) ListUserIDs(ctx context.Context) ([]string, error) {
	return u.users.IDs(ctx)
}

// UserIDExists reports whether a users document exists under id. Used for
// duplicate checks at registration.
func (u *CatalogUsecase) UserIDExists(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, document.ErrInvalidID
	}
	_, err := u.users.svc.get(ctx, userdom.Collection, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, document.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// =======================
// Reviews
// =======================

func (u *CatalogUsecase) GetReview(ctx context.Context, rid string) (reviewdom.Review, error) {
	return u.reviews.FetchOne(ctx, rid)
}

func (u *CatalogUsecase) ListReviews(ctx context.Context, lenient bool) (ListResult[reviewdom.Review], error) {
	return list(ctx, u.reviews, lenient)
}

// ReviewImageURL resolves the stored image reference of a review.
func (u *CatalogUsecase) ReviewImageURL(ctx context.Context, rid string) (string, error) {
	if u.blobs == nil {
		return "", errors.New("blob store not configured")
	}
	r, err := u.reviews.FetchOne(ctx, rid)
	if err != nil {
		return "", err
	}
	ref := reviewdom.ImagePath(r.RID)
	if r.ReviewImg != nil && strings.TrimSpace(*r.ReviewImg) != "" {
		ref = strings.TrimSpace(*r.ReviewImg)
	}
	cctx, cancel := withCallTimeout(ctx, u.timeout)
	defer cancel()

	url, err := u.blobs.ResolveURL(cctx, ref)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return "", &document.NotFoundError{Collection: "blobs", ID: ref}
		}
		return "", &document.TransportError{Op: "resolve", Collection: "blobs", ID: ref, Err: err}
	}
	return url, nil
}

// =======================
// Places
// =======================

func (u *CatalogUsecase) GetPlace(ctx context.Context, pid string) (placedom.Place, error) {
	return u.places.FetchOne(ctx, pid)
}

func (u *CatalogUsecase) ListPlaces(ctx context.Context, lenient bool) (ListResult[placedom.Place], error) {
	return list(ctx, u.places, lenient)
}

// MatchPlaces returns the places whose tags and location satisfy f.
// Empty fields and placedom.AnyTown match anything.
func (u *CatalogUsecase) MatchPlaces(ctx context.Context, f placedom.Filter) ([]placedom.Place, error) {
	all, err := u.places.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	f = f.Normalize()
	out := make([]placedom.Place, 0, len(all))
	for _, p := range all {
		if p.Matches(f) {
			out = append(out, p)
		}
	}
	return out, nil
}

func list[T any](ctx context.Context, c *Collection[T], lenient bool) (ListResult[T], error) {
	if !lenient {
		items, err := c.FetchAll(ctx)
		if err != nil {
			return ListResult[T]{}, err
		}
		return ListResult[T]{Items: items}, nil
	}
	items, skipped, err := c.FetchAllLenient(ctx)
	if err != nil {
		return ListResult[T]{}, err
	}
	return ListResult[T]{Items: items, Skipped: skipped}, nil
}
