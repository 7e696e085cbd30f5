// internal/application/usecase/fetch_service.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Madman-dev/ZZin/internal/domain/document"
)

// FetchService reads raw documents, decodes them into typed records and
// performs the primitive writes. Every remote call runs under its own
// timeout; timeouts and backend failures surface as *document.TransportError.
type FetchService struct {
	store   DocumentStore
	timeout time.Duration
	log     zerolog.Logger
}

func NewFetchService(store DocumentStore, timeout time.Duration, logger zerolog.Logger) *FetchService {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &FetchService{
		store:   store,
		timeout: timeout,
		log:     logger.With().Str("component", "fetch").Logger(),
	}
}

// Write upserts a partial document. Each field carries its own mode, so a
// list can be replaced in one field and set-unioned in another.
func (s *FetchService) Write(ctx context.Context, collection, id string, fields document.Fields) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return document.ErrInvalidID
	}
	if err := fields.Validate(); err != nil {
		return err
	}

	cctx, cancel := withCallTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.store.Set(cctx, collection, id, fields); err != nil {
		return classify("write", collection, id, err)
	}
	s.log.Debug().Str("collection", collection).Str("id", id).Strs("fields", fields.Names()).Msg("[fetch] write ok")
	return nil
}

// Update applies fields to an existing document; a missing document yields
// *document.NotFoundError.
func (s *FetchService) Update(ctx context.Context, collection, id string, fields document.Fields) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return document.ErrInvalidID
	}
	if err := fields.Validate(); err != nil {
		return err
	}

	cctx, cancel := withCallTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.store.Update(cctx, collection, id, fields); err != nil {
		return classify("update", collection, id, err)
	}
	s.log.Debug().Str("collection", collection).Str("id", id).Strs("fields", fields.Names()).Msg("[fetch] update ok")
	return nil
}

// UpdateAppend unions values into the list stored at field, creating the
// field when absent.
func (s *FetchService) UpdateAppend(ctx context.Context, collection, id, field string, values []string) error {
	return s.Update(ctx, collection, id, document.Fields{}.Append(field, values...))
}

func (s *FetchService) get(ctx context.Context, collection, id string) (map[string]any, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, document.ErrInvalidID
	}

	cctx, cancel := withCallTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.store.Get(cctx, collection, id)
	if err != nil {
		return nil, classify("get", collection, id, err)
	}
	return raw, nil
}

func (s *FetchService) getAll(ctx context.Context, collection string) ([]document.Snapshot, error) {
	cctx, cancel := withCallTimeout(ctx, s.timeout)
	defer cancel()

	snaps, err := s.store.GetAll(cctx, collection)
	if err != nil {
		return nil, classify("list", collection, "", err)
	}
	return snaps, nil
}

// classify maps store errors onto the error taxonomy. Caller mistakes
// (invalid id / fields) pass through unchanged.
func classify(op, collection, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, document.ErrNotFound):
		return &document.NotFoundError{Collection: collection, ID: id}
	case errors.Is(err, document.ErrInvalidID), errors.Is(err, document.ErrInvalidFields):
		return err
	default:
		return &document.TransportError{Op: op, Collection: collection, ID: id, Err: err}
	}
}
