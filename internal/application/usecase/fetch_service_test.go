package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Madman-dev/ZZin/internal/adapters/out/memory"
	"github.com/Madman-dev/ZZin/internal/application/usecase"
	"github.com/Madman-dev/ZZin/internal/domain/document"
	placedom "github.com/Madman-dev/ZZin/internal/domain/place"
	reviewdom "github.com/Madman-dev/ZZin/internal/domain/review"
	userdom "github.com/Madman-dev/ZZin/internal/domain/user"
)

func reviewDoc(rid string) map[string]any {
	return map[string]any{
		"rid": rid, "uid": "u1", "pid": "p1", "title": "t",
		"like": int64(0), "dislike": int64(0), "content": "c", "rate": 100.0,
		"createdAt": fixedNow,
		"companion": "unspecified", "condition": "unspecified", "kindOfFood": "unspecified",
	}
}

func newFetch(store usecase.DocumentStore) *usecase.FetchService {
	return usecase.NewFetchService(store, time.Second, zerolog.Nop())
}

func TestCollection_FetchOne(t *testing.T) {
	store := memory.NewDocumentStore()
	store.Put(reviewdom.Collection, "r1", reviewDoc("r1"))
	reviews := usecase.NewCollection[reviewdom.Review](newFetch(store), reviewdom.Collection, reviewdom.Schema)

	r, err := reviews.FetchOne(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", r.RID)
	assert.True(t, fixedNow.Equal(r.CreatedAt))
}

func TestCollection_FetchOneNotFound(t *testing.T) {
	reviews := usecase.NewCollection[reviewdom.Review](newFetch(memory.NewDocumentStore()), reviewdom.Collection, reviewdom.Schema)

	_, err := reviews.FetchOne(context.Background(), "missing")
	var nf *document.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, reviewdom.Collection, nf.Collection)
	assert.Equal(t, "missing", nf.ID)
	assert.ErrorIs(t, err, document.ErrNotFound)
}

func TestCollection_FetchOneInvalidID(t *testing.T) {
	reviews := usecase.NewCollection[reviewdom.Review](newFetch(memory.NewDocumentStore()), reviewdom.Collection, reviewdom.Schema)

	_, err := reviews.FetchOne(context.Background(), "  ")
	assert.ErrorIs(t, err, document.ErrInvalidID)
}

func TestCollection_FetchOneDecodeErrorCarriesLocation(t *testing.T) {
	store := memory.NewDocumentStore()
	doc := reviewDoc("r1")
	doc["like"] = "many"
	store.Put(reviewdom.Collection, "r1", doc)
	reviews := usecase.NewCollection[reviewdom.Review](newFetch(store), reviewdom.Collection, reviewdom.Schema)

	_, err := reviews.FetchOne(context.Background(), "r1")
	var de *document.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, reviewdom.Collection, de.Collection)
	assert.Equal(t, "r1", de.ID)
	assert.Equal(t, "like", de.Field)
}

func TestCollection_FetchOneTransportError(t *testing.T) {
	store := new(MockDocumentStore)
	cause := errors.New("unavailable")
	store.On("Get", mock.Anything, userdom.Collection, "u1").Return(nil, cause)
	users := usecase.NewCollection[userdom.User](newFetch(store), userdom.Collection, userdom.Schema)

	_, err := users.FetchOne(context.Background(), "u1")
	var te *document.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "get", te.Op)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, document.ErrTransport)
	store.AssertExpectations(t)
}

func TestCollection_TimeoutIsTransportError(t *testing.T) {
	svc := usecase.NewFetchService(blockingStore{}, 20*time.Millisecond, zerolog.Nop())
	users := usecase.NewCollection[userdom.User](svc, userdom.Collection, userdom.Schema)

	_, err := users.FetchOne(context.Background(), "u1")
	assert.ErrorIs(t, err, document.ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = users.FetchAll(context.Background())
	assert.ErrorIs(t, err, document.ErrTransport)

	err = svc.Write(context.Background(), userdom.Collection, "u1", document.Fields{}.Set("nickname", document.String("n")))
	assert.ErrorIs(t, err, document.ErrTransport)
}

func TestCollection_FetchAllFailFast(t *testing.T) {
	store := memory.NewDocumentStore()
	store.Put(reviewdom.Collection, "r1", reviewDoc("r1"))
	bad := reviewDoc("r2")
	delete(bad, "title")
	store.Put(reviewdom.Collection, "r2", bad)
	store.Put(reviewdom.Collection, "r3", reviewDoc("r3"))
	reviews := usecase.NewCollection[reviewdom.Review](newFetch(store), reviewdom.Collection, reviewdom.Schema)

	list, err := reviews.FetchAll(context.Background())
	assert.Nil(t, list)
	var de *document.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "r2", de.ID)
	assert.Equal(t, "title", de.Field)
}

func TestCollection_FetchAllLenient(t *testing.T) {
	store := memory.NewDocumentStore()
	store.Put(reviewdom.Collection, "r1", reviewDoc("r1"))
	bad := reviewDoc("r2")
	bad["createdAt"] = "not a time"
	store.Put(reviewdom.Collection, "r2", bad)
	reviews := usecase.NewCollection[reviewdom.Review](newFetch(store), reviewdom.Collection, reviewdom.Schema)

	list, skipped, err := reviews.FetchAllLenient(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "r1", list[0].RID)
	require.Len(t, skipped, 1)
	assert.Equal(t, "r2", skipped[0].ID)
	assert.Equal(t, "createdAt", skipped[0].Field)
}

func TestCollection_FetchAllEmpty(t *testing.T) {
	places := usecase.NewCollection[placedom.Place](newFetch(memory.NewDocumentStore()), placedom.Collection, placedom.Schema)

	list, err := places.FetchAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCollection_IDs(t *testing.T) {
	store := memory.NewDocumentStore()
	store.Put(userdom.Collection, "b", map[string]any{"garbage": true})
	store.Put(userdom.Collection, "a", map[string]any{})
	users := usecase.NewCollection[userdom.User](newFetch(store), userdom.Collection, userdom.Schema)

	ids, err := users.IDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestFetchService_UpdateAppend(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	store.Put(userdom.Collection, "u1", map[string]any{"uid": "u1", "rid": []string{"a"}})
	svc := newFetch(store)

	require.NoError(t, svc.UpdateAppend(ctx, userdom.Collection, "u1", userdom.FieldRID, []string{"a", "b"}))

	raw, err := store.Get(ctx, userdom.Collection, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, raw["rid"])
}

func TestFetchService_UpdateAppendCreatesField(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	store.Put(userdom.Collection, "u1", map[string]any{"uid": "u1"})

	require.NoError(t, newFetch(store).UpdateAppend(ctx, userdom.Collection, "u1", userdom.FieldPID, []string{"p1"}))

	raw, err := store.Get(ctx, userdom.Collection, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, raw["pid"])
}

func TestFetchService_UpdateMissingDocument(t *testing.T) {
	err := newFetch(memory.NewDocumentStore()).UpdateAppend(context.Background(), userdom.Collection, "ghost", userdom.FieldRID, []string{"r"})
	var nf *document.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ghost", nf.ID)
}

func TestFetchService_WriteRejectsInvalidFields(t *testing.T) {
	store := new(MockDocumentStore)
	svc := newFetch(store)

	err := svc.Write(context.Background(), "users", "u1", document.Fields{{Name: "rid", Value: document.Int(1), Mode: document.AppendSet}})
	assert.ErrorIs(t, err, document.ErrInvalidFields)

	err = svc.Write(context.Background(), "users", "", document.Fields{}.Set("a", document.Int(1)))
	assert.ErrorIs(t, err, document.ErrInvalidID)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFetchService_WritePerFieldModes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	store.Put(placedom.Collection, "p1", map[string]any{"rid": []string{"r0"}, "placeImg": []string{"x", "y"}})

	fs := document.Fields{}.
		Append(placedom.FieldRID, "r1").
		Set(placedom.FieldPlaceImg, document.StringList("z"))
	require.NoError(t, newFetch(store).Write(ctx, placedom.Collection, "p1", fs))

	raw, err := store.Get(ctx, placedom.Collection, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r0", "r1"}, raw["rid"])
	assert.Equal(t, []string{"z"}, raw["placeImg"])
}
