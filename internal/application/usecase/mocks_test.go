package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Madman-dev/ZZin/internal/adapters/out/memory"
	"github.com/Madman-dev/ZZin/internal/application/usecase"
	"github.com/Madman-dev/ZZin/internal/domain/document"
)

// MockDocumentStore is a testify mock of usecase.DocumentStore.
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	args := m.Called(ctx, collection, id)
	raw, _ := args.Get(0).(map[string]any)
	return raw, args.Error(1)
}

func (m *MockDocumentStore) GetAll(ctx context.Context, collection string) ([]document.Snapshot, error) {
	args := m.Called(ctx, collection)
	snaps, _ := args.Get(0).([]document.Snapshot)
	return snaps, args.Error(1)
}

func (m *MockDocumentStore) Set(ctx context.Context, collection, id string, fields document.Fields) error {
	return m.Called(ctx, collection, id, fields).Error(0)
}

func (m *MockDocumentStore) Update(ctx context.Context, collection, id string, fields document.Fields) error {
	return m.Called(ctx, collection, id, fields).Error(0)
}

// MockBlobStore is a testify mock of usecase.BlobStore.
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, path, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, path, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) ResolveURL(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

// failingStore wraps the memory store and fails writes to one collection.
type failingStore struct {
	*memory.DocumentStore
	failCollection string
	err            error
}

func (f *failingStore) Set(ctx context.Context, collection, id string, fields document.Fields) error {
	if collection == f.failCollection {
		return f.err
	}
	return f.DocumentStore.Set(ctx, collection, id, fields)
}

func (f *failingStore) Update(ctx context.Context, collection, id string, fields document.Fields) error {
	if collection == f.failCollection {
		return f.err
	}
	return f.DocumentStore.Update(ctx, collection, id, fields)
}

// blockingStore waits for the context on every call.
type blockingStore struct{}

func (blockingStore) Get(ctx context.Context, _, _ string) (map[string]any, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingStore) GetAll(ctx context.Context, _ string) ([]document.Snapshot, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingStore) Set(ctx context.Context, _, _ string, _ document.Fields) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingStore) Update(ctx context.Context, _, _ string, _ document.Fields) error {
	<-ctx.Done()
	return ctx.Err()
}

// blockingBlobs never resolves before the context ends.
type blockingBlobs struct{}

func (blockingBlobs) Put(ctx context.Context, _, _ string, _ []byte) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (blockingBlobs) ResolveURL(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// blockingAccounts waits for the context on every call.
type blockingAccounts struct{}

func (blockingAccounts) CreateAccount(ctx context.Context, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (blockingAccounts) SignIn(ctx context.Context, _, _ string) (usecase.SignInResult, error) {
	<-ctx.Done()
	return usecase.SignInResult{}, ctx.Err()
}

var (
	_ usecase.DocumentStore  = (*MockDocumentStore)(nil)
	_ usecase.DocumentStore  = (*failingStore)(nil)
	_ usecase.DocumentStore  = blockingStore{}
	_ usecase.BlobStore      = (*MockBlobStore)(nil)
	_ usecase.BlobStore      = blockingBlobs{}
	_ usecase.AccountService = blockingAccounts{}
	_ usecase.PasswordSignIn = blockingAccounts{}
)

var fixedNow = time.Date(2022, 11, 20, 8, 0, 0, 0, time.UTC)

func sequence(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}
