package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"songsearch/internal/models"
	"songsearch/internal/services"
)

// MockProvider is a mock implementation of services.Provider for testing
type MockProvider struct {
	mock.Mock
	name   string
	origin models.Origin
}

// NewMockProvider creates a new mock provider
func NewMockProvider(name string, origin models.Origin) *MockProvider {
	return &MockProvider{
		name:   name,
		origin: origin,
	}
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Origin() models.Origin {
	return m.origin
}

func (m *MockProvider) AcquireToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) FetchRaw(ctx context.Context, term string) ([]services.RawItem, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.RawItem), args.Error(1)
}

func (m *MockProvider) Normalize(items []services.RawItem) []models.Song {
	args := m.Called(items)
	return args.Get(0).([]models.Song)
}

// MockCache is a mock implementation of cache.Cache for testing
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockCache) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ExpectProviderSongs sets up a provider that returns songs for term
func ExpectProviderSongs(p *MockProvider, term string, songs []models.Song) {
	items := make([]services.RawItem, len(songs))
	for i, song := range songs {
		items[i] = services.RawItem{"name": song.Name}
	}
	p.On("FetchRaw", mock.Anything, term).Return(items, nil)
	p.On("Normalize", items).Return(songs)
}

// ExpectProviderFailure sets up a provider whose fetch fails with err
func ExpectProviderFailure(p *MockProvider, term string, err error) {
	p.On("FetchRaw", mock.Anything, term).Return(nil, err)
}
