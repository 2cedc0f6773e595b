package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	catalogapp "github.com/bizgrid/backend/internal/application/catalog"
)

var _ catalogapp.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage is an in-memory ObjectStorage for development and tests.
// Keys marked as uploaded exist; everything else does not.
type StubObjectStorage struct {
	// BaseURL prefixes generated upload/download URLs
	BaseURL string

	mu      sync.Mutex
	objects map[string]bool
	deleted []string
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string]bool),
	}
}

// PutObject marks a key as present, standing in for a completed upload
func (s *StubObjectStorage) PutObject(storageKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = true
}

// DeletedKeys returns every key passed to DeleteObjects
func (s *StubObjectStorage) DeletedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

// GenerateUploadURL returns a deterministic fake upload URL
func (s *StubObjectStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey, expiresAt, nil
}

// GenerateDownloadURL returns a deterministic fake download URL
func (s *StubObjectStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey, expiresAt, nil
}

// DeleteObjects removes a batch of keys; nothing ever fails in stub mode
func (s *StubObjectStorage) DeleteObjects(ctx context.Context, storageKeys []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range storageKeys {
		if key == "" {
			continue
		}
		delete(s.objects, key)
		s.deleted = append(s.deleted, key)
	}
	return nil, nil
}

// ObjectExists reports whether a key was marked uploaded
func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[storageKey], nil
}
