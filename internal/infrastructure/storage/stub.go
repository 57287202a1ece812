// Package storage provides object storage implementations for image uploads.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	notesapp "github.com/chronotes/backend/internal/application/notes"
)

// StubObjectStorage is an in-memory implementation of ObjectStorageService.
// Use this for development and tests when no S3-compatible backend is
// configured.
type StubObjectStorage struct {
	// BaseURL is the base URL for generated object URLs
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure StubObjectStorage implements ObjectStorageService
var _ notesapp.ObjectStorageService = (*StubObjectStorage)(nil)

// Upload stores the data in memory
func (s *StubObjectStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = data
	return nil
}

// GenerateDownloadURL generates a stub URL for downloading an object
func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/" + storageKey, expiresAt, nil
}

// DeleteObject removes the object from memory
func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// ObjectExists reports whether the key was uploaded
func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}
