package services

import (
	"fmt"
	"sync"
	"time"
)

// MockSnapshotService is a mock implementation of SnapshotService for testing
type MockSnapshotService struct {
	snapshots map[string][]byte // map of object key to payload
	mu        sync.RWMutex
}

// NewMockSnapshotService creates a new mock snapshot service
func NewMockSnapshotService() *MockSnapshotService {
	return &MockSnapshotService{
		snapshots: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global snapshot service instance
func (m *MockSnapshotService) SetAsMockForTesting() {
	SetSnapshotService(m)
}

// UploadSnapshot simulates storing a snapshot payload
func (m *MockSnapshotService) UploadSnapshot(name string, payload []byte) (string, error) {
	key := fmt.Sprintf("snapshots/%s/%s.json", time.Now().Format("2006-01-02"), name)

	m.mu.Lock()
	m.snapshots[key] = payload
	m.mu.Unlock()

	return key, nil
}

// GetPresignedURL simulates generating a presigned URL
func (m *MockSnapshotService) GetPresignedURL(key string) (string, error) {
	if key == "" {
		return "", &ValidationError{Field: "key", Reason: "snapshot key is required"}
	}

	m.mu.RLock()
	_, exists := m.snapshots[key]
	m.mu.RUnlock()

	if !exists {
		return "", &NotFoundError{Kind: "snapshot", Key: key}
	}

	return "https://mock-bucket.s3.amazonaws.com/" + key + "?mock-signature", nil
}

// Snapshot returns a stored payload (test helper)
func (m *MockSnapshotService) Snapshot(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.snapshots[key]
	return payload, ok
}
