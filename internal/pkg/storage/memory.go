package storage

import (
	"context"
	"strings"
	"sync"
)

// Memory is an in-process ObjectStorage used in development when no S3
// bucket is configured, and by tests. Objects live for the process lifetime
// and URLs are synthetic.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
	baseURL string

	// Deleted records every URL passed to Delete, in order.
	Deleted []string
}

func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string][]byte),
		baseURL: "memory://bucket",
	}
}

func (m *Memory) Upload(_ context.Context, key string, payload []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(payload))
	copy(buf, payload)
	m.objects[key] = buf
	return m.baseURL + "/" + key, nil
}

func (m *Memory) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, url)
	delete(m.objects, strings.TrimPrefix(url, m.baseURL+"/"))
	return nil
}

func (m *Memory) Owns(url string) bool {
	return strings.HasPrefix(url, m.baseURL+"/")
}

// Len returns the number of stored objects.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Has reports whether the object behind a URL is still stored.
func (m *Memory) Has(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[strings.TrimPrefix(url, m.baseURL+"/")]
	return ok
}
