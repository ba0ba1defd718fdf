package persistence

import (
	"context"
	"sync"
)

// MemoryMedia is an in-process attachment store.
type MemoryMedia struct {
	mu       sync.RWMutex
	urls     map[string]string
	featured map[string]string
}

func NewMemoryMedia(urls map[string]string) *MemoryMedia {
	m := &MemoryMedia{urls: make(map[string]string, len(urls)), featured: make(map[string]string)}
	for k, v := range urls {
		m.urls[k] = v
	}
	return m
}

func (m *MemoryMedia) ImageURL(_ context.Context, imageID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.urls[imageID], nil
}

func (m *MemoryMedia) SetFeaturedImage(_ context.Context, itemID, imageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.featured[itemID] = imageID
	return nil
}

// FeaturedImage returns the featured image id recorded for itemID.
func (m *MemoryMedia) FeaturedImage(itemID string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.featured[itemID]
}
