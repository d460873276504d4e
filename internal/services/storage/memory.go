package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryArchive держит документы в памяти (дев-режим и тесты).
type MemoryArchive struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemory() *MemoryArchive {
	return &MemoryArchive{docs: make(map[string][]byte)}
}

func (m *MemoryArchive) Put(ctx context.Context, key string, data []byte, contentType string) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	m.mu.Lock()
	m.docs[key] = cp
	m.mu.Unlock()
	return nil
}

// URL возвращает memory://key; срок действия не учитывается.
func (m *MemoryArchive) URL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	m.mu.RLock()
	_, ok := m.docs[key]
	m.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("document %q not archived", key)
	}
	return "memory://" + key, nil
}

var _ Archive = (*MemoryArchive)(nil)
