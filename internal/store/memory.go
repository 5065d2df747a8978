package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps the serialized collection in process memory.
// It is used by the "memory" store backend and in tests.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte

	// WriteErr, when set, is returned by every Write.
	WriteErr error
}

// Compile-time check that MemoryBackend implements Backend
var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend creates a MemoryBackend holding initial.
// A nil initial behaves like a collection that was never written.
func NewMemoryBackend(initial []byte) *MemoryBackend {
	return &MemoryBackend{data: initial}
}

// Read implements Backend.Read.
func (m *MemoryBackend) Read(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		m.data = []byte("[]")
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

// Write implements Backend.Write.
func (m *MemoryBackend) Write(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.data = append(m.data[:0:0], data...)
	return nil
}

// Bytes returns a copy of the stored bytes.
func (m *MemoryBackend) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}
