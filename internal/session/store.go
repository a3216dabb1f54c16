// Package session holds the process-wide mapping from opaque bearer
// tokens to user identities. Sessions live until logout or process
// exit; they are deliberately not persisted across restarts.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

const tokenBytes = 32

// Store maps opaque tokens to user ids.
type Store interface {
	Create(userID int64) (string, error)
	Resolve(token string) (int64, bool)
	Revoke(token string)
	Count() int
}

// MemoryStore is a mutex-guarded in-process Store. A single instance is
// shared by all request handlers.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]int64
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]int64)}
}

// Create generates a fresh 256-bit random token and maps it to userID.
func (s *MemoryStore) Create(userID int64) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()
	return token, nil
}

// Resolve looks up the user id for a token.
func (s *MemoryStore) Resolve(token string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.sessions[token]
	return userID, ok
}

// Revoke removes the token mapping. Revoking an unknown token is a no-op.
func (s *MemoryStore) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Count reports the number of active sessions, for monitoring.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
