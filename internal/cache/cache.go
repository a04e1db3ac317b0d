// Package cache implements a pull-through response cache with an explicit
// invalidation contract: GET responses are cached per request URL, mutations
// invalidate the mutated entity type together with all entity types whose
// responses embed data from it.
package cache

import (
	"sync"
)

type Store struct {
	mu      sync.RWMutex
	entries map[string]map[string][]byte
}

func New() *Store {
	return &Store{
		entries: make(map[string]map[string][]byte),
	}
}

// Get returns the cached response body for the key, if any.
func (s *Store) Get(entityType, key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	body, ok := s.entries[entityType][key]
	return body, ok
}

// Set stores a response body for the key.
func (s *Store) Set(entityType, key string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries[entityType] == nil {
		s.entries[entityType] = make(map[string][]byte)
	}

	s.entries[entityType][key] = body
}

// Invalidate drops all cached responses for the entity types.
func (s *Store) Invalidate(entityTypes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entityType := range entityTypes {
		delete(s.entries, entityType)
	}
}

// InvalidateAll drops every cached response.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]map[string][]byte)
}

// Dependents returns the entity types whose cached responses must be
// invalidated when the given entity type is mutated.
//
// Transaction responses embed the names of their account, currency, group
// and category. Account responses embed their currency IDs, group responses
// their category names. Deleting an account, currency or group can mutate or
// delete transactions through the deletion resolver, and mutating
// transactions changes the dependent counts served under the other
// resources.
func Dependents(entityType string) []string {
	switch entityType {
	case "accounts":
		return []string{"accounts", "transactions"}
	case "currencies":
		return []string{"currencies", "accounts", "transactions"}
	case "groups":
		return []string{"groups", "categories", "transactions"}
	case "categories":
		return []string{"categories", "groups", "transactions"}
	case "transactions":
		return []string{"transactions", "accounts", "currencies", "groups"}
	}

	return []string{entityType}
}
