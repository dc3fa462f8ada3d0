package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const DefaultTTL = 30 * time.Minute

// Storage is a string key/value store scoped to one browsing session.
type Storage interface {
	SetItem(key, value string)
	GetItem(key string) (string, bool)
	RemoveItem(key string)
	Clear()
}

// Store keeps items until they are removed, the session is cleared, or the
// session sits idle for longer than its TTL. Every write restarts the TTL of
// the written item.
type Store struct {
	id    string
	items *cache.Cache
}

func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Store{
		id:    uuid.NewString(),
		items: cache.New(ttl, ttl),
	}
}

func (s *Store) ID() string {
	return s.id
}

func (s *Store) SetItem(key, value string) {
	s.items.Set(key, value, cache.DefaultExpiration)
}

func (s *Store) GetItem(key string) (string, bool) {
	value, found := s.items.Get(key)
	if !found {
		return "", false
	}

	str, ok := value.(string)

	return str, ok
}

func (s *Store) RemoveItem(key string) {
	s.items.Delete(key)
}

// Clear ends the session: every item is dropped.
func (s *Store) Clear() {
	s.items.Flush()
}
