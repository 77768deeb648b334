package client

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Store serializes dispatches against a single State and writes the
// advisory cache after each one.
type Store struct {
	mu    sync.Mutex
	state State
	cache *Cache
	log   *logrus.Logger
}

// NewStore seeds the state from cache when it holds data. A nil cache disables persistence.
func NewStore(cache *Cache, log *logrus.Logger) *Store {
	s := &Store{cache: cache, log: log, state: State{Loading: true}}
	if cache == nil {
		return s
	}

	cached, ok, err := cache.Load()
	if err != nil {
		log.WithError(err).Warn("Client.Store.CacheLoadError")
		return s
	}
	cached.Loading = !ok
	s.state = cached
	return s
}

// Dispatch applies action and returns the resulting state.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, action)
	s.persist()
	return s.state
}

// Update applies fn under the store lock, for protocol steps that need
// the current state, such as ApplyOptimisticAdd.
func (s *Store) Update(fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = fn(s.state)
	s.persist()
	return s.state
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) persist() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Save(s.state); err != nil {
		s.log.WithError(err).Warn("Client.Store.CacheSaveError")
	}
}
