// Package provider is the in-memory stand-in for the "key/IMSI
// database lookup" collaborator named in spec.md §1: it answers the
// core's GetK and GetSQN callbacks from a map loaded at startup, never
// touching a network or a persistent store.
package provider

import "sync"

// Subscriber is one provisioned identity's key material.
type Subscriber struct {
	Identity string
	K        [16]byte
	SQN      [6]byte
}

// Store is a concurrency-safe, in-memory subscriber key store. Unlike
// the per-session Card and Functions instances, Store is genuinely
// shared across cards and is guarded accordingly.
type Store struct {
	mu   sync.RWMutex
	subs map[string]Subscriber
}

// NewStore builds a Store from the given subscribers.
func NewStore(subs []Subscriber) *Store {
	s := &Store{subs: make(map[string]Subscriber, len(subs))}
	for _, sub := range subs {
		s.subs[sub.Identity] = sub
	}
	return s
}

// GetK implements card.KeyLookup.
func (s *Store) GetK(identity string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subs[identity]
	if !ok {
		return nil, false
	}
	k := make([]byte, len(sub.K))
	copy(k, sub.K[:])
	return k, true
}

// GetSQN returns the seeded initial SQN for identity, or the zero SQN
// if the identity is unknown (a card construction can still proceed;
// the first GetQuintuplet call will fail with ErrKeyNotFound).
func (s *Store) GetSQN(identity string) [6]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subs[identity].SQN
}

// Put provisions or updates a subscriber.
func (s *Store) Put(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.Identity] = sub
}
