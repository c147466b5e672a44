// Package session holds the live audio items of an editing session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/rokujyushi/voicevox/internal/audio"
)

// ErrUnknownKey is returned when an operation names a key not in the store.
var ErrUnknownKey = errors.New("unknown audio key")

// Store keeps audio items in display order. Order is defined by the
// sequence of keys, each item being inserted after a previous key.
type Store struct {
	mu     sync.RWMutex
	keys   []audio.AudioKey
	items  map[audio.AudioKey]audio.AudioItem
	newKey func() audio.AudioKey
}

// NewStore returns an empty store that generates random UUID keys.
func NewStore() *Store {
	return &Store{
		items:  make(map[audio.AudioKey]audio.AudioItem),
		newKey: func() audio.AudioKey { return audio.AudioKey(uuid.New().String()) },
	}
}

// RegisterAudioItem stores a copy of item under a fresh key placed right
// after prev, or at the end when prev is the zero key.
func (s *Store) RegisterAudioItem(ctx context.Context, prev audio.AudioKey, item audio.AudioItem) (audio.AudioKey, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := len(s.keys)
	if prev != "" {
		i := s.indexOf(prev)
		if i < 0 {
			return "", fmt.Errorf("register after %q: %w", prev, ErrUnknownKey)
		}
		index = i + 1
	}

	key := s.newKey()
	s.keys = append(s.keys, "")
	copy(s.keys[index+1:], s.keys[index:])
	s.keys[index] = key
	s.items[key] = item.Clone()
	return key, nil
}

// RemoveAudioItem deletes a single item.
func (s *Store) RemoveAudioItem(ctx context.Context, key audio.AudioKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return fmt.Errorf("remove %q: %w", key, ErrUnknownKey)
	}
	s.keys = append(s.keys[:i], s.keys[i+1:]...)
	delete(s.items, key)
	return nil
}

// RemoveAllAudioItems empties the store.
func (s *Store) RemoveAllAudioItems(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys = nil
	s.items = make(map[audio.AudioKey]audio.AudioItem)
	return nil
}

// Snapshot returns deep copies of the keys, in order, and the items.
func (s *Store) Snapshot() ([]audio.AudioKey, map[audio.AudioKey]audio.AudioItem) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]audio.AudioKey, len(s.keys))
	copy(keys, s.keys)
	items := make(map[audio.AudioKey]audio.AudioItem, len(s.items))
	for k, v := range s.items {
		items[k] = v.Clone()
	}
	return keys, items
}

// Keys returns the keys in display order.
func (s *Store) Keys() []audio.AudioKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]audio.AudioKey, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Item returns a copy of the item stored under key.
func (s *Store) Item(key audio.AudioKey) (audio.AudioItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[key]
	if !ok {
		return audio.AudioItem{}, false
	}
	return item.Clone(), true
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Items returns copies of the items in display order.
func (s *Store) Items() []audio.AudioItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]audio.AudioItem, 0, len(s.keys))
	for _, key := range s.keys {
		out = append(out, s.items[key].Clone())
	}
	return out
}

func (s *Store) indexOf(key audio.AudioKey) int {
	for i, k := range s.keys {
		if k == key {
			return i
		}
	}
	return -1
}
