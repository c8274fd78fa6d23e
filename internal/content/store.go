package content

import (
	"iter"
	"sync"

	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// Store holds every post discovered during a single build pass. It is
// append-only: posts are re-parsed wholesale on each build, never patched in
// place. Reads are safe to fan out across render workers once population is
// complete.
type Store struct {
	mu     sync.RWMutex
	posts  map[string]*Post
	order  []string
	logger interfaces.Logger
}

// NewStore constructs an empty store. A nil logger falls back to no-op.
func NewStore(logger interfaces.Logger) *Store {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Store{
		posts:  map[string]*Post{},
		logger: logger,
	}
}

// Add appends a post, keyed by its identifier.
func (s *Store) Add(post *Post) error {
	if post == nil || post.Identifier == "" {
		return ErrIdentifierRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[post.Identifier]; ok {
		return &DuplicateIdentifierError{Identifier: post.Identifier}
	}

	s.posts[post.Identifier] = post
	s.order = append(s.order, post.Identifier)
	s.logger.Debug("store.post.added", "identifier", post.Identifier)
	return nil
}

// Get returns the post stored under identifier.
func (s *Store) Get(identifier string) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[identifier]
	if !ok {
		return nil, ErrNotFound
	}
	return post, nil
}

// All yields posts in discovery order. The sequence is restartable; callers
// needing date order go through the index builder instead.
func (s *Store) All() iter.Seq[*Post] {
	return func(yield func(*Post) bool) {
		s.mu.RLock()
		order := append([]string(nil), s.order...)
		s.mu.RUnlock()

		for _, identifier := range order {
			s.mu.RLock()
			post := s.posts[identifier]
			s.mu.RUnlock()
			if post == nil {
				continue
			}
			if !yield(post) {
				return
			}
		}
	}
}

// Len reports how many posts the store holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
