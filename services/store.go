package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"nexusmatch/models"
	"nexusmatch/seed"
	"nexusmatch/storage"
)

// DefaultKeyPrefix namespaces every blob the store writes.
const DefaultKeyPrefix = "@nexusmatch_"

// Collection names, also the suffix of each storage key.
const (
	CollectionProfile       = "user"
	CollectionMatches       = "matches"
	CollectionConnections   = "connections"
	CollectionConversations = "conversations"
	CollectionTournaments   = "tournaments"
)

// collection is one independently persisted piece of state. mu is held for
// the whole read-modify-persist sequence of a mutation. dirty marks a value
// whose last write to the blob store failed.
type collection[T any] struct {
	mu    sync.Mutex
	name  string
	key   string
	value T
	dirty bool
}

// Store is the single authority over the profile and the four seeded
// collections. Build one per process with New and share the pointer.
//
// Lock order, when more than one is needed:
// connections, conversations, matches, tournaments, profile.
type Store struct {
	blobs     storage.BlobStore
	generator seed.Generator
	prefix    string
	now       func() time.Time
	strict    bool
	weights   XPWeights

	loading atomic.Bool
	events  *broadcaster

	profile       collection[*models.Profile]
	matches       collection[[]models.MatchRequest]
	connections   collection[[]models.Connection]
	conversations collection[[]models.Conversation]
	tournaments   collection[[]models.Tournament]
}

type Option func(*Store)

// WithKeyPrefix changes the storage namespace.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithStrictWrites makes every mutation write-ahead: the blob is persisted
// first and memory only changes once the write succeeded.
func WithStrictWrites(strict bool) Option {
	return func(s *Store) { s.strict = strict }
}

func WithXPWeights(w XPWeights) Option {
	return func(s *Store) { s.weights = w }
}

// New builds a store; call Load before serving reads.
func New(blobs storage.BlobStore, generator seed.Generator, opts ...Option) *Store {
	s := &Store{
		blobs:     blobs,
		generator: generator,
		prefix:    DefaultKeyPrefix,
		now:       time.Now,
		weights:   DefaultXPWeights,
		events:    newBroadcaster(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.profile.name, s.profile.key = CollectionProfile, s.prefix+CollectionProfile
	s.matches.name, s.matches.key = CollectionMatches, s.prefix+CollectionMatches
	s.connections.name, s.connections.key = CollectionConnections, s.prefix+CollectionConnections
	s.conversations.name, s.conversations.key = CollectionConversations, s.prefix+CollectionConversations
	s.tournaments.name, s.tournaments.key = CollectionTournaments, s.prefix+CollectionTournaments

	s.loading.Store(true)
	return s
}

// Loading is true until Load has resolved every key.
func (s *Store) Loading() bool {
	return s.loading.Load()
}

// KeyPrefix is the namespace all keys share.
func (s *Store) KeyPrefix() string {
	return s.prefix
}

// Load reads every collection, seeding the ones that were never persisted.
// It is not atomic across keys; a failure on one key only affects that key.
func (s *Store) Load(ctx context.Context) {
	defer s.loading.Store(false)

	load(ctx, s, &s.profile, nil)
	load(ctx, s, &s.matches, s.generator.Matches)
	load(ctx, s, &s.connections, s.generator.Connections)
	load(ctx, s, &s.conversations, s.generator.Conversations)
	load(ctx, s, &s.tournaments, s.generator.Tournaments)

	log.Printf("[STORE] ✅ Loaded: onboarded=%t matches=%d connections=%d conversations=%d tournaments=%d",
		s.IsOnboarded(), len(s.Matches()), len(s.Connections()), len(s.Conversations()), len(s.Tournaments()))
}

// load resolves one key. A nil generate means the collection is never
// seeded (the profile).
func load[T any](ctx context.Context, s *Store, c *collection[T], generate func(context.Context) (T, error)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok, err := s.blobs.Get(ctx, c.key)
	if err != nil {
		// Seed in memory only; writing back could clobber a blob we just
		// failed to read.
		log.Printf("[STORE] ❌ Failed to read %s, continuing in memory: %v", c.key, err)
		if generate != nil {
			if v, genErr := generate(ctx); genErr == nil {
				c.value = v
			}
		}
		return
	}

	if ok {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			c.value = v
			return
		}
		log.Printf("[STORE] ⚠️ Discarding unreadable %s: %v", c.key, err)
	}

	if generate == nil {
		var zero T
		c.value = zero
		return
	}

	v, err := generate(ctx)
	if err != nil {
		log.Printf("[STORE] ❌ Seeding %s failed: %v", c.key, err)
		return
	}
	if err := commit(ctx, s, c, v); err != nil {
		log.Printf("[STORE] ⚠️ Seeded %s kept in memory only: %v", c.key, err)
	}
	log.Printf("[STORE] 🌱 Seeded %s", c.key)
}

// commit installs next as the collection value and persists it. The caller
// holds c.mu.
//
// Default mode is memory-first: a failed write is logged, the collection is
// marked dirty for Flush and the mutation still succeeds. Strict mode writes
// first and leaves memory untouched on failure.
func commit[T any](ctx context.Context, s *Store, c *collection[T], next T) error {
	payload, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}

	if s.strict {
		if err := s.blobs.Set(ctx, c.key, string(payload)); err != nil {
			log.Printf("[STORE] ❌ Write of %s failed, change rejected: %v", c.key, err)
			return fmt.Errorf("%w: write %s: %w", ErrIO, c.key, err)
		}
		c.value = next
		c.dirty = false
	} else {
		c.value = next
		if err := s.blobs.Set(ctx, c.key, string(payload)); err != nil {
			log.Printf("[STORE] ⚠️ Write of %s failed, kept in memory: %v", c.key, err)
			c.dirty = true
		} else {
			c.dirty = false
		}
	}

	s.events.publish(Change{Collection: c.name, At: s.now()})
	return nil
}

// flushOne re-persists c if its last write failed.
func flushOne[T any](ctx context.Context, s *Store, c *collection[T]) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}
	payload, err := json.Marshal(c.value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := s.blobs.Set(ctx, c.key, string(payload)); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	c.dirty = false
	log.Printf("[FLUSH] ✅ Reconciled %s", c.key)
	return nil
}

// Flush retries every collection whose last write failed.
func (s *Store) Flush(ctx context.Context) error {
	errs := []error{
		flushOne(ctx, s, &s.connections),
		flushOne(ctx, s, &s.conversations),
		flushOne(ctx, s, &s.matches),
		flushOne(ctx, s, &s.tournaments),
		flushOne(ctx, s, &s.profile),
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Dirty lists collections holding changes the blob store has not accepted.
func (s *Store) Dirty() []string {
	var out []string
	check := func(name string, mu *sync.Mutex, dirty *bool) {
		mu.Lock()
		defer mu.Unlock()
		if *dirty {
			out = append(out, name)
		}
	}
	check(s.connections.name, &s.connections.mu, &s.connections.dirty)
	check(s.conversations.name, &s.conversations.mu, &s.conversations.dirty)
	check(s.matches.name, &s.matches.mu, &s.matches.dirty)
	check(s.tournaments.name, &s.tournaments.mu, &s.tournaments.dirty)
	check(s.profile.name, &s.profile.mu, &s.profile.dirty)
	return out
}

// Reset wipes every key under the prefix and returns the store to the
// pre-onboarding state with freshly seeded collections.
func (s *Store) Reset(ctx context.Context) error {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	s.conversations.mu.Lock()
	defer s.conversations.mu.Unlock()
	s.matches.mu.Lock()
	defer s.matches.mu.Unlock()
	s.tournaments.mu.Lock()
	defer s.tournaments.mu.Unlock()
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	if err := s.blobs.Clear(ctx, s.prefix); err != nil {
		return fmt.Errorf("%w: clear %s: %w", ErrIO, s.prefix, err)
	}

	s.profile.value, s.profile.dirty = nil, false
	s.events.publish(Change{Collection: CollectionProfile, At: s.now()})

	var errs []error
	if v, err := s.generator.Matches(ctx); err == nil {
		errs = append(errs, commit(ctx, s, &s.matches, v))
	} else {
		errs = append(errs, err)
	}
	if v, err := s.generator.Connections(ctx); err == nil {
		errs = append(errs, commit(ctx, s, &s.connections, v))
	} else {
		errs = append(errs, err)
	}
	if v, err := s.generator.Conversations(ctx); err == nil {
		errs = append(errs, commit(ctx, s, &s.conversations, v))
	} else {
		errs = append(errs, err)
	}
	if v, err := s.generator.Tournaments(ctx); err == nil {
		errs = append(errs, commit(ctx, s, &s.tournaments, v))
	} else {
		errs = append(errs, err)
	}

	log.Printf("[STORE] 🧹 Local data wiped (prefix %s)", s.prefix)
	return errors.Join(errs...)
}

// Subscribe returns a feed of collection changes and a func to stop it.
func (s *Store) Subscribe() (<-chan Change, func()) {
	return s.events.subscribe()
}
