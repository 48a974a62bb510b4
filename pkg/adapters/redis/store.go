package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/morphfst/pkg/codec"
	"github.com/aretw0/morphfst/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
// Under it automata live at "fst:<key>", the key index at "index" and
// build locks at "lock:<key>", so no user key can collide with another.
const DefaultPrefix = "morphfst:"

const dataNamespace = "fst:"

// noExpiryScore stands in for +Inf in the index when no TTL is set.
const noExpiryScore = 4102444800 // 2100-01-01

// Store implements ports.AutomatonStore using Redis.
// Values are codec-encoded automata; a sorted set indexes the keys.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored automata.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(k string) string {
	return s.prefix + dataNamespace + k
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the automaton and records it in the index.
func (s *Store) Save(ctx context.Context, key string, a *domain.Automaton) error {
	data, err := codec.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode automaton: %w", err)
	}

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = noExpiryScore
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(key), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: key})
	if _, err := pipe.Exec(ctx); err != nil {
		return &domain.StoreError{Op: "save", Key: key, Err: err}
	}
	return nil
}

// Load retrieves and decodes the automaton.
func (s *Store) Load(ctx context.Context, key string) (*domain.Automaton, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrAutomatonNotFound
		}
		return nil, &domain.StoreError{Op: "load", Key: key, Err: err}
	}
	a, err := codec.Unmarshal(data)
	if err != nil {
		return nil, &domain.StoreError{Op: "load", Key: key, Err: err}
	}
	return a, nil
}

// Exists reports whether key is present.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, &domain.StoreError{Op: "exists", Key: key, Err: err}
	}
	return n > 0, nil
}

// Delete removes the automaton and its index entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(key))
	pipe.ZRem(ctx, s.indexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return &domain.StoreError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// List returns live keys, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Key: s.indexKey(), Err: err}
	}

	keys, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Key: s.indexKey(), Err: err}
	}
	return keys, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
