// Package session keeps login sessions in an embedded Badger database.
package session

import (
	"errors"
	"fmt"
	"time"

	"simpleblog/app/auth"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const keyPrefix = "session:"

// ErrNotFound is returned for unknown or expired tokens.
var ErrNotFound = errors.New("session not found")

// Store maps opaque tokens to usernames. Entries expire after the TTL.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens the session database at path. An empty path keeps sessions in
// memory only.
func Open(path string, ttl time.Duration) (*Store, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return NewStore(db, ttl), nil
}

// NewStore wraps an open Badger database.
func NewStore(db *badger.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create starts a session for username and returns its token.
func (s *Store) Create(username string) (string, error) {
	if username == "" {
		return "", errors.New("username cannot be empty")
	}

	token := uuid.NewString()
	err := s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(sessionKey(token), []byte(username))
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}

// Lookup returns the principal owning token.
func (s *Store) Lookup(token string) (auth.Principal, error) {
	if token == "" {
		return auth.Anonymous, ErrNotFound
	}

	var username string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(token))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			username = string(val)
			return nil
		})
	})
	if err != nil {
		return auth.Anonymous, err
	}
	return auth.Principal{Username: username}, nil
}

// Delete ends a session. Deleting an unknown token is not an error.
func (s *Store) Delete(token string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(token))
	})
}

func sessionKey(token string) []byte {
	return []byte(keyPrefix + token)
}
