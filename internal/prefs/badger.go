// SPDX-License-Identifier: MIT

package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore keeps preferences in an embedded Badger database.
// Keys are "<namespace>\x00<key>".
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens the Badger directory at path.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("prefs: open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func badgerKey(namespace, key string) []byte {
	return []byte(namespace + "\x00" + key)
}

func (s *BadgerStore) Get(_ context.Context, namespace, key string) (string, error) {
	var out string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(namespace, key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("prefs: get %s/%s: %w", namespace, key, err)
	}
	return out, nil
}

func (s *BadgerStore) Set(_ context.Context, namespace, key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(namespace, key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("prefs: set %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *BadgerStore) Delete(_ context.Context, namespace, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(namespace, key))
	})
	if err != nil {
		return fmt.Errorf("prefs: delete %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *BadgerStore) Ping(context.Context) error {
	if s.db.IsClosed() {
		return errors.New("prefs: badger store closed")
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
