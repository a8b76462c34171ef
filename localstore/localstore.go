package localstore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger"
	log "github.com/sirupsen/logrus"
)

const logPrefix = "localstore"

// Store keeps json values by key and survives restarts
type Store interface {
	Get(key string, v interface{}) (bool, error)
	Put(key string, v interface{}) error
	Delete(key string) error
	Close() error
}

type badgerStore struct {
	db *badger.DB
}

// Open opens or creates the store in dir
func Open(dir string) (Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(log.WithField("prefix", logPrefix))

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("while opening badger kv dir: %w", err)
	}
	return &badgerStore{db: db}, nil
}

func (s *badgerStore) Get(key string, v interface{}) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (s *badgerStore) Put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *badgerStore) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}

// Memory is a Store that lives as long as the process
type Memory struct {
	sync.Mutex
	values map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(key string, v interface{}) (bool, error) {
	m.Lock()
	data, ok := m.values[key]
	m.Unlock()

	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

func (m *Memory) Put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	m.Lock()
	defer m.Unlock()
	m.values[key] = data
	return nil
}

func (m *Memory) Delete(key string) error {
	m.Lock()
	defer m.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
