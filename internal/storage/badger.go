package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Keys persisted by the front end
const (
	KeyAuthToken        = "authToken"
	KeyPackageSelection = "currentPackageSelection"
)

// Store is the persistent local key-value storage backing the session and the package-selection fallback
type Store struct {
	db     *badger.DB
	logger *zap.Logger
}

// Open opens the store at path. An empty path keeps everything in memory.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{logger.Sugar()})
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// GetString returns the value for key; ok is false when the key is absent
func (s *Store) GetString(key string) (string, bool, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("Failed to read local storage key", zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	return string(val), true, nil
}

// SetString stores value under key
func (s *Store) SetString(key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		s.logger.Error("Failed to write local storage key", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Delete removes key; deleting an absent key is not an error
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		s.logger.Error("Failed to delete local storage key", zap.String("key", key), zap.Error(err))
	}
	return err
}

// GetJSON decodes the JSON blob under key into out
func (s *Store) GetJSON(key string, out interface{}) (bool, error) {
	raw, ok, err := s.GetString(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key
func (s *Store) SetJSON(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.SetString(key, string(raw))
}

// badgerLogger routes badger's internal logging through zap
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(f string, v ...interface{})   { l.s.Errorf(f, v...) }
func (l badgerLogger) Warningf(f string, v ...interface{}) { l.s.Warnf(f, v...) }
func (l badgerLogger) Infof(f string, v ...interface{})    { l.s.Debugf(f, v...) }
func (l badgerLogger) Debugf(f string, v ...interface{})   { l.s.Debugf(f, v...) }
