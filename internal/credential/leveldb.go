package credential

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDBStore keeps properties in a local LevelDB database.
type LevelDBStore struct {
	db *leveldb.DB
}

// OpenLevelDB opens or creates the database at dir.
func OpenLevelDB(dir string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("open property store %s: %w", dir, err)
	}
	return &LevelDBStore{db: db}, nil
}

// NewLevelDBStore wraps an already open database.
func NewLevelDBStore(db *leveldb.DB) *LevelDBStore {
	return &LevelDBStore{db: db}
}

func (s *LevelDBStore) Get(key string) (string, bool, error) {
	value, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(value), true, nil
}

func (s *LevelDBStore) Set(key, value string) error {
	return s.db.Put([]byte(key), []byte(value), nil)
}

func (s *LevelDBStore) Delete(key string) error {
	return s.db.Delete([]byte(key), nil)
}

func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

var _ PropertyStore = (*LevelDBStore)(nil)
