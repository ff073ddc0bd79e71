// Package analysiscache memoizes evaluate responses in an embedded Badger
// database, keyed by position and search depth, so repeated requests for
// the same (fen, depth) pair skip re-searching.
package analysiscache

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Cache wraps a Badger database holding JSON-encoded evaluate results.
type Cache struct {
	db  *badger.DB
	log *zap.Logger
}

// Open opens (or creates) a Badger database at dir. logger may be nil, in
// which case cache errors are swallowed silently rather than logged.
func Open(dir string, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db, log: logger}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

func key(fen string, depth int) []byte {
	return []byte(fmt.Sprintf("%s|%02d", fen, depth))
}

// Get looks up a previously stored result for (fen, depth) and decodes it
// into v. It reports false on a miss, a decode failure, or any Badger
// error; callers always fall through to a fresh search on false.
func (c *Cache) Get(fen string, depth int, v any) bool {
	var raw []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(fen, depth))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.log.Warn("analysis cache read failed", zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		c.log.Warn("analysis cache decode failed", zap.Error(err))
		return false
	}
	return true
}

// Put stores v under (fen, depth), overwriting any existing entry. A
// failure is logged and otherwise ignored: a cache write failing must
// never fail the request that produced the result it would have cached.
func (c *Cache) Put(fen string, depth int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("analysis cache encode failed", zap.Error(err))
		return
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(fen, depth), data)
	})
	if err != nil {
		c.log.Warn("analysis cache write failed", zap.Error(err))
	}
}
