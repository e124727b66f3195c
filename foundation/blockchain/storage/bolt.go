package storage

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BoltKV is a bbolt-backed KV. Every bucket a caller writes to is created
// lazily on first Put, so callers never need to pre-declare their bucket
// set.
type BoltKV struct {
	db *bolt.DB
}

// OpenBolt opens (creating if necessary) a bbolt database file at path.
// The parent directory is created if missing.
func OpenBolt(path string) (*BoltKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0o660, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errors.New("cannot obtain database lock, database may be in use by another process")
		}
		return nil, err
	}

	return &BoltKV{db: db}, nil
}

// Put writes value under key in bucket, creating bucket if it does not
// exist yet. The write happens inside a single bbolt write transaction,
// giving the caller per-call atomicity for free.
func (s *BoltKV) Put(bucket, key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		return bkt.Put([]byte(key), value)
	})
}

// Get reads the value stored under key in bucket, or ErrNotFound if either
// the bucket or the key is absent.
func (s *BoltKV) Get(bucket, key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucket))
		if bkt == nil {
			return ErrNotFound
		}
		v := bkt.Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

// Delete removes key from bucket. A missing bucket or key is not an error.
func (s *BoltKV) Delete(bucket, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucket))
		if bkt == nil {
			return nil
		}
		return bkt.Delete([]byte(key))
	})
}

// ForEach walks every key/value pair in bucket, in bbolt's byte-sorted key
// order. A missing bucket walks zero entries rather than erroring.
func (s *BoltKV) ForEach(bucket string, fn func(key, value []byte) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucket))
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(fn)
	})
}

// Close releases the underlying bbolt file lock.
func (s *BoltKV) Close() error {
	return s.db.Close()
}

var _ KV = (*BoltKV)(nil)
