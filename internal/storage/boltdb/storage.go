package boltdb

import (
	"encoding/binary"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.etcd.io/bbolt"

	"github.com/iudanet/feedsync/internal/models"
	"github.com/iudanet/feedsync/internal/storage"
)

var (
	_ storage.CacheStore  = (*Storage)(nil)
	_ storage.ActionQueue = (*Storage)(nil)
)

var (
	// BoltDB bucket names
	bucketFeed    = []byte("feed")
	bucketActions = []byte("pendingActions")
)

// memoryCacheSize bounds the in-memory mirror of the feed cache. It is
// also the effective cache size when the persistent medium is
// unavailable for the session.
const memoryCacheSize = 1024

// Storage implements the cache store and the pending action queue on top
// of BoltDB, with an in-memory mirror that keeps the engine usable when
// the medium cannot be opened or a write fails (quota, read-only mount).
//
// The persistent medium is optional: every operation succeeds in memory
// first and persists best-effort. Available reports whether writes are
// still reaching disk.
type Storage struct {
	db     *bbolt.DB
	logger *slog.Logger

	mu       sync.RWMutex
	items    *lru.Cache[string, *models.FeedItem]
	queue    []*models.PendingAction
	seq      uint64
	degraded bool
	closed   bool
}

// Open opens the database at dbPath and loads the pending action queue
// into memory. Open never fails: when the medium is unusable the storage
// degrades to memory-only operation and logs the reason.
func Open(dbPath string, logger *slog.Logger) *Storage {
	items, _ := lru.New[string, *models.FeedItem](memoryCacheSize)

	s := &Storage{
		items:  items,
		logger: logger,
	}

	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		logger.Warn("persistent storage unavailable, running in-memory", "path", dbPath, "error", err)
		return s
	}
	s.db = db

	if err := s.initBuckets(); err != nil {
		logger.Warn("failed to initialize buckets, running in-memory", "error", err)
		_ = db.Close()
		s.db = nil
		return s
	}

	if err := s.loadQueue(); err != nil {
		logger.Warn("failed to load pending actions", "error", err)
	}

	return s
}

// Close closes the database connection. The storage keeps serving from
// memory afterwards.
func (s *Storage) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Available reports whether writes are still reaching the persistent
// medium.
func (s *Storage) Available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.available()
}

// available must be called with mu held.
func (s *Storage) available() bool {
	return s.db != nil && !s.degraded && !s.closed
}

// degrade switches the storage to memory-only operation after a failed
// write. Called with mu held.
func (s *Storage) degrade(op string, err error) {
	if s.degraded {
		return
	}
	s.degraded = true
	s.logger.Warn("persistent storage write failed, degrading to in-memory", "op", op, "error", err)
}

func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketFeed); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketActions); err != nil {
			return err
		}
		return nil
	})
}

// loadQueue restores the pending action queue persisted by a previous
// session. Bucket keys are big-endian sequence numbers, so cursor order
// is FIFO enqueue order.
func (s *Storage) loadQueue() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketActions)
		if bucket == nil {
			return nil
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var action models.PendingAction
			if err := json.Unmarshal(v, &action); err != nil {
				s.logger.Warn("skipping corrupt pending action", "error", err)
				continue
			}
			s.queue = append(s.queue, &action)
			s.seq = binary.BigEndian.Uint64(k)
		}
		return nil
	})
}

// seqKey encodes a queue sequence number as a sortable bucket key.
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
