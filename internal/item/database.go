package item

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"
)

const itemsBucketName = "items"

// Store defines the interface for item persistence. Items are stored in
// insertion order; there are no update or delete operations.
type Store interface {
	// Append saves an item, assigning its ID
	Append(item *Item) error

	// GetAll returns all items in insertion order
	GetAll() ([]*Item, error)

	// History returns the items for one product name, ordered by date
	History(name string) ([]*Item, error)

	// Names returns the distinct product names, sorted
	Names() ([]string, error)

	// Close closes the database connection
	Close() error
}

// BoltStore implements the Store interface using BoltDB
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore creates a new BoltStore instance
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(itemsBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Append saves an item under the next sequence number. Big-endian keys keep
// bbolt's key order equal to insertion order.
func (b *BoltStore) Append(item *Item) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(itemsBucketName))
		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("allocating sequence: %w", err)
		}
		item.ID = seq

		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshaling item: %w", err)
		}
		return bucket.Put(itemKey(seq), data)
	})
}

// GetAll returns all items in insertion order
func (b *BoltStore) GetAll() ([]*Item, error) {
	items := make([]*Item, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(itemsBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var item Item
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("unmarshaling item: %w", err)
			}
			items = append(items, &item)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// History returns the items for one product name, ordered by date
func (b *BoltStore) History(name string) ([]*Item, error) {
	all, err := b.GetAll()
	if err != nil {
		return nil, err
	}

	items := make([]*Item, 0)
	for _, item := range all {
		if item.Name == name {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date < items[j].Date
	})
	return items, nil
}

// Names returns the distinct product names, sorted
func (b *BoltStore) Names() ([]string, error) {
	all, err := b.GetAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, item := range all {
		if !seen[item.Name] {
			seen[item.Name] = true
			names = append(names, item.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the database connection
func (b *BoltStore) Close() error {
	return b.db.Close()
}

func itemKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
