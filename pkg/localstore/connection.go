package localstore

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/031wnstjd/appkit/pkg/observability/logger"
)

// Connection is an opened handle to a named database at a specific version.
// All reads and writes address a named partition within the database. A
// connection is shared by every caller that requested the same
// (databaseName, version) pair and stays open for the life of the process.
type Connection struct {
	databaseName string
	version      int
	path         string
	db           *bolt.DB
	logger       logger.Logger
}

// DatabaseName returns the logical database name the connection was opened with.
func (c *Connection) DatabaseName() string {
	return c.databaseName
}

// Version returns the schema version the connection was opened with.
func (c *Connection) Version() int {
	return c.version
}

// Path returns the filesystem path of the backing database file.
func (c *Connection) Path() string {
	return c.path
}

// ensurePartition creates the named partition if the database does not
// already contain it. This is the only mutation performed during open.
func (c *Connection) ensurePartition(name string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	})
}

// Get retrieves the raw value stored under key in the named partition.
// A missing key (or a partition never written to) yields (nil, nil).
func (c *Connection) Get(ctx context.Context, partition, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(partition))
		if bucket == nil {
			return nil
		}
		if raw := bucket.Get([]byte(key)); raw != nil {
			value = append([]byte{}, raw...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, nil
}

// Put stores value under key in the named partition, fully replacing any
// previous value.
func (c *Connection) Put(ctx context.Context, partition string, value []byte, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := c.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(partition))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to put key %s: %w", key, err)
	}
	return nil
}

// Delete removes the record stored under key in the named partition.
// Deleting a missing key is not an error.
func (c *Connection) Delete(ctx context.Context, partition, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := c.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(partition))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Partitions lists the partition names present in the database.
func (c *Connection) Partitions(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var names []string
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}
	return names, nil
}

// Keys lists the keys present in the named partition.
func (c *Connection) Keys(ctx context.Context, partition string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var keys []string
	err := c.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(partition))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(key, _ []byte) error {
			keys = append(keys, string(key))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keys in partition %s: %w", partition, err)
	}
	return keys, nil
}

func (c *Connection) close() error {
	return c.db.Close()
}
