package localstore

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates the persistent store facility is not usable in the
// current environment (no storage directory configured, or the directory
// cannot be created). Non-retryable; callers should skip persistence.
var ErrUnavailable = errors.New("local storage unavailable")

// ReadError wraps an I/O or decode failure during a load.
type ReadError struct {
	Database  string
	Partition string
	Key       string
	Err       error
}

// Error implements the error interface
func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s/%s[%s]: %v", e.Database, e.Partition, e.Key, e.Err)
}

// Unwrap returns the underlying error
func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError wraps an I/O or encode failure during a save or delete.
type WriteError struct {
	Database  string
	Partition string
	Key       string
	Err       error
}

// Error implements the error interface
func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s/%s[%s]: %v", e.Database, e.Partition, e.Key, e.Err)
}

// Unwrap returns the underlying error
func (e *WriteError) Unwrap() error {
	return e.Err
}

func newReadError(conn *Connection, partition, key string, err error) *ReadError {
	return &ReadError{
		Database:  conn.databaseName,
		Partition: partition,
		Key:       key,
		Err:       err,
	}
}

func newWriteError(conn *Connection, partition, key string, err error) *WriteError {
	return &WriteError{
		Database:  conn.databaseName,
		Partition: partition,
		Key:       key,
		Err:       err,
	}
}
