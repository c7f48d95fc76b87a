package localstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/031wnstjd/appkit/pkg/observability/logger"
)

// Codec converts a value to and from the store's raw representation. The
// store itself is schema-agnostic; the codec is the caller's serialization
// contract for T.
type Codec[T any] interface {
	Encode(value *T) ([]byte, error)
	Decode(data []byte) (*T, error)
}

// JSONCodec is the default Codec, serializing values as JSON.
type JSONCodec[T any] struct{}

// Encode marshals the value as JSON
func (JSONCodec[T]) Encode(value *T) ([]byte, error) {
	return json.Marshal(value)
}

// Decode unmarshals the value from JSON
func (JSONCodec[T]) Decode(data []byte) (*T, error) {
	value := new(T)
	if err := json.Unmarshal(data, value); err != nil {
		return nil, err
	}
	return value, nil
}

// LoadState is the observable state of one Record instance. Data is nil until
// a load or save succeeds; Err is non-nil only after a failed operation and
// is cleared when the next operation starts.
type LoadState[T any] struct {
	Data    *T
	Loading bool
	Err     error
}

// RecordOption configures a Record.
type RecordOption[T any] func(*Record[T])

// WithCodec overrides the default JSON codec.
func WithCodec[T any](codec Codec[T]) RecordOption[T] {
	return func(r *Record[T]) {
		if codec != nil {
			r.codec = codec
		}
	}
}

// WithRecordLogger assigns the logger used for operation failures.
func WithRecordLogger[T any](log logger.Logger) RecordOption[T] {
	return func(r *Record[T]) {
		if log != nil {
			r.logger = log
		}
	}
}

// Record provides typed load/save/delete access to a single logical value
// addressed by key within one partition of an open connection. Each Record
// holds its own LoadState; Records sharing a connection do not observe each
// other's writes until Refresh is called.
type Record[T any] struct {
	conn      *Connection
	partition string
	key       string
	codec     Codec[T]
	logger    logger.Logger

	mu    sync.Mutex
	state LoadState[T]
}

// NewRecord creates a Record bound to (conn, partition, key).
func NewRecord[T any](conn *Connection, partition, key string, opts ...RecordOption[T]) *Record[T] {
	r := &Record[T]{
		conn:      conn,
		partition: partition,
		key:       key,
		codec:     JSONCodec[T]{},
		logger:    logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns a snapshot of the record's load state.
func (r *Record[T]) State() LoadState[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Load reads the stored value. A key that was never saved yields (nil, nil);
// only genuine I/O or decode failures produce a *ReadError.
func (r *Record[T]) Load(ctx context.Context) (*T, error) {
	// A context already done before the operation starts means the owner is
	// being torn down; abort without touching the instance state.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.begin()
	start := time.Now()

	raw, err := r.conn.Get(ctx, r.partition, r.key)
	if err != nil {
		return nil, r.fail("load", start, newReadError(r.conn, r.partition, r.key, err))
	}
	if raw == nil {
		r.succeed("load", start, nil)
		return nil, nil
	}

	value, err := r.codec.Decode(raw)
	if err != nil {
		return nil, r.fail("load", start, newReadError(r.conn, r.partition, r.key, err))
	}

	r.succeed("load", start, value)
	return value, nil
}

// Save writes value under the record's key, fully replacing any previous
// value. On failure the in-memory Data field keeps its pre-call value.
func (r *Record[T]) Save(ctx context.Context, value T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.begin()
	start := time.Now()

	raw, err := r.codec.Encode(&value)
	if err != nil {
		return r.fail("save", start, newWriteError(r.conn, r.partition, r.key, err))
	}
	if err := r.conn.Put(ctx, r.partition, raw, r.key); err != nil {
		return r.fail("save", start, newWriteError(r.conn, r.partition, r.key, err))
	}

	r.succeed("save", start, &value)
	return nil
}

// Remove deletes the record; a subsequent Load returns nil.
func (r *Record[T]) Remove(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.begin()
	start := time.Now()

	if err := r.conn.Delete(ctx, r.partition, r.key); err != nil {
		return r.fail("remove", start, newWriteError(r.conn, r.partition, r.key, err))
	}

	r.succeed("remove", start, nil)
	return nil
}

// Refresh re-issues a load and replaces the cached Data. Used to reconcile
// after an external writer changed the record through another instance.
func (r *Record[T]) Refresh(ctx context.Context) error {
	_, err := r.Load(ctx)
	return err
}

// begin marks an operation in flight and clears any previous error.
func (r *Record[T]) begin() {
	r.mu.Lock()
	r.state.Loading = true
	r.state.Err = nil
	r.mu.Unlock()
}

func (r *Record[T]) succeed(operation string, start time.Time, data *T) {
	r.mu.Lock()
	r.state.Loading = false
	r.state.Data = data
	r.mu.Unlock()
	observeOperation(operation, "success", time.Since(start))
}

// fail records err in the instance state and returns it; Data is untouched.
func (r *Record[T]) fail(operation string, start time.Time, err error) error {
	r.mu.Lock()
	r.state.Loading = false
	r.state.Err = err
	r.mu.Unlock()
	observeOperation(operation, "error", time.Since(start))
	r.logger.Error("local store operation failed",
		"operation", operation,
		"database", r.conn.databaseName,
		"partition", r.partition,
		"key", r.key,
		"error", err,
	)
	return err
}
