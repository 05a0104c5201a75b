package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/arloliu/fspscan/internal/kvutil"
	"github.com/arloliu/fspscan/internal/natsutil"
	"github.com/arloliu/fspscan/types"
)

// SourceKV is the metric and log label of KV registries.
const SourceKV = "kv"

// KV is a dish registry stored in a NATS JetStream KV bucket.
//
// Each dish is one key, "<prefix>.<dish id>", holding the JSON encoding of its
// Entry. Load reads the bucket once and fails on a bad value. Start keeps the
// registry current until Stop; there a bad value is logged and skipped, and
// the dish keeps its previous entry. If the watcher ends before Stop, because
// the Start context was cancelled or NATS closed the watch, the registry keeps
// serving its last entries and Watching reports false.
type KV struct {
	kv      jetstream.KeyValue
	opts    options
	entries *xsync.Map[string, Entry]

	mu      sync.Mutex
	watcher jetstream.KeyWatcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool

	watching atomic.Bool
}

var (
	_ types.DishRegistry = (*KV)(nil)
	_ types.Snapshotter  = (*KV)(nil)
)

// NewKV creates a registry over an open KV bucket. It starts empty; call Load
// or Start to read the bucket.
func NewKV(kv jetstream.KeyValue, opts ...Option) *KV {
	return &KV{
		kv:      kv,
		opts:    applyOptions(opts),
		entries: xsync.NewMap[string, Entry](),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// OpenKV creates or opens the registry bucket and loads it.
//
// Parameters:
//   - ctx: Context for bucket creation and the initial load
//   - js: JetStream context
//   - bucket: KV bucket name
//   - opts: WithLogger, WithMetrics, WithKeyPrefix
//
// Returns:
//   - *KV: Loaded registry
//   - error: If the bucket cannot be opened or read
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	reg, err := registry.OpenKV(ctx, js, "dishes")
//	if err := reg.Start(ctx); err != nil { /* handle */ }
//	defer reg.Stop()
func OpenKV(ctx context.Context, js jetstream.JetStream, bucket string, opts ...Option) (*KV, error) {
	kv, err := kvutil.EnsureKVBucketWithRetry(ctx, js, kvutil.RegistryBucketConfig(bucket), 0)
	if err != nil {
		return nil, classify(err)
	}

	r := NewKV(kv, opts...)
	if err := r.Load(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

// Key returns the bucket key of a dish.
func (r *KV) Key(dishID string) string {
	return r.opts.keyPrefix + "." + dishID
}

func (r *KV) dishID(key string) (string, bool) {
	id, ok := strings.CutPrefix(key, r.opts.keyPrefix+".")
	if !ok || id == "" {
		return "", false
	}

	return id, true
}

// Load replaces the contents with the current bucket contents.
//
// An empty bucket gives an empty registry. A value that does not decode fails
// the load and keeps the previous contents.
func (r *KV) Load(ctx context.Context) error {
	keys, err := r.kv.Keys(ctx)
	if err != nil && !natsutil.IsNoKeysFound(err) {
		r.opts.metrics.RecordRegistryReload(SourceKV, r.Len(), false)
		return classify(fmt.Errorf("failed to list registry keys: %w", err))
	}

	loaded := make(map[string]Entry, len(keys))
	for _, key := range keys {
		id, ok := r.dishID(key)
		if !ok {
			continue
		}
		kve, err := r.kv.Get(ctx, key)
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			r.opts.metrics.RecordRegistryReload(SourceKV, r.Len(), false)
			return classify(fmt.Errorf("failed to read registry key %s: %w", key, err))
		}
		e, err := decodeEntry(id, kve.Value())
		if err != nil {
			r.opts.metrics.RecordRegistryReload(SourceKV, r.Len(), false)
			return err
		}
		loaded[id] = e
	}

	r.entries.Clear()
	for id, e := range loaded {
		r.entries.Store(id, e)
	}

	r.opts.metrics.RecordRegistryReload(SourceKV, len(loaded), true)
	r.opts.logger.Info("dish registry loaded",
		"source", SourceKV,
		"bucket", r.kv.Bucket(),
		"dishes", len(loaded),
		"fingerprint", r.Fingerprint(),
	)

	return nil
}

// Start watches the bucket and applies every change.
//
// Start returns once the watcher has replayed the bucket, so the registry is
// current when it returns. A KV registry cannot be restarted after Stop.
//
// Returns:
//   - error: ErrAlreadyStarted, ErrAlreadyStopped, or a watch failure
func (r *KV) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return ErrAlreadyStopped
	}
	if r.started {
		return ErrAlreadyStarted
	}

	watcher, err := r.kv.Watch(ctx, r.opts.keyPrefix+".*")
	if err != nil {
		return classify(fmt.Errorf("failed to watch registry bucket: %w", err))
	}

	// The replay ends with a nil entry.
	seen := make(map[string]struct{})
	for replayed := false; !replayed; {
		select {
		case <-ctx.Done():
			_ = watcher.Stop()
			return ctx.Err()
		case kve, ok := <-watcher.Updates():
			if !ok {
				return fmt.Errorf("registry watcher closed during replay")
			}
			if kve == nil {
				replayed = true
				continue
			}
			if id, deleted, _ := r.apply(kve); id != "" && !deleted {
				seen[id] = struct{}{}
			}
		}
	}

	// Drop dishes removed while nothing was watching.
	r.entries.Range(func(id string, _ Entry) bool {
		if _, ok := seen[id]; !ok {
			r.entries.Delete(id)
		}

		return true
	})
	r.opts.metrics.RecordRegistryReload(SourceKV, r.Len(), true)

	r.watcher = watcher
	r.started = true
	r.watching.Store(true)
	go r.watchLoop(ctx, watcher)

	r.opts.logger.Info("dish registry watcher started",
		"bucket", r.kv.Bucket(),
		"dishes", r.Len(),
		"fingerprint", r.Fingerprint(),
	)

	return nil
}

// Stop ends the watcher and waits for it to exit.
//
// It is safe to call Stop more than once.
//
// Returns:
//   - error: ErrNotStarted if Start was never called
func (r *KV) Stop() error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return ErrNotStarted
	}
	if r.stopped {
		r.mu.Unlock()
		return nil
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh

	if err := r.watcher.Stop(); err != nil {
		r.opts.logger.Warn("failed to stop registry watcher", "error", err)
	}

	return nil
}

// Watching reports whether the registry is following bucket updates.
func (r *KV) Watching() bool {
	return r.watching.Load()
}

func (r *KV) watchLoop(ctx context.Context, watcher jetstream.KeyWatcher) {
	defer close(r.doneCh)
	defer r.watching.Store(false)

	for {
		select {
		case <-ctx.Done():
			r.opts.logger.Warn("dish registry watcher cancelled, serving last known entries",
				"bucket", r.kv.Bucket(), "dishes", r.Len(), "error", ctx.Err())

			return
		case <-r.stopCh:
			return
		case kve, ok := <-watcher.Updates():
			if !ok {
				r.opts.logger.Warn("dish registry watch closed, serving last known entries",
					"bucket", r.kv.Bucket(), "dishes", r.Len())

				return
			}
			if kve == nil {
				continue
			}
			if id, _, err := r.apply(kve); id != "" {
				r.opts.metrics.RecordRegistryReload(SourceKV, r.Len(), err == nil)
			}
		}
	}
}

// apply updates one dish from a watcher entry. It returns the dish id ("" for
// keys outside the prefix), whether the dish was removed, and the decode or
// validation error of a rejected value.
func (r *KV) apply(kve jetstream.KeyValueEntry) (string, bool, error) {
	id, ok := r.dishID(kve.Key())
	if !ok {
		return "", false, nil
	}

	switch kve.Operation() {
	case jetstream.KeyValueDelete, jetstream.KeyValuePurge:
		r.entries.Delete(id)
		r.opts.logger.Debug("dish removed from registry", "dish", id, "revision", kve.Revision())

		return id, true, nil

	default:
		e, err := decodeEntry(id, kve.Value())
		if err != nil {
			r.opts.logger.Warn("ignoring invalid registry value",
				"key", kve.Key(), "revision", kve.Revision(), "error", err)

			return id, false, err
		}
		r.entries.Store(id, e)
		r.opts.logger.Debug("dish updated in registry",
			"dish", id, "vcc_id", e.VCCID, "k", e.K, "revision", kve.Revision())

		return id, false, nil
	}
}

// classify marks NATS connectivity failures with ErrUnavailable.
func classify(err error) error {
	if natsutil.IsConnectivityError(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return err
}

func decodeEntry(dishID string, data []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("%w: dish %q: %w", ErrDecode, dishID, err)
	}
	if e.DishID == "" {
		e.DishID = dishID
	}
	if e.DishID != dishID {
		return Entry{}, fmt.Errorf("%w: key names dish %q but value names %q", ErrInvalidEntry, dishID, e.DishID)
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}

	return e, nil
}

// Put validates and stores one entry in the bucket.
func (r *KV) Put(ctx context.Context, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode dish %q: %w", e.DishID, err)
	}
	if _, err := r.kv.Put(ctx, r.Key(e.DishID), data); err != nil {
		return fmt.Errorf("failed to store dish %q: %w", e.DishID, err)
	}
	r.entries.Store(e.DishID, e)

	return nil
}

// PutAll validates the entries as a set and stores each of them.
func (r *KV) PutAll(ctx context.Context, entries []Entry) error {
	if err := ValidateEntries(entries); err != nil {
		return err
	}
	for _, e := range entries {
		if err := r.Put(ctx, e); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a dish from the bucket.
func (r *KV) Delete(ctx context.Context, dishID string) error {
	if err := r.kv.Delete(ctx, r.Key(dishID)); err != nil {
		return fmt.Errorf("failed to delete dish %q: %w", dishID, err)
	}
	r.entries.Delete(dishID)

	return nil
}

// VCCID returns the VCC assigned to the dish.
func (r *KV) VCCID(dishID string) (int, bool) {
	e, ok := r.entries.Load(dishID)
	return e.VCCID, ok
}

// K returns the dish's scale constant.
func (r *KV) K(dishID string) (int, bool) {
	e, ok := r.entries.Load(dishID)
	return e.K, ok
}

// Snapshot copies the current contents into an immutable registry.
func (r *KV) Snapshot() types.DishRegistry {
	v := make(view, r.entries.Size())
	r.entries.Range(func(id string, e Entry) bool {
		v[id] = e
		return true
	})

	return v
}

// Entries returns the contents sorted by dish id.
func (r *KV) Entries() []Entry {
	return r.Snapshot().(view).entries()
}

// Len returns the number of dishes.
func (r *KV) Len() int {
	return r.entries.Size()
}

// Fingerprint returns the fingerprint of the current contents.
func (r *KV) Fingerprint() uint64 {
	return Fingerprint(r.Entries())
}
