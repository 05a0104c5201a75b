package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// SourceFile is the metric and log label of file registries.
const SourceFile = "file"

// fileDocument is the YAML layout of a registry file:
//
//	dishes:
//	  - dishId: SKA001
//	    vccId: 1
//	    k: 100
type fileDocument struct {
	Dishes []Entry `yaml:"dishes"`
}

// Parse decodes and validates registry entries from YAML.
//
// Unknown fields are rejected.
//
// Returns:
//   - []Entry: Entries in file order
//   - error: wraps ErrDecode or ErrInvalidEntry
func Parse(data []byte) ([]Entry, error) {
	var doc fileDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := ValidateEntries(doc.Dishes); err != nil {
		return nil, err
	}

	return doc.Dishes, nil
}

// Marshal encodes entries in the registry file layout.
func Marshal(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fileDocument{Dishes: entries}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// LoadFile reads and parses a registry file.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("registry file %s: %w", path, err)
	}

	return entries, nil
}

// File is a registry loaded from a YAML file.
//
// Its contents are replaced on Reload and, between Start and Stop, whenever the
// file changes. A failed reload keeps the previous contents.
type File struct {
	*Static

	path string
	opts options

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	timer   *time.Timer
	started bool
}

// OpenFile loads a registry file.
//
// Parameters:
//   - path: Path of the YAML registry file
//   - opts: WithLogger, WithMetrics, WithDebounce
//
// Returns:
//   - *File: Registry with the file's contents
//   - error: If the file cannot be read or is invalid
//
// Example:
//
//	reg, err := registry.OpenFile("dishes.yaml", registry.WithLogger(log))
//	if err := reg.Start(ctx); err != nil { /* handle */ }
//	defer reg.Stop()
func OpenFile(path string, opts ...Option) (*File, error) {
	f := &File{Static: &Static{}, path: path, opts: applyOptions(opts)}
	if err := f.Reload(); err != nil {
		return nil, err
	}

	return f, nil
}

// Path returns the registry file path.
func (f *File) Path() string {
	return f.path
}

// Reload re-reads the file and replaces the contents.
func (f *File) Reload() error {
	entries, err := LoadFile(f.path)
	if err == nil {
		err = f.Update(entries)
	}
	if err != nil {
		f.opts.metrics.RecordRegistryReload(SourceFile, f.Len(), false)
		return err
	}

	f.opts.metrics.RecordRegistryReload(SourceFile, len(entries), true)
	f.opts.logger.Info("dish registry loaded",
		"source", SourceFile,
		"path", f.path,
		"dishes", len(entries),
		"fingerprint", f.Fingerprint(),
	)

	return nil
}

// Start watches the file's directory and reloads after changes settle.
//
// The watch is active when Start returns. It ends at Stop or when ctx is done.
func (f *File) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.started {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(f.path), err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.started = true

	f.wg.Add(1)
	go f.watchLoop(watchCtx, watcher)

	return nil
}

// Stop ends the watch and waits for it to exit. Safe to call more than once.
func (f *File) Stop() error {
	f.mu.Lock()
	if !f.started {
		f.mu.Unlock()
		return nil
	}
	f.started = false
	f.cancel()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.mu.Unlock()

	f.wg.Wait()

	return nil
}

func (f *File) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer f.wg.Done()
	defer watcher.Close()

	name := filepath.Clean(f.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			f.scheduleReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			f.opts.logger.Warn("dish registry file watcher error", "path", f.path, "error", err)
		}
	}
}

func (f *File) scheduleReload(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.opts.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		if err := f.Reload(); err != nil {
			f.opts.logger.Error("dish registry reload failed, keeping previous contents",
				"path", f.path, "error", err)
		}
	})
}
