package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	homedir "github.com/mitchellh/go-homedir"
)

// Persistence is the snapshot backend a Store may use to survive restarts.
// The engine depends on it abstractly; the process keeps working with the
// in-memory default when no durable backend is configured.
type Persistence[T any] interface {
	// Save writes a full snapshot of the store's entries.
	Save(entries map[string]Entry[T]) error

	// Load reads the last snapshot. A missing snapshot is not an error;
	// implementations return an empty map.
	Load() (map[string]Entry[T], error)
}

// NopPersistence discards snapshots. It matches the source behavior of
// losing all cached entries on process exit.
type NopPersistence[T any] struct{}

// Save discards the snapshot.
func (NopPersistence[T]) Save(map[string]Entry[T]) error { return nil }

// Load returns an empty snapshot.
func (NopPersistence[T]) Load() (map[string]Entry[T], error) {
	return map[string]Entry[T]{}, nil
}

// DiskPersistence stores snapshots as zstd-compressed JSON in a single
// file. Payload type T must be JSON-marshalable.
type DiskPersistence[T any] struct {
	path    string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewDiskPersistence creates a disk backend writing to the given file.
// An empty path defaults to ~/.cache/castkit/<name>.cache.zst.
func NewDiskPersistence[T any](path, name string) (*DiskPersistence[T], error) {
	if path == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".cache", "castkit", name+".cache.zst")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &DiskPersistence[T]{
		path:    path,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Save writes the snapshot atomically via a temp file rename.
func (p *DiskPersistence[T]) Save(entries map[string]Entry[T]) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode cache snapshot: %w", err)
	}

	compressed := p.encoder.EncodeAll(raw, nil)

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0o644); err != nil {
		return fmt.Errorf("failed to write cache snapshot: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("failed to replace cache snapshot: %w", err)
	}

	return nil
}

// Load reads and decodes the last snapshot.
func (p *DiskPersistence[T]) Load() (map[string]Entry[T], error) {
	compressed, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]Entry[T]{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache snapshot: %w", err)
	}

	raw, err := p.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress cache snapshot: %w", err)
	}

	entries := make(map[string]Entry[T])
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cache snapshot: %w", err)
	}

	return entries, nil
}

// Path returns the snapshot file location.
func (p *DiskPersistence[T]) Path() string {
	return p.path
}
