package cart

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Snapshots persists cart line items under a storage name. Save calls carry
// a monotonically increasing sequence per name; implementations must discard
// out-of-order writes.
type Snapshots interface {
	Save(name string, seq uint64, items []Item) error
	// Load returns the stored items and the sequence they were saved at,
	// so a rehydrated store continues the sequence instead of restarting
	// below it.
	Load(name string) ([]Item, uint64, error)
}

type snapshotFile struct {
	Seq   uint64 `json:"seq"`
	Items []Item `json:"items"`
}

// FileSnapshots stores one JSON file per cart under a directory.
type FileSnapshots struct {
	dir string

	mu      sync.Mutex
	lastSeq map[string]uint64
}

func NewFileSnapshots(dir string) (*FileSnapshots, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileSnapshots{dir: dir, lastSeq: make(map[string]uint64)}, nil
}

func (f *FileSnapshots) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

func (f *FileSnapshots) Save(name string, seq uint64, items []Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq <= f.lastSeq[name] {
		return nil // stale write, a newer snapshot already landed
	}

	data, err := json.Marshal(snapshotFile{Seq: seq, Items: items})
	if err != nil {
		return err
	}
	tmp := f.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, f.path(name)); err != nil {
		return err
	}
	f.lastSeq[name] = seq
	return nil
}

func (f *FileSnapshots) Load(name string) ([]Item, uint64, error) {
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil // no snapshot yet = empty cart
		}
		return nil, 0, err
	}
	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, 0, err
	}

	f.mu.Lock()
	if snap.Seq > f.lastSeq[name] {
		f.lastSeq[name] = snap.Seq
	}
	f.mu.Unlock()

	return snap.Items, snap.Seq, nil
}
