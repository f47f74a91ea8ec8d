package status

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is a persisted record of the last observed environment status.
// The daemon writes one on every composite change so the last-known state
// survives restarts and is inspectable on disk.
type Snapshot struct {
	// Environment is the composite status at observation time
	Environment EnvironmentStatus `json:"environment"`

	// ObservedAt is when the status was observed
	ObservedAt time.Time `json:"observedAt"`
}

// SnapshotPersistence defines the interface for environment snapshot persistence
type SnapshotPersistence interface {
	// SaveSnapshot saves the snapshot to persistent storage
	SaveSnapshot(ctx context.Context, snap *Snapshot) error

	// LoadSnapshot loads the snapshot from persistent storage.
	// Returns a zero Snapshot if none has been saved yet (first run).
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}

// FileSnapshotPersistence implements SnapshotPersistence using local filesystem
type FileSnapshotPersistence struct {
	filePath string
}

// NewFileSnapshotPersistence creates a new file-based snapshot persistence
func NewFileSnapshotPersistence(filePath string) SnapshotPersistence {
	return &FileSnapshotPersistence{
		filePath: filePath,
	}
}

// SaveSnapshot saves the snapshot to a JSON file
func (f *FileSnapshotPersistence) SaveSnapshot(_ context.Context, snap *Snapshot) error {
	dir := filepath.Dir(f.filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	// Pretty printing for readability when inspected by hand.
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot data: %w", err)
	}

	// Write to temporary file first for atomic operation
	tempPath := f.filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary snapshot file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, f.filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename snapshot file: %w", err)
	}

	return nil
}

// LoadSnapshot loads the snapshot from a JSON file.
// Returns a zero Snapshot if the file doesn't exist.
func (f *FileSnapshotPersistence) LoadSnapshot(_ context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// First run, nothing persisted yet.
			return &Snapshot{Environment: DefaultEnvironmentStatus()}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot data: %w", err)
	}

	return &snap, nil
}
