package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Source supplies the most recent telemetry snapshot for a vehicle.
type Source interface {
	Latest(ctx context.Context) (*Snapshot, error)
}

// StaticSource always returns the same snapshot. Useful for tests and for
// rendering a single recorded frame.
type StaticSource struct {
	Snapshot *Snapshot
}

// Latest returns the wrapped snapshot or ErrNoSnapshot when it is nil.
func (s StaticSource) Latest(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Snapshot == nil {
		return nil, ErrNoSnapshot
	}
	return s.Snapshot, nil
}

// FileSource replays snapshots recorded in a JSON or YAML file.
// Each call to Latest advances to the next snapshot; once the recording is
// exhausted the last snapshot is held.
type FileSource struct {
	mu        sync.Mutex
	snapshots []Snapshot
	next      int
}

// NewFileSource loads the recording at path.
func NewFileSource(path string) (*FileSource, error) {
	snaps, err := LoadSnapshots(path)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, fmt.Errorf("no snapshots in %s", path)
	}
	return &FileSource{snapshots: snaps}, nil
}

// Latest implements Source.
func (f *FileSource) Latest(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.snapshots) == 0 {
		return nil, ErrNoSnapshot
	}
	idx := f.next
	if idx >= len(f.snapshots) {
		idx = len(f.snapshots) - 1
	} else {
		f.next++
	}
	snap := f.snapshots[idx]
	return &snap, nil
}

// Len returns the number of recorded snapshots.
func (f *FileSource) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.snapshots)
}

// LoadSnapshots reads a recording file. The format is chosen by extension
// (.yaml/.yml for YAML, anything else JSON). The file may hold a single
// snapshot object or a list of them.
func LoadSnapshots(path string) ([]Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	snaps, err := DecodeSnapshots(data, isYAML(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return snaps, nil
}

// DecodeSnapshots decodes one snapshot or a list of snapshots. The shape is
// chosen from the document itself, so errors name the offending element.
func DecodeSnapshots(data []byte, asYAML bool) ([]Snapshot, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}
	if asYAML {
		return decodeYAMLSnapshots(data)
	}

	if trimmed[0] == '[' {
		var snaps []Snapshot
		if err := json.Unmarshal(data, &snaps); err != nil {
			return nil, err
		}
		return snaps, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return []Snapshot{snap}, nil
}

func decodeYAMLSnapshots(data []byte) ([]Snapshot, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var snaps []Snapshot
		if err := root.Decode(&snaps); err != nil {
			return nil, err
		}
		return snaps, nil
	}

	var snap Snapshot
	if err := root.Decode(&snap); err != nil {
		return nil, err
	}
	return []Snapshot{snap}, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
