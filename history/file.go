package history

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/etnz/horizon"
)

// FileStore keeps snapshots in a JSONL file, one snapshot per line, oldest
// first.
type FileStore struct {
	Path string
}

func (f *FileStore) read() ([]horizon.Snapshot, error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var snapshots []horizon.Snapshot
	scanner := bufio.NewScanner(file)
	scanner.Buffer(nil, 16<<20)
	for n := 1; scanner.Scan(); n++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue // Skip empty lines
		}
		var s horizon.Snapshot
		if err := json.Unmarshal(line, &s); err != nil {
			return nil, fmt.Errorf("%s:%d: could not decode snapshot: %w", f.Path, n, err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, scanner.Err()
}

func (f *FileStore) write(snapshots []horizon.Snapshot) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, s := range snapshots {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

func (f *FileStore) Save(_ context.Context, s horizon.Snapshot) error {
	snapshots, err := f.read()
	if err != nil {
		return err
	}
	if i := index(snapshots, s.ID); i >= 0 {
		snapshots[i] = s
	} else {
		snapshots = append(snapshots, s)
	}
	return f.write(snapshots)
}

func (f *FileStore) List(_ context.Context) ([]horizon.Snapshot, error) {
	snapshots, err := f.read()
	if err != nil {
		return nil, err
	}
	slices.Reverse(snapshots)
	return snapshots, nil
}

func (f *FileStore) Get(_ context.Context, id string) (horizon.Snapshot, error) {
	snapshots, err := f.read()
	if err != nil {
		return horizon.Snapshot{}, err
	}
	i := index(snapshots, id)
	if i < 0 {
		return horizon.Snapshot{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return snapshots[i], nil
}

func (f *FileStore) Delete(_ context.Context, id string) error {
	snapshots, err := f.read()
	if err != nil {
		return err
	}
	i := index(snapshots, id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return f.write(slices.Delete(snapshots, i, i+1))
}

func index(snapshots []horizon.Snapshot, id string) int {
	return slices.IndexFunc(snapshots, func(s horizon.Snapshot) bool { return s.ID == id })
}
