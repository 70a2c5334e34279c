package sqlite

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ExportFile writes a backup to path. The file is written to a temp file in
// the same directory, synced and renamed, so path never holds a partial
// document.
func (s *Store) ExportFile(ctx context.Context, path string) (*Backup, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".huntbook-backup-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	doc, err := s.Export(ctx, w)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("renaming temp file: %w", err)
	}
	return doc, nil
}

// ImportFile restores the backup stored at path.
func (s *Store) ImportFile(ctx context.Context, path string) (*Backup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return s.Import(ctx, bufio.NewReader(f))
}
