package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arloliu/meshattr/attribute"
)

// snapshotFileMode is the mode of newly created snapshot files.
const snapshotFileMode os.FileMode = 0o644

// Save encodes m into the file at path. The snapshot is written to a
// temporary file in the same directory and renamed over path. A replaced
// file keeps its permissions; a new file gets 0644.
func Save(path string, m *attribute.Manager, opts ...Option) error {
	data, err := Encode(m, opts...)
	if err != nil {
		return err
	}

	mode := snapshotFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint: errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set snapshot file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move snapshot file into place: %w", err)
	}

	return nil
}

// Load decodes the snapshot stored in the file at path.
func Load(path string, opts ...Option) (*attribute.Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	m, err := Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}
