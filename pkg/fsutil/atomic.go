package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is used for new files when no mode is given.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content so readers see either the old or
// the new bytes, never a torn write. The data goes to a sibling temp file
// that is synced, chmodded and renamed over path. A zero mode keeps the
// existing file's permissions, or DefaultFileMode for a new file.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	mode = targetMode(path, mode)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".grim-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := fillTemp(tmp, content, mode); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// fillTemp writes, syncs and closes tmp. tmp is closed on every path.
func fillTemp(tmp *os.File, content []byte, mode os.FileMode) error {
	_, writeErr := tmp.Write(content)
	if writeErr == nil {
		writeErr = tmp.Sync()
	}
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		return err
	}
	return os.Chmod(tmp.Name(), mode)
}

func targetMode(path string, mode os.FileMode) os.FileMode {
	if mode != 0 {
		return mode
	}
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return DefaultFileMode
}

// WriteAtomicIfChanged writes content only when it differs from what is on
// disk, so watch rebuilds that produce the same preview leave the output's
// mod time alone. It reports whether a write happened.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
