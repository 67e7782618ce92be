package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/grim/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	if got := fsutil.BackupPath("/a/.grim.yaml"); got != "/a/.grim.yaml.grim.bak" {
		t.Errorf("BackupPath() = %q", got)
	}
}

func TestBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("copies content and mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".grim.yaml")
		if err := os.WriteFile(path, []byte("log_level: debug\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		backupPath, err := fsutil.Backup(ctx, path)
		if err != nil {
			t.Fatalf("Backup() error = %v", err)
		}
		if backupPath != fsutil.BackupPath(path) {
			t.Errorf("backupPath = %q", backupPath)
		}

		got, err := os.ReadFile(backupPath)
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if string(got) != "log_level: debug\n" {
			t.Errorf("backup content = %q", got)
		}

		stat, err := os.Stat(backupPath)
		if err != nil {
			t.Fatalf("stat backup: %v", err)
		}
		if stat.Mode().Perm() != 0600 {
			t.Errorf("backup mode = %o, want 600", stat.Mode().Perm())
		}
	})

	t.Run("replaces an earlier backup", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "c.yaml")
		for _, content := range []string{"one\n", "two\n"} {
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("setup: %v", err)
			}
			if _, err := fsutil.Backup(ctx, path); err != nil {
				t.Fatalf("Backup() error = %v", err)
			}
		}

		got, err := os.ReadFile(fsutil.BackupPath(path))
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if string(got) != "two\n" {
			t.Errorf("backup content = %q, want latest", got)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		backupPath, err := fsutil.Backup(ctx, filepath.Join(t.TempDir(), "missing"))
		if err != nil {
			t.Fatalf("Backup() error = %v", err)
		}
		if backupPath != "" {
			t.Errorf("backupPath = %q, want empty", backupPath)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := fsutil.Backup(cctx, "x"); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("restores and removes backup", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "c.yaml")
		if err := os.WriteFile(path, []byte("original\n"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if _, err := fsutil.Backup(ctx, path); err != nil {
			t.Fatalf("Backup() error = %v", err)
		}
		if err := os.WriteFile(path, []byte("overwritten\n"), 0644); err != nil {
			t.Fatalf("overwrite: %v", err)
		}

		restored, err := fsutil.RestoreBackup(ctx, path)
		if err != nil {
			t.Fatalf("RestoreBackup() error = %v", err)
		}
		if !restored {
			t.Fatal("expected restore")
		}

		got, _ := os.ReadFile(path)
		if string(got) != "original\n" {
			t.Errorf("content = %q", got)
		}
		if _, err := os.Stat(fsutil.BackupPath(path)); !os.IsNotExist(err) {
			t.Errorf("backup should be removed, stat err = %v", err)
		}
	})

	t.Run("no backup", func(t *testing.T) {
		t.Parallel()

		restored, err := fsutil.RestoreBackup(ctx, filepath.Join(t.TempDir(), "none"))
		if err != nil {
			t.Fatalf("RestoreBackup() error = %v", err)
		}
		if restored {
			t.Error("expected no restore")
		}
	})
}
