package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "prospect.json")

	err := AtomicWrite(path, []byte(`{"a":1}`), 0644)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	testutil.AssertEqual(t, "content", string(data), `{"a":1}`)

	// Overwrite in place
	err = AtomicWrite(path, []byte(`{"a":2}`), 0644)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	testutil.AssertEqual(t, "content", string(data), `{"a":2}`)

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file should not remain, stat err: %v", err)
	}
}

func TestAtomicWrite_MissingDirectory(t *testing.T) {
	err := AtomicWrite("/nonexistent/path/that/does/not/exist/file.json", []byte("x"), 0644)
	testutil.AssertErrorContains(t, err, "writing temp file")
}

func TestBackup(t *testing.T) {
	tests := map[string]struct {
		backupDir string
	}{
		"next to original": {
			backupDir: "",
		},
		"separate directory": {
			backupDir: "backups/nested",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, "Olympus.json")
			if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			dir := ""
			if tt.backupDir != "" {
				dir = filepath.Join(tmpDir, tt.backupDir)
			}

			first, err := Backup(path, dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			second, err := Backup(path, dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if first == second {
				t.Errorf("backups should not share a path: %s", first)
			}
			if !strings.HasPrefix(filepath.Base(first), "Olympus.json.") || !strings.HasSuffix(first, ".bak") {
				t.Errorf("unexpected backup name %q", first)
			}

			expDir := dir
			if expDir == "" {
				expDir = tmpDir
			}
			testutil.AssertEqual(t, "backup dir", filepath.Dir(first), expDir)

			data, err := os.ReadFile(first)
			if err != nil {
				t.Fatalf("failed to read backup: %v", err)
			}
			testutil.AssertEqual(t, "backup content", string(data), "original")
		})
	}
}

func TestBackup_MissingFile(t *testing.T) {
	_, err := Backup(filepath.Join(t.TempDir(), "missing.json"), "")
	testutil.AssertErrorContains(t, err, "opening file")
}

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()

	subDir := filepath.Join(tmpDir, "76561100000000000", "Prospects")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}

	files := []string{
		filepath.Join(subDir, "b.json"),
		filepath.Join(subDir, "a.json"),
		filepath.Join(tmpDir, "readme.txt"),
		filepath.Join(subDir, "a.json.20260101T000000-abcd1234.bak"),
	}
	for _, f := range files {
		if err := os.WriteFile(f, []byte("{}"), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}
	}

	paths, err := Discover(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "count", len(paths), 2)
	testutil.AssertEqual(t, "first", paths[0], filepath.Join(subDir, "a.json"))
	testutil.AssertEqual(t, "second", paths[1], filepath.Join(subDir, "b.json"))
}

func TestDiscover_NonExistentDirectory(t *testing.T) {
	_, err := Discover("/nonexistent/path/that/does/not/exist")
	if err == nil {
		t.Error("expected error for non-existent directory")
	}
}
