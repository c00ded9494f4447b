package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSettingsFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}
	return path
}

func TestFileSourceGet(t *testing.T) {
	path := writeSettingsFile(t, t.TempDir(),
		"quota_per_unit: \"500000\"\ndisplay_in_currency: \"true\"\n")

	src, err := NewFileSource(path, false)
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}
	defer src.Close()

	got, err := src.Get(context.Background(), KeyQuotaPerUnit)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "500000" {
		t.Errorf("Get(quota_per_unit) = %q, want %q", got, "500000")
	}

	if _, err := src.Get(context.Background(), "no_such_key"); err == nil {
		t.Error("Get() on missing key should return error")
	}

	keys, err := src.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("List() returned %d keys, want 2", len(keys))
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	if _, err := NewFileSource(filepath.Join(t.TempDir(), "absent.yaml"), false); err == nil {
		t.Error("NewFileSource() with missing file should return error")
	}
}

func TestFileSourceMalformedFile(t *testing.T) {
	path := writeSettingsFile(t, t.TempDir(), "not: [valid\n")

	if _, err := NewFileSource(path, false); err == nil {
		t.Error("NewFileSource() with malformed YAML should return error")
	}
}

func TestFileSourceReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeSettingsFile(t, dir, "quota_per_unit: \"500000\"\n")

	src, err := NewFileSource(path, true)
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}
	defer src.Close()

	if err := os.WriteFile(path, []byte("quota_per_unit: \"750000\"\n"), 0o600); err != nil {
		t.Fatalf("failed to rewrite settings file: %v", err)
	}

	// Reload is debounced; poll until the new value shows up.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, err := src.Get(context.Background(), KeyQuotaPerUnit)
		if err == nil && got == "750000" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("file change was not observed within deadline")
}

func TestFileSourceReloadOnAtomicRename(t *testing.T) {
	dir := t.TempDir()
	path := writeSettingsFile(t, dir, "quota_per_unit: \"500000\"\n")

	src, err := NewFileSource(path, true)
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}
	defer src.Close()

	// Atomic-save editors write to a temp file and rename it over the
	// target; the watch must survive the rename.
	tmp := filepath.Join(dir, "settings.yaml.tmp")
	if err := os.WriteFile(tmp, []byte("quota_per_unit: \"250000\"\n"), 0o600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("failed to rename temp file: %v", err)
	}

	waitForValue(t, src, "250000")

	// A plain write after the rename must still be observed.
	if err := os.WriteFile(path, []byte("quota_per_unit: \"100000\"\n"), 0o600); err != nil {
		t.Fatalf("failed to rewrite settings file: %v", err)
	}

	waitForValue(t, src, "100000")
}

func waitForValue(t *testing.T, src *FileSource, want string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, err := src.Get(context.Background(), KeyQuotaPerUnit)
		if err == nil && got == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("value %q was not observed within deadline", want)
}

func TestFileSourceManualRefresh(t *testing.T) {
	dir := t.TempDir()
	path := writeSettingsFile(t, dir, "quota_per_unit: \"500000\"\n")

	src, err := NewFileSource(path, false)
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}
	defer src.Close()

	if err := os.WriteFile(path, []byte("quota_per_unit: \"250000\"\n"), 0o600); err != nil {
		t.Fatalf("failed to rewrite settings file: %v", err)
	}

	if err := src.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	got, err := src.Get(context.Background(), KeyQuotaPerUnit)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "250000" {
		t.Errorf("Get() after refresh = %q, want %q", got, "250000")
	}
}
