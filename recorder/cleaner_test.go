package recorder

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/kestrel-stream/reactor/internal/logging"
)

func TestCleanerEnforcesMaxBundles(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	//1.- Seed three recording bundles via the real writer so the cleaner scans
	//    the exact directory shape production code produces.
	writeBundle(t, tmp, "alpha", now.Add(-3*time.Hour), 64)
	writeBundle(t, tmp, "bravo", now.Add(-2*time.Hour), 32)
	writeBundle(t, tmp, "charlie", now.Add(-time.Hour), 48)

	cleaner := NewCleaner(tmp, RetentionPolicy{MaxBundles: 2}, logging.NewTestLogger())
	cleaner.now = func() time.Time { return now }
	//2.- Trigger a single sweep to enforce the retention policy immediately.
	cleaner.RunOnce()

	remaining := listBundleDirs(t, tmp)
	if len(remaining) != 2 {
		t.Fatalf("expected 2 bundles retained, got %d (%v)", len(remaining), remaining)
	}
	if hasBundlePrefix(remaining, "alpha-") {
		t.Fatalf("expected oldest bundle alpha to be pruned, found %v", remaining)
	}
	if !hasBundlePrefix(remaining, "bravo-") || !hasBundlePrefix(remaining, "charlie-") {
		t.Fatalf("expected bravo and charlie bundles to remain: %v", remaining)
	}

	stats := cleaner.Stats()
	if stats.Bundles != 2 {
		t.Fatalf("expected stats to report 2 bundles, got %d", stats.Bundles)
	}
	if stats.Bytes <= 0 {
		t.Fatalf("expected positive byte total, got %d", stats.Bytes)
	}
	if stats.LastSweep.IsZero() {
		t.Fatalf("expected last sweep timestamp to be recorded")
	}
}

func TestCleanerPrunesByAge(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2024, 7, 16, 9, 0, 0, 0, time.UTC)
	//1.- Mix an old and a recent bundle so the age threshold is exercised.
	writeBundle(t, tmp, "delta", now.Add(-48*time.Hour), 16)
	writeBundle(t, tmp, "echo", now.Add(-time.Hour), 5)

	cleaner := NewCleaner(tmp, RetentionPolicy{MaxAge: 36 * time.Hour, MaxBundles: 5}, logging.NewTestLogger())
	cleaner.now = func() time.Time { return now }
	//2.- Execute a sweep so the age threshold applies to the seeded bundles.
	cleaner.RunOnce()

	remaining := listBundleDirs(t, tmp)
	if hasBundlePrefix(remaining, "delta-") {
		t.Fatalf("expected delta bundle to be pruned due to age: %v", remaining)
	}
	if !hasBundlePrefix(remaining, "echo-") {
		t.Fatalf("expected echo bundle to remain: %v", remaining)
	}
}

// writeBundle creates one recording bundle via the real Writer (so the test
// scans exactly the directory shape production code produces: a single
// "<streamID>-<timestamp>/" directory holding batches.jsonl.sz,
// windows.bin.zst, manifest.json, and header.json), then backdates the
// bundle directory's own mtime so retention tests can control bundle age
// precisely.
func writeBundle(t *testing.T, root, streamID string, mod time.Time, payloadSize int) {
	t.Helper()
	clock := func() time.Time { return mod }
	w, _, err := NewWriter(root, streamID, clock, time.Minute)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.AppendBatch(1, make([]byte, payloadSize)); err != nil {
		t.Fatalf("AppendBatch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := os.Chtimes(w.Directory(), mod, mod); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
}

func listBundleDirs(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func hasBundlePrefix(names []string, prefix string) bool {
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
