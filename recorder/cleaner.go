package recorder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kestrel-stream/reactor/internal/logging"
)

// RetentionPolicy defines how many recorded bundles are retained on disk.
type RetentionPolicy struct {
	MaxBundles int
	MaxAge     time.Duration
}

// StorageStats summarises the disk footprint of persisted recordings.
type StorageStats struct {
	Bundles   int
	Bytes     int64
	LastSweep time.Time
}

// Cleaner periodically prunes recorded bundles according to a retention policy.
type Cleaner struct {
	mu     sync.RWMutex
	dir    string
	policy RetentionPolicy
	log    *logging.Logger
	now    func() time.Time
	stats  StorageStats
}

// NewCleaner constructs a cleaner for the provided recording directory.
func NewCleaner(dir string, policy RetentionPolicy, logger *logging.Logger) *Cleaner {
	if logger == nil {
		logger = logging.L()
	}
	return &Cleaner{dir: dir, policy: policy, log: logger, now: time.Now}
}

// Run executes retention sweeps until the context is cancelled.
func (c *Cleaner) Run(ctx context.Context, interval time.Duration) {
	if c == nil || ctx == nil {
		return
	}
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	//1.- Perform an eager sweep so retention applies immediately on startup.
	c.sweep()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			//2.- Trigger periodic sweeps while the context remains active.
			c.sweep()
		}
	}
}

// RunOnce performs a single retention sweep, primarily used for tests.
func (c *Cleaner) RunOnce() {
	if c == nil {
		return
	}
	//1.- Delegate to sweep so tests exercise identical logic as the background loop.
	c.sweep()
}

// Stats returns the last recorded storage statistics.
func (c *Cleaner) Stats() StorageStats {
	if c == nil {
		return StorageStats{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	//1.- Return a copy so callers cannot mutate internal state.
	return c.stats
}

// artefact is one recording bundle: the directory a single Writer created
// (batches.jsonl.sz, windows.bin.zst, manifest.json, header.json all live
// inside it — see writer.go). Unlike the teacher's replay cleaner, there is
// no sibling "<name>.header.json" companion to track: Writer never emits a
// header file outside the bundle directory it belongs to.
type artefact struct {
	path    string
	size    int64
	modTime time.Time
}

func (c *Cleaner) sweep() {
	if c == nil || strings.TrimSpace(c.dir) == "" {
		return
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		c.log.Warn("recorder retention scan failed", logging.Error(err), logging.String("directory", c.dir))
		return
	}
	//1.- Collect one artefact per bundle directory before sorting.
	artefacts := c.collect(entries)
	now := c.now()
	kept := 0
	stats := StorageStats{LastSweep: now}
	for _, art := range artefacts {
		shouldRemove, reasons := c.shouldRemove(art, now, kept)
		if shouldRemove {
			if err := c.remove(art); err != nil {
				c.log.Warn("recorder retention removal failed", logging.Error(err), logging.String("bundle", art.path))
				stats.Bundles++
				stats.Bytes += art.size
				kept++
			} else {
				c.log.Info("recorder retention removed artefact", logging.String("bundle", art.path), logging.String("reason", reasons))
			}
			continue
		}
		kept++
		stats.Bundles++
		stats.Bytes += art.size
	}
	c.mu.Lock()
	//2.- Publish the refreshed statistics so metrics handlers can report storage usage.
	c.stats = stats
	c.mu.Unlock()
}

func (c *Cleaner) collect(entries []os.DirEntry) []*artefact {
	artefacts := make([]*artefact, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			//1.- Writer only ever creates bundle directories at the recording root;
			//    ignore stray files rather than guessing at their retention.
			continue
		}
		path := filepath.Join(c.dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			c.log.Warn("recorder retention stat failed", logging.Error(err), logging.String("path", path))
			continue
		}
		size, err := directorySize(path)
		if err != nil {
			c.log.Warn("recorder retention size failed", logging.Error(err), logging.String("path", path))
			continue
		}
		artefacts = append(artefacts, &artefact{path: path, size: size, modTime: info.ModTime()})
	}
	//2.- Sort newest-first so retention limits favour recent bundles.
	sort.Slice(artefacts, func(i, j int) bool { return artefacts[i].modTime.After(artefacts[j].modTime) })
	return artefacts
}

func (c *Cleaner) shouldRemove(art *artefact, now time.Time, kept int) (bool, string) {
	reasons := make([]string, 0, 2)
	if c.policy.MaxAge > 0 && now.Sub(art.modTime) > c.policy.MaxAge {
		//1.- Flag artefacts that exceeded the configured age budget.
		reasons = append(reasons, fmt.Sprintf("age>%s", c.policy.MaxAge))
	}
	if c.policy.MaxBundles > 0 && kept >= c.policy.MaxBundles {
		//2.- Enforce the maximum retained bundle count after accounting for age removals.
		reasons = append(reasons, fmt.Sprintf(">=%d bundles", c.policy.MaxBundles))
	}
	return len(reasons) > 0, strings.Join(reasons, ", ")
}

func (c *Cleaner) remove(art *artefact) error {
	//1.- Remove the whole bundle directory so manifest, headers, and streams disappear together.
	if err := os.RemoveAll(art.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func directorySize(root string) (int64, error) {
	var total int64
	walkErr := filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		//1.- Accumulate file sizes to compute the directory footprint for metrics.
		total += info.Size()
		return nil
	})
	return total, walkErr
}
