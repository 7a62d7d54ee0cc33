// Package recorder is an optional, explicitly opt-in consumer that persists
// the output of buffering.Buffer / buffering.Window to disk. It is wired
// external to the core operators exactly as the teacher's replay.Writer was
// external to its events.Stream: nothing in package buffering or package
// subject imports or knows about recorder. Callers drain a Pullable
// themselves (the reactor.Pullable[[]T] from buffering.Buffer or the
// reactor.Pullable[*subject.Observable[T]] from buffering.Window) and hand
// each emitted batch to Writer after serializing it.
package recorder

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

var streamIDCleaner = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Manifest describes the recording bundle layout so tooling can locate artefacts.
type Manifest struct {
	Version          int    `json:"version"`
	CreatedAt        string `json:"created_at"`
	WindowIntervalMs int    `json:"window_interval_ms"`
	BatchesPath      string `json:"batches_path"`
	WindowsPath      string `json:"windows_path"`
}

// windowBlob stages one window's binary payload before it is persisted.
type windowBlob struct {
	Seq        uint64
	CapturedAt time.Time
	Payload    []byte
}

// Writer streams recorded stream output to disk as two independently
// compressed sinks: a snappy stream of line-delimited buffer batches (flushed
// on every Append call) and a zstd stream of window frames (buffered and
// flushed on a cadence), mirroring the teacher's dual-stream replay.Writer.
type Writer struct {
	mu            sync.Mutex
	dir           string
	now           func() time.Time
	flushInterval time.Duration

	batchFile   *os.File
	batchStream *snappy.Writer

	windowFile   *os.File
	windowStream *zstd.Encoder

	pending    []windowBlob
	lastFlush  time.Time
	headerTags Tags
}

// NewWriter prepares the recording directory and opens compressed sinks.
// streamID names the logical stream being recorded (sanitised into the
// output folder name); flushInterval controls how often buffered window
// frames are flushed to the zstd stream.
func NewWriter(root, streamID string, clock func() time.Time, flushInterval time.Duration) (*Writer, Manifest, error) {
	if root == "" {
		return nil, Manifest{}, fmt.Errorf("recorder root must be provided")
	}
	if clock == nil {
		clock = time.Now
	}
	if flushInterval <= 0 {
		flushInterval = 30 * time.Second
	}

	cleaned := streamIDCleaner.ReplaceAllString(streamID, "")
	if cleaned == "" {
		cleaned = "stream"
	}
	created := clock().UTC()
	folder := fmt.Sprintf("%s-%s", cleaned, created.Format("20060102T150405Z"))
	path := filepath.Join(root, folder)

	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, Manifest{}, err
	}

	batchesPath := filepath.Join(path, "batches.jsonl.sz")
	windowsPath := filepath.Join(path, "windows.bin.zst")
	manifestPath := filepath.Join(path, "manifest.json")

	batchFile, err := os.Create(batchesPath)
	if err != nil {
		return nil, Manifest{}, err
	}
	batchStream := snappy.NewBufferedWriter(batchFile)

	windowFile, err := os.Create(windowsPath)
	if err != nil {
		batchFile.Close()
		return nil, Manifest{}, err
	}
	windowStream, err := zstd.NewWriter(windowFile)
	if err != nil {
		batchStream.Close()
		batchFile.Close()
		windowFile.Close()
		return nil, Manifest{}, err
	}

	manifest := Manifest{
		Version:          1,
		CreatedAt:        created.Format(time.RFC3339Nano),
		WindowIntervalMs: int(flushInterval / time.Millisecond),
		BatchesPath:      "batches.jsonl.sz",
		WindowsPath:      "windows.bin.zst",
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		windowStream.Close()
		windowFile.Close()
		batchStream.Close()
		batchFile.Close()
		return nil, Manifest{}, err
	}
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		windowStream.Close()
		windowFile.Close()
		batchStream.Close()
		batchFile.Close()
		return nil, Manifest{}, err
	}

	writer := &Writer{
		dir:           path,
		now:           clock,
		flushInterval: flushInterval,
		batchFile:     batchFile,
		batchStream:   batchStream,
		windowFile:    windowFile,
		windowStream:  windowStream,
	}

	return writer, manifest, nil
}

// Directory exposes the directory backing the recording bundle.
func (w *Writer) Directory() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// AppendBatch writes a single JSON line to the compressed batch log. seq
// should be the caller's own monotonically increasing sequence number (e.g.
// a count of buffering.Buffer flushes observed so far); payload is whatever
// serialization of the batch the caller chooses (typically json.Marshal of
// the []T slice buffering.Buffer emitted).
func (w *Writer) AppendBatch(seq uint64, payload []byte) error {
	if w == nil {
		return fmt.Errorf("writer not initialised")
	}
	captured := w.now().UTC()

	w.mu.Lock()
	defer w.mu.Unlock()

	//1.- Encode with metadata so downstream JSONL parsers can stream it safely.
	record := struct {
		Seq        uint64 `json:"seq"`
		CapturedAt string `json:"captured_at"`
		PayloadB64 string `json:"payload_b64"`
	}{
		Seq:        seq,
		CapturedAt: captured.Format(time.RFC3339Nano),
		PayloadB64: base64.StdEncoding.EncodeToString(payload),
	}
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if _, err := w.batchStream.Write(line); err != nil {
		return err
	}
	if _, err := w.batchStream.Write([]byte("\n")); err != nil {
		return err
	}
	return w.batchStream.Flush()
}

// AppendWindow buffers a binary window frame until the configured flush
// cadence is reached; payload is the caller's own serialization of one
// buffering.Window-emitted *subject.Observable[T]'s drained contents.
func (w *Writer) AppendWindow(seq uint64, payload []byte) error {
	if w == nil {
		return fmt.Errorf("writer not initialised")
	}
	captured := w.now().UTC()
	clone := append([]byte(nil), payload...)

	w.mu.Lock()
	defer w.mu.Unlock()

	//1.- Stage the frame so cadence enforcement can persist batches together.
	w.pending = append(w.pending, windowBlob{Seq: seq, CapturedAt: captured, Payload: clone})
	if w.lastFlush.IsZero() {
		w.lastFlush = captured
		return nil
	}
	if captured.Sub(w.lastFlush) >= w.flushInterval {
		if err := w.flushLocked(); err != nil {
			return err
		}
		w.lastFlush = captured
	}
	return nil
}

// SetHeaderTags configures the tag metadata persisted alongside the recording.
func (w *Writer) SetHeaderTags(tags Tags) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.headerTags = tags.Clone()
	w.mu.Unlock()
}

// Flush forces pending window frames to be written regardless of cadence.
func (w *Writer) Flush() error {
	if w == nil {
		return fmt.Errorf("writer not initialised")
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	//1.- Persist pending frames then refresh the cadence anchor to avoid bursts.
	if err := w.flushLocked(); err != nil {
		return err
	}
	w.lastFlush = w.now().UTC()
	return nil
}

// Close synchronously flushes all buffers and releases file handles.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	//1.- Persist the metadata header before dismantling the streaming sinks.
	var firstErr error
	headerPath := filepath.Join(w.dir, "header.json")
	header := Header{SchemaVersion: HeaderSchemaVersion, Tags: w.headerTags.Clone(), FilePointer: "manifest.json"}
	if err := WriteHeader(headerPath, header); err != nil && firstErr == nil {
		firstErr = err
	}
	//2.- Attempt every flush/close and surface the first failure for callers to inspect.
	if err := w.flushLocked(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.batchStream.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.batchStream.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.batchFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.windowStream.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.windowFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// flushLocked writes buffered window frames to the zstd stream; callers must
// hold the mutex.
func (w *Writer) flushLocked() error {
	if len(w.pending) == 0 {
		return nil
	}
	//1.- Write length-prefixed frames so readers can step through them efficiently.
	for _, blob := range w.pending {
		header := make([]byte, 8+8+4)
		binary.LittleEndian.PutUint64(header[0:8], blob.Seq)
		binary.LittleEndian.PutUint64(header[8:16], uint64(blob.CapturedAt.UnixNano()))
		binary.LittleEndian.PutUint32(header[16:20], uint32(len(blob.Payload)))
		if _, err := w.windowStream.Write(header); err != nil {
			return err
		}
		if _, err := w.windowStream.Write(blob.Payload); err != nil {
			return err
		}
	}
	w.pending = w.pending[:0]
	return nil
}
