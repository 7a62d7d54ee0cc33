package recorder

import (
	"path/filepath"
	"testing"
)

func TestWriteAndReadHeader(t *testing.T) {
	dir := t.TempDir()
	header := Header{
		SchemaVersion: HeaderSchemaVersion,
		StreamID:      "stream-9",
		Tags:          Tags{"operator": "window(count=3)"},
		FilePointer:   "manifest.json",
	}
	path := filepath.Join(dir, "example.header.json")
	if err := WriteHeader(path, header); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	loaded, err := ReadHeader(path)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if loaded.SchemaVersion != header.SchemaVersion || loaded.StreamID != header.StreamID {
		t.Fatalf("unexpected header values: %+v", loaded)
	}
	if loaded.Tags["operator"] != "window(count=3)" {
		t.Fatalf("unexpected tags: %#v", loaded.Tags)
	}
	if loaded.FilePointer != header.FilePointer {
		t.Fatalf("unexpected file pointer: %q", loaded.FilePointer)
	}
}

func TestHeaderValidateRejectsMissingFilePointer(t *testing.T) {
	header := Header{SchemaVersion: HeaderSchemaVersion}
	if err := header.Validate(); err == nil {
		t.Fatal("expected error for missing file_pointer")
	}
}

func TestHeaderValidateRejectsZeroSchemaVersion(t *testing.T) {
	header := Header{FilePointer: "manifest.json"}
	if err := header.Validate(); err == nil {
		t.Fatal("expected error for zero schema_version")
	}
}
