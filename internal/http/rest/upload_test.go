package rest

import (
	"bytes"
	"mime/multipart"
	"os"
	"testing"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

var _ multipart.File = memFile{}

func TestStageUploadRemovesTempFile(t *testing.T) {
	src := memFile{bytes.NewReader([]byte("track data"))}

	path, cleanup, err := stageUpload(src, "bpm-test-*")
	if err != nil {
		t.Fatalf("stageUpload: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading staged file: %v", err)
	}
	if string(data) != "track data" {
		t.Errorf("staged content = %q, want %q", data, "track data")
	}

	cleanup()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file still present after cleanup: %v", err)
	}
}

func TestStageUploadCleanupIsIdempotent(t *testing.T) {
	src := memFile{bytes.NewReader([]byte("x"))}

	_, cleanup, err := stageUpload(src, "bpm-test-*")
	if err != nil {
		t.Fatalf("stageUpload: %v", err)
	}

	cleanup()
	cleanup()
}
