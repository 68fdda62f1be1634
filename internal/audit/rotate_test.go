package audit

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestRotateCompressesAndTruncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.log")
	payload := bytes.Repeat([]byte("entry line\n"), 200)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := maybeRotate(path, 100); err != nil {
		t.Fatalf("maybeRotate() error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("log not truncated: %d bytes", info.Size())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var rotated string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".gz") {
			rotated = filepath.Join(dir, e.Name())
		}
	}
	if rotated == "" {
		t.Fatal("no .gz archive produced")
	}

	f, err := os.Open(rotated)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("archive is not valid gzip: %v", err)
	}
	defer zr.Close()
	restored, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(restored, payload) {
		t.Error("archive content does not match the original log")
	}
}

func TestRotateBelowLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.log")
	if err := os.WriteFile(path, []byte("small\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := maybeRotate(path, 1024); err != nil {
		t.Fatalf("maybeRotate() error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("log below the limit was truncated")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("unexpected archive created: %v", entries)
	}
}

func TestRotateMissingLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	if err := maybeRotate(path, 100); err != nil {
		t.Errorf("maybeRotate() on missing log = %v, want nil", err)
	}
}
