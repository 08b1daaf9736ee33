package fs_test

import (
	"bytes"
	"testing"

	"github.com/keshon/lvc/internal/fs"
)

func TestCompressedFS_RoundTrip(t *testing.T) {
	base := fs.NewMemoryFS()
	base.MkdirAll("objects", 0o755)
	c := fs.NewCompressedFS(base)

	content := bytes.Repeat([]byte("compress me "), 100)
	if err := c.WriteFile("objects/a", content, 0o644); err != nil {
		t.Fatal(err)
	}

	raw, _ := base.ReadFile("objects/a")
	if len(raw) >= len(content) {
		t.Fatalf("expected stored bytes to be compressed, got %d >= %d", len(raw), len(content))
	}

	got, err := c.ReadFile("objects/a")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Fatal("round trip mismatch")
	}
}

func TestCompressedFS_AtomicWriteCompresses(t *testing.T) {
	base := fs.NewMemoryFS()
	base.MkdirAll("objects", 0o755)
	c := fs.NewCompressedFS(base)

	content := bytes.Repeat([]byte("z"), 4096)
	if err := fs.WriteFileAtomic(c, "objects/b", content); err != nil {
		t.Fatal(err)
	}

	raw, _ := base.ReadFile("objects/b")
	if len(raw) >= len(content) {
		t.Fatal("expected temp-file writes to be compressed")
	}

	got, err := c.ReadFile("objects/b")
	if err != nil || !bytes.Equal(got, content) {
		t.Fatalf("unexpected read back: %v", err)
	}
}

func TestCompressedFS_ReadsUncompressedFiles(t *testing.T) {
	base := fs.NewMemoryFS()
	base.MkdirAll("objects", 0o755)
	base.WriteFile("objects/plain", []byte("plain text"), 0o644)

	got, err := fs.NewCompressedFS(base).ReadFile("objects/plain")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "plain text" {
		t.Fatalf("expected raw fallback, got %q", got)
	}
}

func TestCompressedFS_MissingFile(t *testing.T) {
	c := fs.NewCompressedFS(fs.NewMemoryFS())
	if _, err := c.ReadFile("nope"); !c.IsNotExist(err) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}
