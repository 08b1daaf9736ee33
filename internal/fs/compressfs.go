package fs

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
)

var gzipMagic = []byte{0x1f, 0x8b}

// CompressedFS wraps another FS and gzip-compresses file contents on write.
// Reads transparently decompress, and fall back to the raw bytes for files
// that were stored before compression was switched on.
type CompressedFS struct {
	underlying FS
}

func NewCompressedFS(base FS) *CompressedFS {
	return &CompressedFS{underlying: base}
}

func (c *CompressedFS) Open(path string) (io.ReadSeekCloser, error) {
	data, err := c.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &memReadSeekCloser{Reader: bytes.NewReader(data)}, nil
}

func (c *CompressedFS) ReadFile(path string) ([]byte, error) {
	data, err := c.underlying.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, gzipMagic) {
		return data, nil
	}

	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	return io.ReadAll(gz)
}

func (c *CompressedFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	compressed, err := compress(data)
	if err != nil {
		return err
	}
	return c.underlying.WriteFile(path, compressed, perm)
}

// CreateTempFile returns a writer that compresses into a temp file of the
// underlying FS.
func (c *CompressedFS) CreateTempFile(dir, pattern string) (io.WriteCloser, string, error) {
	w, name, err := c.underlying.CreateTempFile(dir, pattern)
	if err != nil {
		return nil, "", err
	}
	return &gzipWriteCloser{Writer: gzip.NewWriter(w), dst: w}, name, nil
}

type gzipWriteCloser struct {
	*gzip.Writer
	dst io.WriteCloser
}

func (g *gzipWriteCloser) Close() error {
	if err := g.Writer.Close(); err != nil {
		g.dst.Close()
		return err
	}
	return g.dst.Close()
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Pass-through for other operations
func (c *CompressedFS) MkdirAll(path string, perm os.FileMode) error {
	return c.underlying.MkdirAll(path, perm)
}
func (c *CompressedFS) Remove(path string) error { return c.underlying.Remove(path) }
func (c *CompressedFS) Rename(oldPath, newPath string) error {
	return c.underlying.Rename(oldPath, newPath)
}
func (c *CompressedFS) Stat(path string) (os.FileInfo, error)      { return c.underlying.Stat(path) }
func (c *CompressedFS) ReadDir(path string) ([]os.DirEntry, error) { return c.underlying.ReadDir(path) }
func (c *CompressedFS) IsNotExist(err error) bool                  { return c.underlying.IsNotExist(err) }
func (c *CompressedFS) IsDir(path string) bool                     { return c.underlying.IsDir(path) }
func (c *CompressedFS) Exists(path string) bool                    { return c.underlying.Exists(path) }
