// Package storage keeps uploaded pickup photos on an afero filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// ErrInvalidKey is returned for keys that would escape the store root.
var ErrInvalidKey = errors.New("invalid blob key")

// BlobInfo describes one stored object.
type BlobInfo struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// BlobStore is the narrow surface the pickup service and the cleanup
// worker rely on.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error)
	Delete(key string) error
	List(prefix string) ([]BlobInfo, error)
	// KeyFromURL maps a public URL back to its key; ok is false for URLs
	// this store did not produce.
	KeyFromURL(url string) (key string, ok bool)
}

// FileStore writes blobs beneath a root directory and serves them under
// a public URL prefix such as "/uploads".
type FileStore struct {
	fs        afero.Fs
	urlPrefix string
}

// NewFileStore roots the store at dir on the OS filesystem.
func NewFileStore(dir, urlPrefix string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return NewStore(afero.NewBasePathFs(afero.NewOsFs(), dir), urlPrefix), nil
}

// NewStore wraps an arbitrary afero filesystem, e.g. afero.NewMemMapFs in tests.
func NewStore(fs afero.Fs, urlPrefix string) *FileStore {
	return &FileStore{fs: fs, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}
}

func cleanKey(key string) (string, error) {
	k := path.Clean("/" + filepath.ToSlash(key))
	k = strings.TrimPrefix(k, "/")
	if k == "" || k == "." || strings.HasPrefix(k, "..") {
		return "", ErrInvalidKey
	}
	return k, nil
}

// Put stores r under key and returns the public URL.
func (s *FileStore) Put(key string, r io.Reader) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(path.Dir("/"+k), 0o755); err != nil {
		return "", fmt.Errorf("failed to create blob dir: %w", err)
	}

	f, err := s.fs.Create("/" + k)
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = s.fs.Remove("/" + k)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close blob: %w", err)
	}
	return s.urlPrefix + "/" + k, nil
}

// Delete removes key. Missing blobs are not an error.
func (s *FileStore) Delete(key string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove("/" + k); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// List returns every blob whose key starts with prefix, sorted by key.
func (s *FileStore) List(prefix string) ([]BlobInfo, error) {
	var out []BlobInfo
	err := afero.Walk(s.fs, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		key := strings.TrimPrefix(filepath.ToSlash(p), "/")
		if strings.HasPrefix(key, prefix) {
			out = append(out, BlobInfo{Key: key, Size: info.Size(), ModTime: info.ModTime()})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *FileStore) KeyFromURL(url string) (string, bool) {
	rest, ok := strings.CutPrefix(url, s.urlPrefix+"/")
	if !ok {
		return "", false
	}
	k, err := cleanKey(rest)
	if err != nil {
		return "", false
	}
	return k, true
}

// URLPrefix is the path under which Handler is mounted.
func (s *FileStore) URLPrefix() string {
	return s.urlPrefix
}

// Handler serves stored blobs read-only. Directory listings are refused.
func (s *FileStore) Handler() http.Handler {
	fileServer := http.FileServer(afero.NewHttpFs(afero.NewReadOnlyFs(s.fs)).Dir("/"))
	return http.StripPrefix(s.urlPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	}))
}
