package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BlobStore persists uploaded files and hands back a retrievable URL.
type BlobStore interface {
	Upload(ctx context.Context, objectPath string, content io.Reader) (string, error)
}

// ObjectPath builds the collision-free storage path for an upload: namespaced
// by request id with a kind+timestamp discriminator, keeping the uploader's
// file extension.
func ObjectPath(requestID, kind, filename string) string {
	ext := "bin"
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		ext = filename[i+1:]
	}
	return fmt.Sprintf("%s/%s-%d.%s", requestID, kind, time.Now().UnixMilli(), ext)
}

// LocalBlobStore writes uploads under a base directory served as static
// files. URLs are baseURL + "/" + objectPath.
type LocalBlobStore struct {
	baseDir string
	baseURL string
}

var _ BlobStore = (*LocalBlobStore)(nil)

func NewLocalBlobStore(baseDir, baseURL string) *LocalBlobStore {
	return &LocalBlobStore{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *LocalBlobStore) Upload(_ context.Context, objectPath string, content io.Reader) (string, error) {
	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, content); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return s.baseURL + "/" + objectPath, nil
}
