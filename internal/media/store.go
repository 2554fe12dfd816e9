package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/dripstore/catalog/internal/config"
	"go.uber.org/fx"
)

// Module provides the image content store.
var Module = fx.Provide(NewFileStore)

// Store persists decoded image content and returns the relative path
// recorded on the image row.
type Store interface {
	Save(ctx context.Context, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, path string) error
}

type FileStore struct {
	dir   string
	genID *snowflake.Node
}

func NewFileStore(cfg config.Config, genID *snowflake.Node) (Store, error) {
	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &FileStore{dir: cfg.MediaDir, genID: genID}, nil
}

func (s *FileStore) Save(ctx context.Context, contentType string, data []byte) (string, error) {
	name := s.genID.Generate().String() + extensionFor(contentType)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return filepath.Join("/", s.dir, name), nil
}

func (s *FileStore) Remove(ctx context.Context, path string) error {
	name := filepath.Base(path)
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

// MemStore keeps saved content in memory. Test double for the file store.
type MemStore struct {
	mu    sync.Mutex
	genID *snowflake.Node
	blobs map[string][]byte
}

func NewMemStore(genID *snowflake.Node) *MemStore {
	return &MemStore{genID: genID, blobs: make(map[string][]byte)}
}

func (s *MemStore) Save(ctx context.Context, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := "/uploads/" + s.genID.Generate().String() + extensionFor(contentType)
	s.blobs[path] = data
	return path, nil
}

func (s *MemStore) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, path)
	return nil
}

func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
