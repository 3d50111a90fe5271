package storefs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-docgen/docgen"
)

// Store provides filesystem-backed template storage. Writes to a key are
// serialized by a store-wide mutex, so concurrent first-time conversions
// of the same template cannot interleave.
type Store struct {
	Root string
	Now  func() time.Time

	mu sync.Mutex
}

var _ docgen.TemplateStore = (*Store)(nil)

// NewStore creates a filesystem-backed template store.
func NewStore(root string) *Store {
	return &Store{Root: root, Now: time.Now}
}

// Put stores an artifact on disk, creating the root location if absent
// and overwriting any existing entry for the key.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, meta docgen.ArtifactMeta) (docgen.ArtifactRef, error) {
	_ = ctx
	if s == nil {
		return docgen.ArtifactRef{}, docgen.NewError(docgen.KindInternal, "store is nil", nil)
	}
	if s.Root == "" {
		return docgen.ArtifactRef{}, docgen.NewError(docgen.KindValidation, "store root is required", nil)
	}
	if key == "" {
		return docgen.ArtifactRef{}, docgen.NewError(docgen.KindValidation, "artifact key is required", nil)
	}

	pathOnDisk, err := s.resolvePath(key)
	if err != nil {
		return docgen.ArtifactRef{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(pathOnDisk)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return docgen.ArtifactRef{}, err
	}

	tmp, err := os.CreateTemp(dir, ".docgen-*")
	if err != nil {
		return docgen.ArtifactRef{}, err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	size, err := io.Copy(tmp, r)
	if err != nil {
		return docgen.ArtifactRef{}, err
	}
	if err := tmp.Sync(); err != nil {
		return docgen.ArtifactRef{}, err
	}
	if err := tmp.Close(); err != nil {
		return docgen.ArtifactRef{}, err
	}

	if err := os.Rename(tmp.Name(), pathOnDisk); err != nil {
		return docgen.ArtifactRef{}, err
	}

	meta.Size = size
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = s.now()
	}
	if meta.ContentType == "" {
		meta.ContentType = mime.TypeByExtension(filepath.Ext(pathOnDisk))
	}

	if err := s.writeMeta(pathOnDisk, meta); err != nil {
		return docgen.ArtifactRef{}, err
	}

	return docgen.ArtifactRef{Key: key, Meta: meta}, nil
}

// Open reads an artifact from disk.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, docgen.ArtifactMeta, error) {
	_ = ctx
	if s == nil {
		return nil, docgen.ArtifactMeta{}, docgen.NewError(docgen.KindInternal, "store is nil", nil)
	}
	if s.Root == "" {
		return nil, docgen.ArtifactMeta{}, docgen.NewError(docgen.KindValidation, "store root is required", nil)
	}
	if key == "" {
		return nil, docgen.ArtifactMeta{}, docgen.NewError(docgen.KindValidation, "artifact key is required", nil)
	}

	pathOnDisk, err := s.resolvePath(key)
	if err != nil {
		return nil, docgen.ArtifactMeta{}, err
	}

	file, err := os.Open(pathOnDisk)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, docgen.ArtifactMeta{}, docgen.NewError(docgen.KindNotFound, fmt.Sprintf("template %q not found", key), err)
		}
		return nil, docgen.ArtifactMeta{}, err
	}

	meta := s.readMeta(pathOnDisk)
	if meta.ContentType == "" {
		meta.ContentType = mime.TypeByExtension(filepath.Ext(pathOnDisk))
	}
	if meta.Size == 0 {
		if info, err := file.Stat(); err == nil {
			meta.Size = info.Size()
			if meta.CreatedAt.IsZero() {
				meta.CreatedAt = info.ModTime()
			}
		}
	}

	return file, meta, nil
}

// Delete removes an artifact from disk.
func (s *Store) Delete(ctx context.Context, key string) error {
	_ = ctx
	if s == nil {
		return docgen.NewError(docgen.KindInternal, "store is nil", nil)
	}
	if s.Root == "" {
		return docgen.NewError(docgen.KindValidation, "store root is required", nil)
	}
	if key == "" {
		return docgen.NewError(docgen.KindValidation, "artifact key is required", nil)
	}

	pathOnDisk, err := s.resolvePath(key)
	if err != nil {
		return err
	}
	_ = os.Remove(pathOnDisk)
	_ = os.Remove(metaPath(pathOnDisk))
	return nil
}

func (s *Store) resolvePath(key string) (string, error) {
	clean := path.Clean("/" + key)
	rel := strings.TrimPrefix(clean, "/")
	if rel == "" || rel == "." {
		return "", docgen.NewError(docgen.KindValidation, "invalid artifact key", nil)
	}

	root, err := filepath.Abs(s.Root)
	if err != nil {
		return "", err
	}
	target := filepath.Join(root, filepath.FromSlash(rel))
	if !strings.HasPrefix(target, root+string(os.PathSeparator)) && target != root {
		return "", docgen.NewError(docgen.KindValidation, "artifact key escapes root", nil)
	}
	return target, nil
}

func (s *Store) writeMeta(pathOnDisk string, meta docgen.ArtifactMeta) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	dir := filepath.Dir(pathOnDisk)
	tmp, err := os.CreateTemp(dir, ".meta-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(payload); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), metaPath(pathOnDisk))
}

func (s *Store) readMeta(pathOnDisk string) docgen.ArtifactMeta {
	data, err := os.ReadFile(metaPath(pathOnDisk))
	if err != nil {
		return docgen.ArtifactMeta{}
	}
	var meta docgen.ArtifactMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return docgen.ArtifactMeta{}
	}
	return meta
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func metaPath(pathOnDisk string) string {
	return pathOnDisk + ".meta.json"
}
