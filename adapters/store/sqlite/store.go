package storesqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-docgen/docgen"
)

const schemaDDL = `CREATE TABLE IF NOT EXISTS templates (
	key          TEXT PRIMARY KEY,
	content      BLOB NOT NULL,
	content_type TEXT NOT NULL DEFAULT '',
	filename     TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMP NOT NULL
)`

// Store keeps markup artifacts in a SQLite database, for single-file
// deployments where a directory of artifacts is inconvenient. Upserts give
// the same overwrite semantics as the filesystem store.
type Store struct {
	db  *sql.DB
	Now func() time.Time
}

var _ docgen.TemplateStore = (*Store)(nil)

// Open opens (creating if needed) a SQLite-backed template store at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, docgen.NewError(docgen.KindValidation, "store path is required", nil)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, docgen.NewError(docgen.KindStore, "open sqlite store", err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		_ = db.Close()
		return nil, docgen.NewError(docgen.KindStore, "create templates table", err)
	}
	return &Store{db: db, Now: time.Now}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores an artifact, overwriting any existing entry for the key.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, meta docgen.ArtifactMeta) (docgen.ArtifactRef, error) {
	if s == nil || s.db == nil {
		return docgen.ArtifactRef{}, docgen.NewError(docgen.KindInternal, "store is nil", nil)
	}
	if key == "" {
		return docgen.ArtifactRef{}, docgen.NewError(docgen.KindValidation, "artifact key is required", nil)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return docgen.ArtifactRef{}, err
	}
	meta.Size = int64(len(content))
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = s.now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO templates (key, content, content_type, filename, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			content = excluded.content,
			content_type = excluded.content_type,
			filename = excluded.filename,
			created_at = excluded.created_at`,
		key, content, meta.ContentType, meta.Filename, meta.CreatedAt)
	if err != nil {
		return docgen.ArtifactRef{}, docgen.NewError(docgen.KindStore, fmt.Sprintf("store template %q", key), err)
	}

	return docgen.ArtifactRef{Key: key, Meta: meta}, nil
}

// Open reads an artifact by key.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, docgen.ArtifactMeta, error) {
	if s == nil || s.db == nil {
		return nil, docgen.ArtifactMeta{}, docgen.NewError(docgen.KindInternal, "store is nil", nil)
	}
	if key == "" {
		return nil, docgen.ArtifactMeta{}, docgen.NewError(docgen.KindValidation, "artifact key is required", nil)
	}

	var (
		content []byte
		meta    docgen.ArtifactMeta
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT content, content_type, filename, created_at FROM templates WHERE key = ?`, key)
	if err := row.Scan(&content, &meta.ContentType, &meta.Filename, &meta.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, docgen.ArtifactMeta{}, docgen.NewError(docgen.KindNotFound, fmt.Sprintf("template %q not found", key), nil)
		}
		return nil, docgen.ArtifactMeta{}, docgen.NewError(docgen.KindStore, fmt.Sprintf("read template %q", key), err)
	}
	meta.Size = int64(len(content))

	return io.NopCloser(bytes.NewReader(content)), meta, nil
}

// Delete removes an artifact by key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s == nil || s.db == nil {
		return docgen.NewError(docgen.KindInternal, "store is nil", nil)
	}
	if key == "" {
		return docgen.NewError(docgen.KindValidation, "artifact key is required", nil)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE key = ?`, key); err != nil {
		return docgen.NewError(docgen.KindStore, fmt.Sprintf("delete template %q", key), err)
	}
	return nil
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
