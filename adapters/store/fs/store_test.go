package storefs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-docgen/docgen"
)

func TestStore_PutOpenRoundtrip(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()

	ref, err := store.Put(ctx, "Invoice.html", strings.NewReader("<html>one</html>"), docgen.ArtifactMeta{
		ContentType: docgen.ContentTypeMarkup,
		Filename:    "Invoice.html",
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if ref.Key != "Invoice.html" {
		t.Fatalf("key = %q", ref.Key)
	}
	if ref.Meta.Size != int64(len("<html>one</html>")) {
		t.Fatalf("size = %d", ref.Meta.Size)
	}

	rc, meta, err := store.Open(ctx, "Invoice.html")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != "<html>one</html>" {
		t.Fatalf("content = %q", content)
	}
	if meta.ContentType != docgen.ContentTypeMarkup {
		t.Fatalf("content type = %q", meta.ContentType)
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()

	for _, content := range []string{"first", "second"} {
		if _, err := store.Put(ctx, "T.html", strings.NewReader(content), docgen.ArtifactMeta{}); err != nil {
			t.Fatalf("put %q: %v", content, err)
		}
	}

	rc, _, err := store.Open(ctx, "T.html")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	content, _ := io.ReadAll(rc)
	if string(content) != "second" {
		t.Fatalf("content = %q, want %q", content, "second")
	}
}

func TestStore_OpenMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, _, err := store.Open(context.Background(), "nope.html")
	if docgen.KindFromError(err) != docgen.KindNotFound {
		t.Fatalf("kind = %v, want %v", docgen.KindFromError(err), docgen.KindNotFound)
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()

	if _, err := store.Put(ctx, "T.html", strings.NewReader("x"), docgen.ArtifactMeta{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, "T.html"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := store.Open(ctx, "T.html"); docgen.KindFromError(err) != docgen.KindNotFound {
		t.Fatalf("deleted artifact still opens: %v", err)
	}
	// Deleting an absent key is not an error.
	if err := store.Delete(ctx, "T.html"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestStore_RejectsEscapingKeys(t *testing.T) {
	root := t.TempDir()
	store := NewStore(filepath.Join(root, "templates"))

	for _, key := range []string{"..", "/", "."} {
		if _, err := store.Put(context.Background(), key, strings.NewReader("x"), docgen.ArtifactMeta{}); err == nil {
			t.Fatalf("key %q accepted", key)
		}
	}

	// Traversal segments are stripped, never resolved outside the root.
	if _, err := store.Put(context.Background(), "../outside.html", strings.NewReader("x"), docgen.ArtifactMeta{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "outside.html")); !os.IsNotExist(err) {
		t.Fatal("traversal key wrote outside the root")
	}
}

func TestStore_NoTempFilesLeftBehind(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	if _, err := store.Put(context.Background(), "T.html", strings.NewReader("x"), docgen.ArtifactMeta{}); err != nil {
		t.Fatalf("put: %v", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".docgen-") || strings.HasPrefix(entry.Name(), ".meta-") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}
