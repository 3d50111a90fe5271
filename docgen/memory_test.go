package docgen

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestMemoryStore_OverwriteAndDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, content := range []string{"first", "second"} {
		if _, err := store.Put(ctx, "T.html", strings.NewReader(content), ArtifactMeta{}); err != nil {
			t.Fatalf("put %q: %v", content, err)
		}
	}

	rc, meta, err := store.Open(ctx, "T.html")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	content, _ := io.ReadAll(rc)
	rc.Close()
	if string(content) != "second" {
		t.Fatalf("content = %q", content)
	}
	if meta.Size != int64(len("second")) {
		t.Fatalf("size = %d", meta.Size)
	}

	if err := store.Delete(ctx, "T.html"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := store.Open(ctx, "T.html"); KindFromError(err) != KindNotFound {
		t.Fatalf("deleted key still opens: %v", err)
	}
}

func TestMemoryStore_EmptyKeyRejected(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Put(context.Background(), "", strings.NewReader("x"), ArtifactMeta{}); KindFromError(err) != KindValidation {
		t.Fatalf("kind = %v, want %v", KindFromError(err), KindValidation)
	}
}
