package feedback

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	pkgerrors "github.com/muhfery/ecommerce-insights-backend/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "feedback.csv"))
}

func TestListAllMissingFileIsEmpty(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty store, got %d entries", len(entries))
	}
}

func TestAppendThenListRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := Entry{Name: "A", Message: "hi", Rating: 5, Timestamp: "2026-08-29 10:00:00"}
	if err := store.Append(ctx, entry); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(entries) != 1 || entries[0] != entry {
		t.Fatalf("round trip mismatch: %+v", entries)
	}
}

func TestAppendPreservesExistingEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := Entry{Name: "A", Message: "first", Rating: 4, Timestamp: "2026-08-29 10:00:00"}
	second := Entry{Name: "B", Message: "second, with a comma", Rating: 2, Timestamp: "2026-08-29 11:00:00"}
	if err := store.Append(ctx, first); err != nil {
		t.Fatalf("Append first: %v", err)
	}
	if err := store.Append(ctx, second); err != nil {
		t.Fatalf("Append second: %v", err)
	}

	entries, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Message != "second, with a comma" {
		t.Fatalf("comma in message must survive the round trip, got %q", entries[1].Message)
	}
}

func TestZeroByteFileIsHealed(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.path, nil, 0o644); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	entries, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty result, got %d", len(entries))
	}
	if _, err := os.Stat(store.path); !os.IsNotExist(err) {
		t.Fatal("zero-byte file should have been removed")
	}
}

func TestCorruptContentSurfacesError(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.path, []byte("nama,pesan,rating,timestamp\nA,hi,not-a-number,2026-08-29 10:00:00\n"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	_, err := store.ListAll(context.Background())
	if err == nil {
		t.Fatal("expected corrupt store error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeCorruptStore {
		t.Fatalf("expected corrupt store code, got %v", err)
	}

	// The file must not be deleted; no silent data loss.
	if _, statErr := os.Stat(store.path); statErr != nil {
		t.Fatal("corrupt non-empty file must be left in place")
	}
}

func TestFileCarriesHeader(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, Entry{Name: "A", Message: "hi", Rating: 5, Timestamp: "2026-08-29 10:00:00"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	raw, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatalf("read back file: %v", err)
	}
	if want := "nama,pesan,rating,timestamp"; len(raw) == 0 || string(raw[:len(want)]) != want {
		t.Fatalf("expected header row, got %q", string(raw))
	}
}
