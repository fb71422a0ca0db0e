package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"finanger/internal/core"
)

func newUserStore(t *testing.T) *UserStore {
	t.Helper()
	return NewUserStore(filepath.Join(t.TempDir(), "users.json"))
}

func TestUserStoreAppendAndFind(t *testing.T) {
	s := newUserStore(t)

	u := core.User{ID: "u1", Username: "Alice", Password: "hash"}
	if err := s.Append(u); err != nil {
		t.Fatalf("append: %v", err)
	}

	// Lookup is case-insensitive.
	for _, name := range []string{"Alice", "alice", "ALICE"} {
		got, err := s.FindByUsername(name)
		if err != nil {
			t.Fatalf("find %q: %v", name, err)
		}
		if got.ID != "u1" {
			t.Fatalf("find %q returned %q", name, got.ID)
		}
	}

	if _, err := s.FindByUsername("bob"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserStoreCaseInsensitiveCollision(t *testing.T) {
	s := newUserStore(t)

	if err := s.Append(core.User{ID: "u1", Username: "Alice", Password: "h"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	err := s.Append(core.User{ID: "u2", Username: "ALICE", Password: "h"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// Failed registration must not mutate the store.
	users, err := s.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(users))
	}
}

func TestUserStoreUpdateByOldName(t *testing.T) {
	s := newUserStore(t)
	if err := s.Append(core.User{ID: "u1", Username: "Alice", Password: "h"}); err != nil {
		t.Fatal(err)
	}

	updated := core.User{ID: "u1", Username: "alicia", Password: "h2"}
	if err := s.Update("ALICE", updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.FindByUsername("alicia")
	if err != nil {
		t.Fatalf("find updated: %v", err)
	}
	if got.Password != "h2" {
		t.Fatal("update did not replace the record")
	}

	if err := s.Update("ghost", updated); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserStoreUnreadableIsNotEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewUserStore(path)

	_, err := s.All()
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}

	// A missing file, by contrast, is an empty store.
	empty := NewUserStore(filepath.Join(t.TempDir(), "none.json"))
	users, err := empty.All()
	if err != nil || len(users) != 0 {
		t.Fatalf("missing file: got %v, %v", users, err)
	}
}
