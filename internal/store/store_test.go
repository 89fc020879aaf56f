package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// exerciseKV runs the behaviour every KV backend must share.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	// Missing key.
	_, ok, err := kv.Get(ctx, "tsv2Completed")
	if err != nil {
		t.Fatalf("get (missing): %v", err)
	}
	if ok {
		t.Fatal("expected missing key to report ok=false")
	}

	// Set and read back.
	if err := kv.Set(ctx, "tsv2Completed", "[1,2]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "tsv2Completed")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || v != "[1,2]" {
		t.Errorf("get = (%q, %v), want (%q, true)", v, ok, "[1,2]")
	}

	// Overwrite replaces wholesale.
	if err := kv.Set(ctx, "tsv2Completed", "[1,2,3]"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = kv.Get(ctx, "tsv2Completed")
	if v != "[1,2,3]" {
		t.Errorf("after overwrite = %q, want %q", v, "[1,2,3]")
	}

	// Prefix listing must not treat underscores as wildcards.
	for _, k := range []string{"guest_tsv2CompletedItems", "guestXtsv2CompletedItems", "guest_tsv2DailyLessons_2026-10-14"} {
		if err := kv.Set(ctx, k, "1"); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	keys, err := kv.Keys(ctx, "guest_")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	want := []string{"guest_tsv2CompletedItems", "guest_tsv2DailyLessons_2026-10-14"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	// Delete, including a missing key.
	if err := kv.Delete(ctx, "tsv2Completed"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, "tsv2Completed"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "tsv2Completed"); ok {
		t.Error("expected key to be gone after delete")
	}
}

func TestSQLiteKV(t *testing.T) {
	exerciseKV(t, openTestStore(t))
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemory(nil))
}

func TestMemorySeedAndClose(t *testing.T) {
	m := NewMemory(map[string]string{"a": "1"})
	ctx := context.Background()

	v, ok, err := m.Get(ctx, "a")
	if err != nil || !ok || v != "1" {
		t.Fatalf("seeded get = (%q, %v, %v)", v, ok, err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, _, err := m.Get(ctx, "a"); !errors.Is(err, ErrClosed) {
		t.Errorf("get after close err = %v, want ErrClosed", err)
	}
	if err := m.Set(ctx, "a", "2"); !errors.Is(err, ErrClosed) {
		t.Errorf("set after close err = %v, want ErrClosed", err)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	var got string
	if err := s.DB().QueryRow("PRAGMA synchronous").Scan(&got); err != nil {
		t.Fatalf("PRAGMA synchronous: %v", err)
	}
	if got != "1" { // NORMAL = 1
		t.Errorf("PRAGMA synchronous = %q, want %q", got, "1")
	}
}

func TestSchemaCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='kv'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "kv" {
		t.Errorf("table name = %q, want 'kv'", name)
	}
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "progress.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(ctx, "tsv2Completed", "[5]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	v, ok, err := s.Get(ctx, "tsv2Completed")
	if err != nil || !ok || v != "[5]" {
		t.Errorf("get after reopen = (%q, %v, %v), want ([5], true, nil)", v, ok, err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "x.db")
		t.Setenv("BODYPATH_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("DefaultDBPath() = %q, want %q", got, want)
		}
		if _, err := os.Stat(filepath.Dir(want)); err != nil {
			t.Errorf("parent dir not created: %v", err)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("BODYPATH_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		want := filepath.Join(dir, "bodypath", "progress.db")
		if got != want {
			t.Errorf("DefaultDBPath() = %q, want %q", got, want)
		}
	})
}

func TestRedisKV(t *testing.T) {
	addr := os.Getenv("BODYPATH_TEST_REDIS")
	if addr == "" {
		t.Skip("BODYPATH_TEST_REDIS not set")
	}
	ctx := context.Background()
	r, err := OpenRedis(ctx, RedisOptions{Addr: addr, Namespace: "bodypath-test:" + t.Name() + ":"})
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	t.Cleanup(func() {
		keys, _ := r.Keys(ctx, "")
		for _, k := range keys {
			_ = r.Delete(ctx, k)
		}
		r.Close()
	})
	exerciseKV(t, r)
}

func TestOpenRedisRequiresAddr(t *testing.T) {
	if _, err := OpenRedis(context.Background(), RedisOptions{}); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestEscapeGlob(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"guest_tsv2", "guest_tsv2"},
		{"a*b", `a\*b`},
		{"q?[x]", `q\?\[x\]`},
	}
	for _, tt := range tests {
		if got := escapeGlob(tt.in); got != tt.want {
			t.Errorf("escapeGlob(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
