package storage_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/storage"
)

func testKV(t *testing.T, kv storage.KV) {
	t.Helper()

	if _, err := kv.Get("accounts", "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}

	if err := kv.Put("accounts", "alice", []byte("100")); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := kv.Get("accounts", "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "100" {
		t.Errorf("value = %q, want 100", got)
	}

	if err := kv.Put("accounts", "bob", []byte("40")); err != nil {
		t.Fatalf("put: %v", err)
	}

	seen := map[string]string{}
	err = kv.ForEach("accounts", func(k, v []byte) error {
		seen[string(k)] = string(v)
		return nil
	})
	if err != nil {
		t.Fatalf("foreach: %v", err)
	}
	if seen["alice"] != "100" || seen["bob"] != "40" {
		t.Errorf("foreach = %+v, want alice=100 bob=40", seen)
	}

	if err := kv.Delete("accounts", "alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get("accounts", "alice"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("after delete, err = %v, want ErrNotFound", err)
	}
}

func Test_MemoryKV(t *testing.T) {
	testKV(t, storage.NewMemory())
}

func Test_BoltKV(t *testing.T) {
	kv, err := storage.OpenBolt(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	defer kv.Close()

	testKV(t, kv)
}
