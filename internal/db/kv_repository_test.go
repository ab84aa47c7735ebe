package db

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func openTestKV(t *testing.T, path string) *SQLiteKV {
	t.Helper()

	database, err := OpenSQLite(path, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store := NewSQLiteKV(database)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestSQLiteKVGetMissingKey(t *testing.T) {
	store := openTestKV(t, filepath.Join(t.TempDir(), "missing.db"))

	value, found, err := store.Get("accounts")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if found || value != nil {
		t.Fatalf("Get(accounts) = %q, found %v; want nothing", value, found)
	}
}

func TestSQLiteKVSetOverwritesExistingValue(t *testing.T) {
	store := openTestKV(t, filepath.Join(t.TempDir(), "overwrite.db"))

	if err := store.Set("medicalRecords:HLTH1", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("first Set returned error: %v", err)
	}
	if err := store.Set("medicalRecords:HLTH1", []byte(`[{"id":2},{"id":1}]`)); err != nil {
		t.Fatalf("second Set returned error: %v", err)
	}

	value, found, err := store.Get("medicalRecords:HLTH1")
	if err != nil || !found {
		t.Fatalf("Get = found %v, err %v", found, err)
	}
	if string(value) != `[{"id":2},{"id":1}]` {
		t.Fatalf("Get = %q, want latest value", value)
	}

	if err := store.Delete("medicalRecords:HLTH1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, found, _ := store.Get("medicalRecords:HLTH1"); found {
		t.Fatal("expected key to be deleted")
	}
}

func TestSQLiteKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	database, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	first := NewSQLiteKV(database)
	if err := first.Set("currentSession", []byte(`{"generatedId":"HLTH1"}`)); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	second := openTestKV(t, path)
	value, found, err := second.Get("currentSession")
	if err != nil || !found {
		t.Fatalf("Get after reopen = found %v, err %v", found, err)
	}
	if string(value) != `{"generatedId":"HLTH1"}` {
		t.Fatalf("Get after reopen = %q", value)
	}
}
