package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/healthbook/internal/config"
	"github.com/terraincognita07/healthbook/internal/metrics"
	"github.com/terraincognita07/healthbook/internal/storage"
	"go.uber.org/zap"
)

func secretInput(t *testing.T, secret string) *os.File {
	t.Helper()

	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("create pipe: %v", err)
	}
	if _, err := writer.WriteString(secret + "\n"); err != nil {
		t.Fatalf("write pipe: %v", err)
	}
	_ = writer.Close()
	t.Cleanup(func() { _ = reader.Close() })
	return reader
}

func useSQLiteStore(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("HEALTHBOOK_STORAGE_DRIVER", "sqlite")
	t.Setenv("HEALTHBOOK_STORAGE_DB_PATH", filepath.Join(dir, "data", "healthbook.db"))
	t.Setenv("HEALTHBOOK_LOG_LEVEL", "error")
}

func TestSplitCommand(t *testing.T) {
	command, rest := splitCommand(nil)
	if command != "serve" || len(rest) != 0 {
		t.Fatalf("splitCommand(nil) = %q, %v", command, rest)
	}

	command, rest = splitCommand([]string{"qr", "--identity", "123456789012"})
	if command != "qr" || strings.Join(rest, " ") != "--identity 123456789012" {
		t.Fatalf("splitCommand = %q, %v", command, rest)
	}
}

func TestRegisterLoginAndQRCommands(t *testing.T) {
	useSQLiteStore(t)

	var out bytes.Buffer
	if err := run([]string{"register", "--identity", "123456789012", "--name", "Asha Rao"}, secretInput(t, "s3cret"), &out); err != nil {
		t.Fatalf("register: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "Health ID: HLTH") {
		t.Fatalf("register output = %q", out.String())
	}

	out.Reset()
	if err := run([]string{"login", "--identity", "123456789012"}, secretInput(t, "s3cret"), &out); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out.String(), "Signed in as Asha Rao") {
		t.Fatalf("login output = %q", out.String())
	}

	out.Reset()
	if err := run([]string{"qr", "--identity", "123456789012"}, secretInput(t, "s3cret"), &out); err != nil {
		t.Fatalf("qr: %v", err)
	}
	if !strings.Contains(out.String(), `"identityNumber":"123456789012"`) {
		t.Fatalf("qr output = %q", out.String())
	}

	if err := run([]string{"qr", "--identity", "123456789012"}, secretInput(t, "wrong"), &out); err == nil {
		t.Fatal("expected wrong secret to fail")
	}
	if err := run([]string{"logout"}, secretInput(t, ""), &out); err != nil {
		t.Fatalf("logout: %v", err)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	useSQLiteStore(t)

	var out bytes.Buffer
	if err := run([]string{"frobnicate"}, secretInput(t, ""), &out); err == nil {
		t.Fatal("expected unknown command to fail")
	}
	if err := run([]string{"register", "--identity", "12ab", "--name", "A"}, secretInput(t, "x"), &out); err == nil {
		t.Fatal("expected invalid identity to fail before prompting")
	}
	if err := run([]string{"qr"}, secretInput(t, "x"), &out); err == nil {
		t.Fatal("expected missing identity to fail")
	}
}

func TestOpenStoreMemoryAndSQLite(t *testing.T) {
	appMetrics := metrics.New("healthbook_test")

	kv, closeKV, err := openStore(config.StorageConfig{Driver: "memory", CacheTTL: time.Minute}, zap.NewNop(), appMetrics)
	if err != nil {
		t.Fatalf("openStore(memory) returned error: %v", err)
	}
	if _, cached := kv.(*storage.CachedKV); cached {
		t.Fatal("memory store must not be cached")
	}
	if err := closeKV(); err != nil {
		t.Fatalf("close memory store: %v", err)
	}

	kv, closeKV, err = openStore(config.StorageConfig{
		Driver:   "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "kv.db"),
		CacheTTL: time.Minute,
	}, zap.NewNop(), appMetrics)
	if err != nil {
		t.Fatalf("openStore(sqlite) returned error: %v", err)
	}
	defer func() { _ = closeKV() }()
	if _, cached := kv.(*storage.CachedKV); !cached {
		t.Fatal("sqlite store should be cached when a ttl is set")
	}
	if err := kv.Set("accounts", []byte("[]")); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	if _, _, err := openStore(config.StorageConfig{Driver: "postgres"}, zap.NewNop(), appMetrics); err == nil {
		t.Fatal("expected unknown driver to fail")
	}
}

func TestMustLoadLocation(t *testing.T) {
	if got := mustLoadLocation("Asia/Kolkata", zap.NewNop()); got.String() != "Asia/Kolkata" {
		t.Fatalf("location = %s", got)
	}
	if got := mustLoadLocation("Mars/Olympus", zap.NewNop()); got != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", got)
	}
}
