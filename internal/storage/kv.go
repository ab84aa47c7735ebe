package storage

import (
	"encoding/json"
	"fmt"

	"github.com/terraincognita07/healthbook/internal/models"
)

const (
	AccountsKey       = "accounts"
	CurrentSessionKey = "currentSession"
)

// KV is a durable byte store with synchronous get/set by key.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

func RecordsKey(kind models.RecordKind, ownerID string) string {
	return kind.StoragePrefix() + ":" + ownerID
}

// LoadJSON decodes the value at key into target. A missing key leaves target
// untouched and reports false.
func LoadJSON(kv KV, key string, target any) (bool, error) {
	raw, found, err := kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func SaveJSON(kv KV, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
