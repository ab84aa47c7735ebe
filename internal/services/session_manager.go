package services

import (
	"fmt"
	"sync"

	"github.com/terraincognita07/healthbook/internal/models"
	"github.com/terraincognita07/healthbook/internal/storage"
)

// SessionManager owns the single current-account slot. One instance is built
// at startup and handed to every consumer that needs the active identity.
type SessionManager struct {
	kv storage.KV
	mu sync.Mutex
}

func NewSessionManager(kv storage.KV) *SessionManager {
	return &SessionManager{kv: kv}
}

// Start replaces any existing session.
func (manager *SessionManager) Start(account models.Account) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if err := storage.SaveJSON(manager.kv, storage.CurrentSessionKey, account.Public()); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

func (manager *SessionManager) Current() (models.Account, bool, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	var account models.Account
	found, err := storage.LoadJSON(manager.kv, storage.CurrentSessionKey, &account)
	if err != nil {
		return models.Account{}, false, fmt.Errorf("load session: %w", err)
	}
	if !found || account.GeneratedID == "" {
		return models.Account{}, false, nil
	}
	return account, true, nil
}

func (manager *SessionManager) End() error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if err := manager.kv.Delete(storage.CurrentSessionKey); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}
