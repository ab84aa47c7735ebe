package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/healthbook/internal/models"
	"github.com/terraincognita07/healthbook/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

func newTestAccountService(kv storage.KV, now time.Time) *AccountService {
	service := NewAccountService(kv)
	service.hashCost = bcrypt.MinCost
	service.now = func() time.Time { return now }
	return service
}

func newTestRecordStore(kv storage.KV, now time.Time) *RecordStore {
	store := NewRecordStore(kv)
	store.clock.now = func() time.Time { return now }
	return store
}

func mustRegister(t *testing.T, service *AccountService, identity string, secret string) models.Account {
	t.Helper()

	account, err := service.Register(models.AccountCandidate{
		IdentityNumber: identity,
		Secret:         secret,
		Name:           "Asha Rao",
		Role:           models.RolePatient,
	})
	if err != nil {
		t.Fatalf("Register(%s) returned error: %v", identity, err)
	}
	return account
}

func menstrualEntry(startDate string) models.MenstrualEntry {
	return models.MenstrualEntry{StartDate: startDate}
}
