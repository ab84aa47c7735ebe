package services

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/healthbook/internal/models"
	"github.com/terraincognita07/healthbook/internal/security"
	"github.com/terraincognita07/healthbook/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

const maxGeneratedIDAttempts = 5

type AccountService struct {
	kv         storage.KV
	mu         sync.Mutex
	now        func() time.Time
	generateID func(time.Time) (string, error)
	hashCost   int
}

func NewAccountService(kv storage.KV) *AccountService {
	return &AccountService{
		kv:         kv,
		now:        time.Now,
		generateID: security.NewGeneratedID,
		hashCost:   bcrypt.DefaultCost,
	}
}

func (service *AccountService) Register(candidate models.AccountCandidate) (models.Account, error) {
	if !IsValidIdentity(candidate.IdentityNumber) {
		return models.Account{}, ErrInvalidIdentity
	}
	name := strings.TrimSpace(candidate.Name)
	if name == "" {
		return models.Account{}, &MissingRequiredFieldError{Field: "name"}
	}
	if candidate.Secret == "" {
		return models.Account{}, &MissingRequiredFieldError{Field: "secret"}
	}
	role := strings.ToLower(strings.TrimSpace(candidate.Role))
	if role == "" {
		role = models.RolePatient
	}
	if !models.IsKnownRole(role) {
		return models.Account{}, ErrInvalidRole
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	accounts, err := service.loadAccounts()
	if err != nil {
		return models.Account{}, err
	}
	for _, existing := range accounts {
		if existing.IdentityNumber == candidate.IdentityNumber {
			return models.Account{}, ErrDuplicateIdentity
		}
	}

	createdAt := service.now().UTC().Truncate(time.Millisecond)
	generatedID, err := service.uniqueGeneratedID(accounts, createdAt)
	if err != nil {
		return models.Account{}, err
	}

	secretHash, err := bcrypt.GenerateFromPassword(secretDigest(candidate.Secret), service.hashCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash secret: %w", err)
	}

	account := models.Account{
		IdentityNumber: candidate.IdentityNumber,
		SecretHash:     string(secretHash),
		Name:           name,
		Role:           role,
		GeneratedID:    generatedID,
		CreatedAt:      createdAt,
	}
	switch role {
	case models.RolePatient:
		account.Patient = &models.PatientProfile{}
		if candidate.Patient != nil {
			*account.Patient = *candidate.Patient
		}
	case models.RoleProvider:
		account.Provider = &models.ProviderProfile{}
		if candidate.Provider != nil {
			*account.Provider = *candidate.Provider
		}
	}

	updated := make([]models.Account, 0, len(accounts)+1)
	updated = append(updated, accounts...)
	updated = append(updated, account)
	if err := storage.SaveJSON(service.kv, storage.AccountsKey, updated); err != nil {
		return models.Account{}, fmt.Errorf("persist accounts: %w", err)
	}

	return account.Public(), nil
}

// Authenticate matches both identity number and secret. Any miss reports
// ErrAuthenticationFailed.
func (service *AccountService) Authenticate(identityNumber string, secret string) (models.Account, error) {
	service.mu.Lock()
	accounts, err := service.loadAccounts()
	service.mu.Unlock()
	if err != nil {
		return models.Account{}, err
	}

	for _, account := range accounts {
		if account.IdentityNumber != identityNumber {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(account.SecretHash), secretDigest(secret)) != nil {
			return models.Account{}, ErrAuthenticationFailed
		}
		return account.Public(), nil
	}
	return models.Account{}, ErrAuthenticationFailed
}

func (service *AccountService) FindByGeneratedID(generatedID string) (models.Account, error) {
	service.mu.Lock()
	accounts, err := service.loadAccounts()
	service.mu.Unlock()
	if err != nil {
		return models.Account{}, err
	}

	for _, account := range accounts {
		if account.GeneratedID == generatedID {
			return account.Public(), nil
		}
	}
	return models.Account{}, ErrAccountNotFound
}

func (service *AccountService) Count() (int, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	accounts, err := service.loadAccounts()
	if err != nil {
		return 0, err
	}
	return len(accounts), nil
}

func (service *AccountService) loadAccounts() ([]models.Account, error) {
	accounts := make([]models.Account, 0)
	if _, err := storage.LoadJSON(service.kv, storage.AccountsKey, &accounts); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	return accounts, nil
}

func (service *AccountService) uniqueGeneratedID(accounts []models.Account, createdAt time.Time) (string, error) {
	taken := make(map[string]struct{}, len(accounts))
	for _, account := range accounts {
		taken[account.GeneratedID] = struct{}{}
	}

	for attempt := 0; attempt < maxGeneratedIDAttempts; attempt++ {
		generatedID, err := service.generateID(createdAt)
		if err != nil {
			return "", fmt.Errorf("generate account id: %w", err)
		}
		if _, exists := taken[generatedID]; !exists {
			return generatedID, nil
		}
	}
	return "", errors.New("generate account id: too many collisions")
}

// secretDigest keeps bcrypt input under its 72-byte limit for secrets of any
// length.
func secretDigest(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(encoded, sum[:])
	return encoded
}
