package models

import "time"

const (
	RolePatient  = "patient"
	RoleProvider = "provider"
)

type PatientProfile struct {
	BirthDate string `json:"birthDate,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type ProviderProfile struct {
	Specialty          string `json:"specialty,omitempty"`
	Organization       string `json:"organization,omitempty"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
}

// Account is one registered person. Exactly one of Patient or Provider is set,
// matching Role.
type Account struct {
	IdentityNumber string           `json:"identityNumber"`
	SecretHash     string           `json:"secretHash,omitempty"`
	Name           string           `json:"name"`
	Role           string           `json:"role"`
	GeneratedID    string           `json:"generatedId"`
	Patient        *PatientProfile  `json:"patient,omitempty"`
	Provider       *ProviderProfile `json:"provider,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// Public returns a copy without the secret hash, safe to hand to the session
// slot or to API clients.
func (account Account) Public() Account {
	account.SecretHash = ""
	return account
}

type AccountCandidate struct {
	IdentityNumber string           `json:"identityNumber"`
	Secret         string           `json:"secret"`
	Name           string           `json:"name"`
	Role           string           `json:"role"`
	Patient        *PatientProfile  `json:"patient,omitempty"`
	Provider       *ProviderProfile `json:"provider,omitempty"`
}

func IsKnownRole(role string) bool {
	return role == RolePatient || role == RoleProvider
}
