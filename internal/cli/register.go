package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/terraincognita07/healthbook/internal/models"
	"github.com/terraincognita07/healthbook/internal/services"
)

type RegisterOptions struct {
	IdentityNumber string
	Name           string
	Role           string

	BirthDate string
	Gender    string
	Phone     string

	Specialty          string
	Organization       string
	RegistrationNumber string
}

func (options RegisterOptions) candidate(secret string) models.AccountCandidate {
	candidate := models.AccountCandidate{
		IdentityNumber: services.NormalizeIdentityInput(options.IdentityNumber),
		Secret:         secret,
		Name:           options.Name,
		Role:           options.Role,
	}
	switch strings.ToLower(strings.TrimSpace(options.Role)) {
	case models.RoleProvider:
		candidate.Provider = &models.ProviderProfile{
			Specialty:          strings.TrimSpace(options.Specialty),
			Organization:       strings.TrimSpace(options.Organization),
			RegistrationNumber: strings.TrimSpace(options.RegistrationNumber),
		}
	default:
		candidate.Patient = &models.PatientProfile{
			BirthDate: strings.TrimSpace(options.BirthDate),
			Gender:    strings.TrimSpace(options.Gender),
			Phone:     strings.TrimSpace(options.Phone),
		}
	}
	return candidate
}

func RunRegisterCommand(accounts *services.AccountService, options RegisterOptions, secret string, out io.Writer) (models.Account, error) {
	account, err := accounts.Register(options.candidate(secret))
	if err != nil {
		var missing *services.MissingRequiredFieldError
		if errors.As(err, &missing) {
			return models.Account{}, fmt.Errorf("--%s is required", missing.Field)
		}
		return models.Account{}, fmt.Errorf("register account: %w", err)
	}

	fmt.Fprintln(out, "Account registered")
	fmt.Fprintf(out, "Health ID: %s\n", account.GeneratedID)
	fmt.Fprintf(out, "Role: %s\n", account.Role)
	if err := writeQRPayload(out, account, time.Now()); err != nil {
		return account, err
	}
	return account, nil
}
