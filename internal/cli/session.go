package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/healthbook/internal/models"
	"github.com/terraincognita07/healthbook/internal/services"
)

// RunLoginCommand authenticates and makes the account the active session for
// every process sharing the same store.
func RunLoginCommand(accounts *services.AccountService, sessions *services.SessionManager, identityNumber string, secret string, out io.Writer) (models.Account, error) {
	account, err := accounts.Authenticate(services.NormalizeIdentityInput(identityNumber), secret)
	if err != nil {
		return models.Account{}, fmt.Errorf("login: %w", err)
	}
	if err := sessions.Start(account); err != nil {
		return models.Account{}, fmt.Errorf("start session: %w", err)
	}

	fmt.Fprintf(out, "Signed in as %s (%s)\n", account.Name, account.GeneratedID)
	return account, nil
}

func RunLogoutCommand(sessions *services.SessionManager, out io.Writer) error {
	if err := sessions.End(); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	fmt.Fprintln(out, "Signed out")
	return nil
}

// RunQRCommand prints the QR payload for the given credentials.
func RunQRCommand(accounts *services.AccountService, identityNumber string, secret string, now time.Time, out io.Writer) error {
	account, err := accounts.Authenticate(services.NormalizeIdentityInput(identityNumber), secret)
	if err != nil {
		return fmt.Errorf("qr: %w", err)
	}
	return writeQRPayload(out, account, now)
}

func writeQRPayload(out io.Writer, account models.Account, now time.Time) error {
	encoded, err := services.EncodeQRPayload(services.BuildQRPayload(account, now))
	if err != nil {
		return fmt.Errorf("encode qr payload: %w", err)
	}
	fmt.Fprintf(out, "QR payload: %s\n", encoded)
	return nil
}
