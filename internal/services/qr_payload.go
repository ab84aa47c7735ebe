package services

import (
	"encoding/json"
	"time"

	"github.com/terraincognita07/healthbook/internal/models"
)

const qrTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func BuildQRPayload(account models.Account, now time.Time) models.QRPayload {
	return models.QRPayload{
		IdentityNumber: account.IdentityNumber,
		GeneratedID:    account.GeneratedID,
		Role:           account.Role,
		Name:           account.Name,
		GeneratedAt:    now.UTC().Format(qrTimestampLayout),
	}
}

// EncodeQRPayload returns the exact string the QR renderer encodes.
func EncodeQRPayload(payload models.QRPayload) ([]byte, error) {
	return json.Marshal(payload)
}
