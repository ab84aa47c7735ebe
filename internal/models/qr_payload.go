package models

// QRPayload is the object handed to the QR renderer. Field names are part of
// the scanned format and must not change.
type QRPayload struct {
	IdentityNumber string `json:"identityNumber"`
	GeneratedID    string `json:"generatedId"`
	Role           string `json:"role"`
	Name           string `json:"name"`
	GeneratedAt    string `json:"generatedAt"`
}
