package models

import (
	"strings"
	"time"
)

const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
	SeverityCritical = "critical"
)

type MedicalRecord struct {
	ID                int64     `json:"id"`
	CreatedAt         time.Time `json:"createdAt"`
	ProviderName      string    `json:"providerName" validate:"required"`
	ProviderSpecialty string    `json:"providerSpecialty,omitempty"`
	Diagnosis         string    `json:"diagnosis" validate:"required"`
	Treatment         string    `json:"treatment,omitempty"`
	Medications       string    `json:"medications,omitempty"`
	Allergies         string    `json:"allergies,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	FollowUpDate      string    `json:"followUpDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Severity          string    `json:"severity" validate:"oneof=mild moderate severe critical"`
}

func (record *MedicalRecord) RecordKind() RecordKind {
	return KindMedical
}

func (record *MedicalRecord) RecordID() int64 {
	return record.ID
}

func (record *MedicalRecord) ApplyDefaults() {
	record.ProviderName = strings.TrimSpace(record.ProviderName)
	record.Diagnosis = strings.TrimSpace(record.Diagnosis)
	record.FollowUpDate = strings.TrimSpace(record.FollowUpDate)
	record.Severity = strings.ToLower(strings.TrimSpace(record.Severity))
	if record.Severity == "" {
		record.Severity = SeverityMild
	}
}

func (record *MedicalRecord) Stamp(id int64, at time.Time) {
	record.ID = id
	record.CreatedAt = at
}
