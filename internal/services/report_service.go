package services

import (
	"time"

	"github.com/terraincognita07/healthbook/internal/models"
)

type MedicalReport struct {
	PatientName    string                 `json:"patientName"`
	GeneratedID    string                 `json:"generatedId"`
	MaskedIdentity string                 `json:"maskedIdentity"`
	GeneratedAt    time.Time              `json:"generatedAt"`
	Total          int                    `json:"total"`
	Records        []models.MedicalRecord `json:"records"`
}

type ReportRecordReader interface {
	ListMedicalRecords(ownerID string) ([]models.MedicalRecord, error)
}

type ReportService struct {
	records ReportRecordReader
	now     func() time.Time
}

func NewReportService(records ReportRecordReader) *ReportService {
	return &ReportService{records: records, now: time.Now}
}

// BuildMedicalReport hands records to renderers in stored newest-first order.
func (service *ReportService) BuildMedicalReport(account models.Account) (MedicalReport, error) {
	records, err := service.records.ListMedicalRecords(account.GeneratedID)
	if err != nil {
		return MedicalReport{}, err
	}

	return MedicalReport{
		PatientName:    account.Name,
		GeneratedID:    account.GeneratedID,
		MaskedIdentity: MaskIdentity(account.IdentityNumber),
		GeneratedAt:    service.now().UTC().Truncate(time.Second),
		Total:          len(records),
		Records:        records,
	}, nil
}
