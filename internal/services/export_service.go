package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/terraincognita07/healthbook/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	exportTimestampLayout = "2006-01-02 15:04"
	exportSheetName       = "Medical Records"
)

var MedicalExportHeaders = []string{
	"Date",
	"Provider",
	"Specialty",
	"Diagnosis",
	"Severity",
	"Treatment",
	"Medications",
	"Allergies",
	"Follow-up",
	"Notes",
}

func MedicalExportRow(record models.MedicalRecord) []string {
	return []string{
		record.CreatedAt.UTC().Format(exportTimestampLayout),
		record.ProviderName,
		record.ProviderSpecialty,
		record.Diagnosis,
		record.Severity,
		record.Treatment,
		record.Medications,
		record.Allergies,
		record.FollowUpDate,
		record.Notes,
	}
}

func WriteMedicalCSV(output io.Writer, report MedicalReport) error {
	writer := csv.NewWriter(output)
	if err := writer.Write(MedicalExportHeaders); err != nil {
		return err
	}
	for _, record := range report.Records {
		if err := writer.Write(MedicalExportRow(record)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteMedicalJSON(output io.Writer, report MedicalReport) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// BuildMedicalXLSX renders a workbook with a patient header block followed by
// one row per record.
func BuildMedicalXLSX(report MedicalReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	index, err := file.NewSheet(exportSheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	file.SetActiveSheet(index)

	header := [][]any{
		{"Patient Name", report.PatientName},
		{"Health ID", report.GeneratedID},
		{"Identity", report.MaskedIdentity},
		{"Generated", report.GeneratedAt.UTC().Format(exportTimestampLayout)},
		{"Total Records", report.Total},
	}
	for rowIndex, row := range header {
		cell, err := excelize.CoordinatesToCellName(1, rowIndex+1)
		if err != nil {
			return nil, err
		}
		if err := file.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write header row: %w", err)
		}
	}

	tableStart := len(header) + 2
	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	columnRow := make([]any, 0, len(MedicalExportHeaders))
	for _, title := range MedicalExportHeaders {
		columnRow = append(columnRow, title)
	}
	firstCell, _ := excelize.CoordinatesToCellName(1, tableStart)
	lastCell, _ := excelize.CoordinatesToCellName(len(MedicalExportHeaders), tableStart)
	if err := file.SetSheetRow(exportSheetName, firstCell, &columnRow); err != nil {
		return nil, fmt.Errorf("write column headers: %w", err)
	}
	if err := file.SetCellStyle(exportSheetName, firstCell, lastCell, headerStyle); err != nil {
		return nil, fmt.Errorf("style column headers: %w", err)
	}

	for offset, record := range report.Records {
		values := MedicalExportRow(record)
		row := make([]any, 0, len(values))
		for _, value := range values {
			row = append(row, value)
		}
		cell, err := excelize.CoordinatesToCellName(1, tableStart+offset+1)
		if err != nil {
			return nil, err
		}
		if err := file.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write record row: %w", err)
		}
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buffer.Bytes(), nil
}
