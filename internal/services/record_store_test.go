package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/terraincognita07/healthbook/internal/models"
	"github.com/terraincognita07/healthbook/internal/storage"
)

func TestAppendMedicalRecordNewestFirst(t *testing.T) {
	t.Parallel()

	store := newTestRecordStore(storage.NewMemoryKV(), testNow)
	owner := "HLTH1710000000000abcde"

	appended := make([]models.MedicalRecord, 0, 3)
	for _, diagnosis := range []string{"A", "B", "C"} {
		record, err := store.AppendMedicalRecord(owner, models.MedicalRecord{ProviderName: "Dr. Sen", Diagnosis: diagnosis})
		if err != nil {
			t.Fatalf("AppendMedicalRecord(%s) returned error: %v", diagnosis, err)
		}
		appended = append(appended, record)
	}

	listed, err := store.ListMedicalRecords(owner)
	if err != nil {
		t.Fatalf("ListMedicalRecords returned error: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("listed %d records, want 3", len(listed))
	}
	for i, want := range []string{"C", "B", "A"} {
		if listed[i].Diagnosis != want {
			t.Fatalf("listed[%d].Diagnosis = %q, want %q", i, listed[i].Diagnosis, want)
		}
	}

	for i, record := range appended {
		got := listed[len(listed)-1-i]
		if !sameJSON(t, got, record) {
			t.Fatalf("record %d changed after round trip:\n got %+v\nwant %+v", i, got, record)
		}
	}
}

func TestAppendMedicalRecordDefaultsAndIDs(t *testing.T) {
	t.Parallel()

	store := newTestRecordStore(storage.NewMemoryKV(), testNow)
	first, err := store.AppendMedicalRecord("HLTH1", models.MedicalRecord{ProviderName: "Dr. Sen", Diagnosis: "Flu"})
	if err != nil {
		t.Fatalf("AppendMedicalRecord returned error: %v", err)
	}
	second, err := store.AppendMedicalRecord("HLTH1", models.MedicalRecord{ProviderName: "Dr. Sen", Diagnosis: "Cold", Severity: "Severe"})
	if err != nil {
		t.Fatalf("AppendMedicalRecord returned error: %v", err)
	}

	if first.Severity != models.SeverityMild {
		t.Fatalf("default severity = %q, want mild", first.Severity)
	}
	if second.Severity != models.SeveritySevere {
		t.Fatalf("severity = %q, want normalized severe", second.Severity)
	}
	if first.ID != testNow.UnixMilli() || second.ID <= first.ID {
		t.Fatalf("ids = %d, %d; want strictly increasing from clock millis", first.ID, second.ID)
	}
	if !first.CreatedAt.Equal(testNow) {
		t.Fatalf("createdAt = %v, want %v", first.CreatedAt, testNow)
	}
}

func TestAppendRecordIDsStayAboveStoredHead(t *testing.T) {
	t.Parallel()

	kv := storage.NewMemoryKV()
	store := newTestRecordStore(kv, testNow)
	head := testNow.UnixMilli() + 5000
	if err := storage.SaveJSON(kv, storage.RecordsKey(models.KindMedical, "HLTH1"), []models.MedicalRecord{{ID: head, ProviderName: "x", Diagnosis: "y", Severity: "mild"}}); err != nil {
		t.Fatalf("seed records: %v", err)
	}

	record, err := store.AppendMedicalRecord("HLTH1", models.MedicalRecord{ProviderName: "Dr. Sen", Diagnosis: "Flu"})
	if err != nil {
		t.Fatalf("AppendMedicalRecord returned error: %v", err)
	}
	if record.ID != head+1 {
		t.Fatalf("id = %d, want %d", record.ID, head+1)
	}
}

func TestAppendMedicalRecordValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		record     models.MedicalRecord
		wantFields []string
	}{
		{name: "empty diagnosis", record: models.MedicalRecord{ProviderName: "Dr. Sen"}, wantFields: []string{"diagnosis"}},
		{name: "blank provider and diagnosis", record: models.MedicalRecord{ProviderName: "  "}, wantFields: []string{"providerName", "diagnosis"}},
		{name: "unknown severity", record: models.MedicalRecord{ProviderName: "a", Diagnosis: "b", Severity: "fatal"}, wantFields: []string{"severity"}},
		{name: "bad follow-up date", record: models.MedicalRecord{ProviderName: "a", Diagnosis: "b", FollowUpDate: "next week"}, wantFields: []string{"followUpDate"}},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			kv := storage.NewMemoryKV()
			store := newTestRecordStore(kv, testNow)
			if _, err := store.AppendMedicalRecord("HLTH1", models.MedicalRecord{ProviderName: "ok", Diagnosis: "ok"}); err != nil {
				t.Fatalf("seed append: %v", err)
			}

			_, err := store.AppendMedicalRecord("HLTH1", test.record)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if fmt.Sprint(validationErr.Fields) != fmt.Sprint(test.wantFields) {
				t.Fatalf("fields = %v, want %v", validationErr.Fields, test.wantFields)
			}

			count, err := store.Count("HLTH1", models.KindMedical)
			if err != nil || count != 1 {
				t.Fatalf("count after failed append = %d, %v; want 1", count, err)
			}
		})
	}
}

func TestAppendMenstrualEntryDefaultsAndValidation(t *testing.T) {
	t.Parallel()

	store := newTestRecordStore(storage.NewMemoryKV(), testNow)

	entry, err := store.AppendMenstrualEntry("HLTH1", models.MenstrualEntry{StartDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("AppendMenstrualEntry returned error: %v", err)
	}
	if entry.Flow != models.FlowMedium || entry.Pain != models.PainMild {
		t.Fatalf("defaults = flow %q pain %q, want medium/mild", entry.Flow, entry.Pain)
	}
	if !entry.AddedAt.Equal(testNow) {
		t.Fatalf("addedAt = %v", entry.AddedAt)
	}

	_, err = store.AppendMenstrualEntry("HLTH1", models.MenstrualEntry{StartDate: "01/02/2024", Flow: "torrential"})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || !validationErr.Has("startDate") || !validationErr.Has("flow") {
		t.Fatalf("error = %v, want startDate and flow", err)
	}

	_, err = store.AppendMenstrualEntry("HLTH1", models.MenstrualEntry{})
	if !errors.As(err, &validationErr) || !validationErr.Has("startDate") {
		t.Fatalf("error = %v, want startDate required", err)
	}
}

func TestAppendPregnancyEntryWeekBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		week    int
		wantErr bool
	}{
		{week: 0, wantErr: true},
		{week: -3, wantErr: true},
		{week: 1},
		{week: 42},
		{week: 43, wantErr: true},
	}

	for _, test := range tests {
		store := newTestRecordStore(storage.NewMemoryKV(), testNow)
		_, err := store.AppendPregnancyEntry("HLTH1", models.PregnancyEntry{Date: "2024-02-01", Week: test.week})
		if test.wantErr {
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) || !validationErr.Has("week") {
				t.Fatalf("week %d: error = %v, want week validation error", test.week, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("week %d: unexpected error %v", test.week, err)
		}
	}

	store := newTestRecordStore(storage.NewMemoryKV(), testNow)
	_, err := store.AppendPregnancyEntry("HLTH1", models.PregnancyEntry{Week: 12})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || !validationErr.Has("date") {
		t.Fatalf("missing date error = %v", err)
	}
}

func TestListRecordsEmptyForUnknownOwner(t *testing.T) {
	t.Parallel()

	store := newTestRecordStore(storage.NewMemoryKV(), testNow)
	records, err := store.ListPregnancyEntries("HLTH-nobody")
	if err != nil {
		t.Fatalf("ListPregnancyEntries returned error: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("records = %#v, want empty non-nil slice", records)
	}
}

func TestRecordsAreScopedByOwnerAndKind(t *testing.T) {
	t.Parallel()

	store := newTestRecordStore(storage.NewMemoryKV(), testNow)
	if _, err := store.AppendMedicalRecord("HLTH-a", models.MedicalRecord{ProviderName: "x", Diagnosis: "y"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := store.AppendMenstrualEntry("HLTH-a", menstrualEntry("2024-01-01")); err != nil {
		t.Fatalf("append: %v", err)
	}

	other, _ := store.ListMedicalRecords("HLTH-b")
	if len(other) != 0 {
		t.Fatalf("other owner sees %d records", len(other))
	}
	pregnancy, _ := store.ListPregnancyEntries("HLTH-a")
	if len(pregnancy) != 0 {
		t.Fatalf("pregnancy kind sees %d entries", len(pregnancy))
	}
	if count, _ := store.Count("HLTH-a", models.KindMenstrual); count != 1 {
		t.Fatalf("menstrual count = %d, want 1", count)
	}
}

func TestAppendRecordRequiresOwner(t *testing.T) {
	t.Parallel()

	store := newTestRecordStore(storage.NewMemoryKV(), testNow)
	if _, err := store.AppendMedicalRecord(" ", models.MedicalRecord{ProviderName: "x", Diagnosis: "y"}); !errors.Is(err, ErrOwnerRequired) {
		t.Fatalf("error = %v, want ErrOwnerRequired", err)
	}
	if _, err := store.Count("HLTH1", models.RecordKind("exercise")); err == nil {
		t.Fatal("expected unknown kind error")
	}
}

func TestConcurrentAppendsKeepEveryRecord(t *testing.T) {
	t.Parallel()

	store := NewRecordStore(storage.NewMemoryKV())
	const writers = 20

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.AppendMedicalRecord("HLTH1", models.MedicalRecord{ProviderName: "Dr", Diagnosis: fmt.Sprintf("d%d", i)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent append failed: %v", err)
		}
	}

	records, err := store.ListMedicalRecords("HLTH1")
	if err != nil {
		t.Fatalf("ListMedicalRecords returned error: %v", err)
	}
	if len(records) != writers {
		t.Fatalf("records = %d, want %d", len(records), writers)
	}
	seen := make(map[int64]struct{}, writers)
	for i, record := range records {
		if _, dup := seen[record.ID]; dup {
			t.Fatalf("duplicate id %d", record.ID)
		}
		seen[record.ID] = struct{}{}
		if i > 0 && record.ID >= records[i-1].ID {
			t.Fatalf("ids not newest-first at %d: %d after %d", i, record.ID, records[i-1].ID)
		}
	}
}

func sameJSON(t *testing.T, left any, right any) bool {
	t.Helper()

	leftJSON, err := json.Marshal(left)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	rightJSON, err := json.Marshal(right)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(leftJSON) == string(rightJSON)
}
