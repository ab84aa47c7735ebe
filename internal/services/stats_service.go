package services

import (
	"math"
	"sort"
	"time"

	"github.com/terraincognita07/healthbook/internal/models"
)

// CycleGaps sorts entries by start date, newest first, and returns the day
// distance between each adjacent pair. Partial days round up and equal start
// dates yield a zero gap. Entries without a parseable start date are ignored.
func CycleGaps(entries []models.MenstrualEntry) []int {
	starts := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		if day, ok := entry.StartDay(); ok {
			starts = append(starts, day)
		}
	}
	if len(starts) < 2 {
		return []int{}
	}

	sort.SliceStable(starts, func(i, j int) bool {
		return starts[i].After(starts[j])
	})

	gaps := make([]int, 0, len(starts)-1)
	for i := 0; i < len(starts)-1; i++ {
		diff := starts[i].Sub(starts[i+1])
		if diff < 0 {
			diff = -diff
		}
		gaps = append(gaps, int(math.Ceil(diff.Hours()/24)))
	}
	return gaps
}

// AverageCycleLength returns the mean gap rounded half up, or false when
// fewer than two entries exist.
func AverageCycleLength(entries []models.MenstrualEntry) (int, bool) {
	if len(entries) < 2 {
		return 0, false
	}
	gaps := CycleGaps(entries)
	if len(gaps) == 0 {
		return 0, false
	}

	total := 0
	for _, gap := range gaps {
		total += gap
	}
	mean := float64(total) / float64(len(gaps))
	return int(math.Floor(mean + 0.5)), true
}

type CycleSummary struct {
	EntryCount         int    `json:"entryCount"`
	Gaps               []int  `json:"gaps"`
	AverageCycleLength *int   `json:"averageCycleLength"`
	LastPeriodStart    string `json:"lastPeriodStart,omitempty"`
}

type DashboardSummary struct {
	MedicalRecordCount  int          `json:"medicalRecordCount"`
	PregnancyEntryCount int          `json:"pregnancyEntryCount"`
	LatestPregnancyWeek *int         `json:"latestPregnancyWeek,omitempty"`
	Cycle               CycleSummary `json:"cycle"`
}

type StatsRecordReader interface {
	ListMenstrualEntries(ownerID string) ([]models.MenstrualEntry, error)
	ListPregnancyEntries(ownerID string) ([]models.PregnancyEntry, error)
	Count(ownerID string, kind models.RecordKind) (int, error)
}

// StatsService only reads; it never writes to the record store.
type StatsService struct {
	records StatsRecordReader
}

func NewStatsService(records StatsRecordReader) *StatsService {
	return &StatsService{records: records}
}

func (service *StatsService) BuildCycleSummary(ownerID string) (CycleSummary, error) {
	entries, err := service.records.ListMenstrualEntries(ownerID)
	if err != nil {
		return CycleSummary{}, err
	}
	return SummarizeCycle(entries), nil
}

func SummarizeCycle(entries []models.MenstrualEntry) CycleSummary {
	summary := CycleSummary{
		EntryCount: len(entries),
		Gaps:       CycleGaps(entries),
	}
	if average, ok := AverageCycleLength(entries); ok {
		summary.AverageCycleLength = &average
	}

	var latest time.Time
	for _, entry := range entries {
		if day, ok := entry.StartDay(); ok && day.After(latest) {
			latest = day
		}
	}
	if !latest.IsZero() {
		summary.LastPeriodStart = latest.Format(models.DateLayout)
	}
	return summary
}

func (service *StatsService) BuildDashboard(ownerID string) (DashboardSummary, error) {
	medicalCount, err := service.records.Count(ownerID, models.KindMedical)
	if err != nil {
		return DashboardSummary{}, err
	}
	cycle, err := service.BuildCycleSummary(ownerID)
	if err != nil {
		return DashboardSummary{}, err
	}
	pregnancy, err := service.records.ListPregnancyEntries(ownerID)
	if err != nil {
		return DashboardSummary{}, err
	}

	summary := DashboardSummary{
		MedicalRecordCount:  medicalCount,
		PregnancyEntryCount: len(pregnancy),
		Cycle:               cycle,
	}
	if len(pregnancy) > 0 {
		week := pregnancy[0].Week
		summary.LatestPregnancyWeek = &week
	}
	return summary, nil
}
