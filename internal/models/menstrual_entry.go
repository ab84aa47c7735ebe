package models

import (
	"strings"
	"time"
)

const (
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

const (
	PainNone     = "none"
	PainMild     = "mild"
	PainModerate = "moderate"
	PainSevere   = "severe"
)

type MenstrualEntry struct {
	ID        int64     `json:"id"`
	StartDate string    `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string    `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Flow      string    `json:"flow" validate:"oneof=light medium heavy"`
	Pain      string    `json:"pain" validate:"oneof=none mild moderate severe"`
	Symptoms  string    `json:"symptoms,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

func (entry *MenstrualEntry) RecordKind() RecordKind {
	return KindMenstrual
}

func (entry *MenstrualEntry) RecordID() int64 {
	return entry.ID
}

func (entry *MenstrualEntry) ApplyDefaults() {
	entry.StartDate = strings.TrimSpace(entry.StartDate)
	entry.EndDate = strings.TrimSpace(entry.EndDate)
	entry.Flow = strings.ToLower(strings.TrimSpace(entry.Flow))
	if entry.Flow == "" {
		entry.Flow = FlowMedium
	}
	entry.Pain = strings.ToLower(strings.TrimSpace(entry.Pain))
	if entry.Pain == "" {
		entry.Pain = PainMild
	}
}

func (entry *MenstrualEntry) Stamp(id int64, at time.Time) {
	entry.ID = id
	entry.AddedAt = at
}

// StartDay parses StartDate as a UTC calendar day.
func (entry MenstrualEntry) StartDay() (time.Time, bool) {
	day, err := time.Parse(DateLayout, strings.TrimSpace(entry.StartDate))
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
