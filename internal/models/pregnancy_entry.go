package models

import (
	"strings"
	"time"
)

const (
	MinPregnancyWeek = 1
	MaxPregnancyWeek = 42
)

type PregnancyEntry struct {
	ID            int64     `json:"id"`
	Date          string    `json:"date" validate:"required,datetime=2006-01-02"`
	Week          int       `json:"week" validate:"required,min=1,max=42"`
	Weight        string    `json:"weight,omitempty"`
	BloodPressure string    `json:"bloodPressure,omitempty"`
	Symptoms      string    `json:"symptoms,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	DoctorVisit   bool      `json:"doctorVisit"`
	Concerns      string    `json:"concerns,omitempty"`
	AddedAt       time.Time `json:"addedAt"`
}

func (entry *PregnancyEntry) RecordKind() RecordKind {
	return KindPregnancy
}

func (entry *PregnancyEntry) RecordID() int64 {
	return entry.ID
}

func (entry *PregnancyEntry) ApplyDefaults() {
	entry.Date = strings.TrimSpace(entry.Date)
}

func (entry *PregnancyEntry) Stamp(id int64, at time.Time) {
	entry.ID = id
	entry.AddedAt = at
}
