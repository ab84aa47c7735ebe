package models

import "time"

type RecordKind string

const (
	KindMedical   RecordKind = "medical"
	KindMenstrual RecordKind = "menstrual"
	KindPregnancy RecordKind = "pregnancy"
)

const DateLayout = "2006-01-02"

var recordKindPrefixes = map[RecordKind]string{
	KindMedical:   "medicalRecords",
	KindMenstrual: "menstrualData",
	KindPregnancy: "pregnancyData",
}

func (kind RecordKind) Valid() bool {
	_, ok := recordKindPrefixes[kind]
	return ok
}

// StoragePrefix is the durable key prefix for a kind; the owner's generated
// id follows after a colon.
func (kind RecordKind) StoragePrefix() string {
	return recordKindPrefixes[kind]
}

// Record is implemented by pointers to the closed record structs.
type Record interface {
	RecordKind() RecordKind
	RecordID() int64
	ApplyDefaults()
	Stamp(id int64, at time.Time)
}
