package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/healthbook/internal/models"
	"github.com/terraincognita07/healthbook/internal/storage"
)

type recordPtr[T any] interface {
	*T
	models.Record
}

// RecordStore keeps one newest-first sequence per (owner, kind). Records are
// only ever appended.
type RecordStore struct {
	kv    storage.KV
	locks *keyedMutex
	clock *recordClock
}

func NewRecordStore(kv storage.KV) *RecordStore {
	return &RecordStore{
		kv:    kv,
		locks: newKeyedMutex(),
		clock: &recordClock{now: time.Now},
	}
}

func AppendRecord[T any, P recordPtr[T]](store *RecordStore, ownerID string, candidate T) (T, error) {
	var zero T
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return zero, ErrOwnerRequired
	}

	record := P(&candidate)
	record.ApplyDefaults()
	if err := validateRecord(candidate); err != nil {
		return zero, err
	}

	key := storage.RecordsKey(record.RecordKind(), ownerID)
	unlock := store.locks.Lock(key)
	defer unlock()

	existing, err := loadRecords[T](store.kv, key)
	if err != nil {
		return zero, err
	}

	var floor int64
	if len(existing) > 0 {
		floor = P(&existing[0]).RecordID()
	}
	id, at := store.clock.next(floor)
	record.Stamp(id, at)

	updated := make([]T, 0, len(existing)+1)
	updated = append(updated, candidate)
	updated = append(updated, existing...)
	if err := storage.SaveJSON(store.kv, key, updated); err != nil {
		return zero, fmt.Errorf("persist %s: %w", record.RecordKind(), err)
	}
	return candidate, nil
}

// ListRecords never fails for an owner without records; it returns an empty
// slice.
func ListRecords[T any, P recordPtr[T]](store *RecordStore, ownerID string) ([]T, error) {
	kind := P(new(T)).RecordKind()
	return loadRecords[T](store.kv, storage.RecordsKey(kind, strings.TrimSpace(ownerID)))
}

func (store *RecordStore) AppendMedicalRecord(ownerID string, record models.MedicalRecord) (models.MedicalRecord, error) {
	return AppendRecord(store, ownerID, record)
}

func (store *RecordStore) ListMedicalRecords(ownerID string) ([]models.MedicalRecord, error) {
	return ListRecords[models.MedicalRecord](store, ownerID)
}

func (store *RecordStore) AppendMenstrualEntry(ownerID string, entry models.MenstrualEntry) (models.MenstrualEntry, error) {
	return AppendRecord(store, ownerID, entry)
}

func (store *RecordStore) ListMenstrualEntries(ownerID string) ([]models.MenstrualEntry, error) {
	return ListRecords[models.MenstrualEntry](store, ownerID)
}

func (store *RecordStore) AppendPregnancyEntry(ownerID string, entry models.PregnancyEntry) (models.PregnancyEntry, error) {
	return AppendRecord(store, ownerID, entry)
}

func (store *RecordStore) ListPregnancyEntries(ownerID string) ([]models.PregnancyEntry, error) {
	return ListRecords[models.PregnancyEntry](store, ownerID)
}

func (store *RecordStore) Count(ownerID string, kind models.RecordKind) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("unknown record kind %q", kind)
	}
	raw, err := loadRecords[json.RawMessage](store.kv, storage.RecordsKey(kind, strings.TrimSpace(ownerID)))
	if err != nil {
		return 0, err
	}
	return len(raw), nil
}

func loadRecords[T any](kv storage.KV, key string) ([]T, error) {
	records := make([]T, 0)
	if _, err := storage.LoadJSON(kv, key, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// recordClock hands out millisecond ids that strictly increase, both across
// the process and past the newest id already stored under a key.
type recordClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func (clock *recordClock) next(floor int64) (int64, time.Time) {
	clock.mu.Lock()
	defer clock.mu.Unlock()

	at := clock.now().UTC().Truncate(time.Millisecond)
	id := at.UnixMilli()
	if id <= clock.last {
		id = clock.last + 1
	}
	if id <= floor {
		id = floor + 1
	}
	clock.last = id
	return id, at
}
