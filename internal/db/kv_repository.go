package db

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvEntry struct {
	EntryKey  string    `gorm:"column:entry_key;primaryKey"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

// SQLiteKV stores opaque values in the kv_entries table. It satisfies
// storage.KV.
type SQLiteKV struct {
	database *gorm.DB
}

func NewSQLiteKV(database *gorm.DB) *SQLiteKV {
	return &SQLiteKV{database: database}
}

func (repo *SQLiteKV) Get(key string) ([]byte, bool, error) {
	entry := kvEntry{}
	result := repo.database.
		Where("entry_key = ?", key).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return entry.Value, true, nil
}

func (repo *SQLiteKV) Set(key string, value []byte) error {
	entry := kvEntry{
		EntryKey:  key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (repo *SQLiteKV) Delete(key string) error {
	return repo.database.Where("entry_key = ?", key).Delete(&kvEntry{}).Error
}

func (repo *SQLiteKV) Close() error {
	sqlDB, err := repo.database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
