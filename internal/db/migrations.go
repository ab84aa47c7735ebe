package db

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	embeddedmigrations "github.com/terraincognita07/healthbook/migrations"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	migrationFilePattern = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.sql$`)

	// ErrMigrationChanged means a migration file no longer matches the copy
	// that was applied to this database. Stored health data is never migrated
	// forward on top of an edited history.
	ErrMigrationChanged = errors.New("applied migration was modified")
)

type storeMigration struct {
	Version  int
	Name     string
	SQL      string
	Checksum string
}

// schemaMigration is one row of the bookkeeping table.
type schemaMigration struct {
	Version   string    `gorm:"column:version;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Checksum  string    `gorm:"column:checksum;not null;default:''"`
	AppliedAt time.Time `gorm:"column:applied_at;not null"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

func applyEmbeddedMigrations(database *gorm.DB, logger *zap.Logger) error {
	return applyMigrations(database, embeddedmigrations.Files, logger)
}

func applyMigrations(database *gorm.DB, files fs.FS, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := database.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("prepare schema_migrations: %w", err)
	}

	migrations, err := loadMigrations(files)
	if err != nil {
		return err
	}

	applied, err := loadAppliedMigrations(database)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if previous, ok := applied[migrationVersion(migration.Version)]; ok {
			if previous.Checksum != "" && previous.Checksum != migration.Checksum {
				return fmt.Errorf("%w: %s", ErrMigrationChanged, migration.Name)
			}
			continue
		}
		if err := applyMigration(database, migration); err != nil {
			return err
		}
		logger.Info("applied store migration",
			zap.String("migration", migration.Name),
			zap.Int("version", migration.Version),
		)
	}

	return nil
}

func migrationVersion(version int) string {
	return fmt.Sprintf("%04d", version)
}

func loadMigrations(files fs.FS) ([]storeMigration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]storeMigration, 0, len(entries))
	seen := make(map[int]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileName := entry.Name()
		matches := migrationFilePattern.FindStringSubmatch(fileName)
		if matches == nil {
			continue
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", fileName, err)
		}
		if existing, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %d in %s and %s", version, existing, fileName)
		}
		seen[version] = fileName

		rawSQL, err := fs.ReadFile(files, fileName)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", fileName, err)
		}
		sum := sha256.Sum256(rawSQL)

		migrations = append(migrations, storeMigration{
			Version:  version,
			Name:     fileName,
			SQL:      string(rawSQL),
			Checksum: hex.EncodeToString(sum[:]),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

func loadAppliedMigrations(database *gorm.DB) (map[string]schemaMigration, error) {
	var rows []schemaMigration
	if err := database.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}

	applied := make(map[string]schemaMigration, len(rows))
	for _, row := range rows {
		applied[row.Version] = row
	}
	return applied, nil
}

func applyMigration(database *gorm.DB, migration storeMigration) error {
	statements := splitSQLStatements(migration.SQL)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s has no SQL statements", migration.Name)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s: %w", migration.Name, err)
			}
		}

		row := schemaMigration{
			Version:   migrationVersion(migration.Version),
			Name:      migration.Name,
			Checksum:  migration.Checksum,
			AppliedAt: time.Now().UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.Name, err)
		}
		return nil
	})
}

// splitSQLStatements drops "--" comment lines and splits on semicolons.
// Migrations must not put semicolons inside string literals.
func splitSQLStatements(sqlText string) []string {
	var body strings.Builder
	for _, line := range strings.Split(sqlText, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}

	rawParts := strings.Split(body.String(), ";")
	statements := make([]string, 0, len(rawParts))
	for _, rawPart := range rawParts {
		if statement := strings.TrimSpace(rawPart); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
