package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// recordFile is the row shape: the full JSON array for one record file.
type recordFile struct {
	FileID string `gorm:"primaryKey;type:varchar(64)"`
	Data   []byte
}

func (recordFile) TableName() string {
	return "record_files"
}

// SQLiteBackend stores each record file as a single blob row, keeping the
// same whole-array read/write contract as the file backend.
type SQLiteBackend struct {
	db *gorm.DB
}

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")

	if err := db.AutoMigrate(&recordFile{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Read(fileID string) ([]byte, error) {
	var rec recordFile
	err := b.db.First(&rec, "file_id = ?", fileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("read %s: %w", fileID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fileID, err)
	}
	return rec.Data, nil
}

func (b *SQLiteBackend) Write(fileID string, data []byte) error {
	rec := recordFile{FileID: fileID, Data: data}
	err := b.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("write %s: %w", fileID, err)
	}
	return nil
}
