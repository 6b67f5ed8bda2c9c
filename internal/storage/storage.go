// Package storage is the key-value collaborator behind the order store: a
// single table of named blobs reached through GORM.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roscon_orders/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

var (
	ErrNotFound          = errors.New("key not found")
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)

// Entry is one stored blob.
type Entry struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string { return "kv_entries" }

// Open connects to the configured database and migrates the entry table.
func Open(cfg config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.StorageDriver, cfg.StorageDSN)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Silent
	if cfg.Debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.StorageDriver, err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate storage: %w", err)
	}
	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(NormalizeDSN(dsn)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// NormalizeDSN trims quotes and whitespace from a PostgreSQL DSN and adds
// sslmode=disable to key=value DSNs that do not set it.
func NormalizeDSN(raw string) string {
	dsn := strings.Trim(strings.TrimSpace(raw), "\"'")
	lower := strings.ToLower(dsn)
	if dsn == "" || strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return dsn
	}
	if !strings.Contains(lower, "=") {
		return dsn
	}
	cleaned := strings.Join(strings.Fields(dsn), " ")
	if !strings.Contains(lower, "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

type KV struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewKV(db *gorm.DB, logger *zap.Logger) *KV {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KV{db: db, logger: logger.Named("storage")}
}

func (kv *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	err := kv.db.WithContext(ctx).Where(&Entry{Key: key}).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return entry.Value, nil
}

// Put stores value under key, replacing any previous value.
func (kv *KV) Put(ctx context.Context, key string, value []byte) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := kv.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	kv.logger.Debug("stored", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}
