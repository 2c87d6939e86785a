package localstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/mediguide/storefront-client/pkg/config"
	"github.com/mediguide/storefront-client/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Well-known slot keys mirroring what the storefront has always persisted.
const (
	KeyCart  = "cart"
	KeyToken = "token"
	KeyUser  = "user"
)

// Slot is one persisted key-value entry. Values are plain text, typically a
// JSON document; there is no encryption layer.
type Slot struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Slot) TableName() string { return "slots" }

// Store is the durable local key-value storage for the storefront client.
// It is origin-scoped in the sense of one database file per installation;
// concurrent writers are not coordinated and the last write wins.
type Store struct {
	conn *gorm.DB
}

// Open boots the slot store at the configured path, creating the schema on
// first use.
func Open(ctx context.Context, cfg config.StorageConfig, logg *logger.Logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening slot store: %w", err)
	}

	if err := conn.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("migrating slot store: %w", err)
	}

	if logg != nil {
		logg.Debug(ctx, "slot store opened")
	}

	return &Store{conn: conn}, nil
}

// Get returns the raw value stored under key. The second return is false
// when the slot has never been written or was deleted.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var slot Slot
	err := s.conn.WithContext(ctx).Where("key = ?", key).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading slot %q: %w", key, err)
	}
	return []byte(slot.Value), true, nil
}

// Put replaces the slot value in a single upsert, so readers observe either
// the previous snapshot or the new one.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	slot := Slot{Key: key, Value: string(value)}
	err := s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&slot).Error
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", key, err)
	}
	return nil
}

// Delete removes the slot if present. Deleting an absent slot is not an
// error.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.conn.WithContext(ctx).Where("key = ?", key).Delete(&Slot{}).Error
	if err != nil {
		return fmt.Errorf("deleting slot %q: %w", key, err)
	}
	return nil
}

// Close shuts down the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
