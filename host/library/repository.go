package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/myply/myply-go/host/adaptor"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when no playlist is stored under the requested id.
	ErrNotFound = errors.New("library: playlist not found")

	// ErrTrackCountMismatch is returned when an update does not line up with the stored tracks.
	ErrTrackCountMismatch = errors.New("library: track count mismatch")
)

// Repository stores fetched playlists so links can be regenerated without refetching.
type Repository struct {
	db *gorm.DB
}

// NewSQLiteRepository opens (and migrates) a SQLite library at dsn.
func NewSQLiteRepository(dsn string, gormLogger logger.Interface) (*Repository, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("dsn required")
	}

	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	dbDir := filepath.Dir(dsn)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 gormLogger,
	})
	if err != nil {
		if db != nil {
			closeDB(db)
		}
		return nil, err
	}

	if err := applySQLitePragmas(db); err != nil {
		closeDB(db)
		return nil, err
	}
	if err := db.AutoMigrate(&PlaylistModel{}, &TrackModel{}); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("migrate library: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Repository{db: db}, nil
}

// ConfigurePool updates the database connection pool settings.
// Negative values leave the current setting alone.
func (r *Repository) ConfigurePool(maxOpen, maxIdle int, maxLifetime time.Duration) error {
	if r == nil || r.db == nil {
		return errors.New("repository not configured")
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	if maxOpen >= 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime >= 0 {
		sqlDB.SetConnMaxLifetime(maxLifetime)
	}
	return nil
}

// Save stores playlist under a new id. source names the adaptor it came from.
func (r *Repository) Save(ctx context.Context, source string, playlist *adaptor.Playlist) (string, error) {
	if playlist == nil {
		return "", fmt.Errorf("library: nil playlist")
	}
	id := uuid.NewString()
	model := toModel(id, source, playlist)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return "", fmt.Errorf("library: save playlist: %w", err)
	}
	return id, nil
}

// Get loads the playlist stored under id.
func (r *Repository) Get(ctx context.Context, id string) (*Entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var model PlaylistModel
	err := r.db.WithContext(ctx).Preload("Tracks", orderByPosition).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("library: get playlist: %w", err)
	}
	return toEntry(model), nil
}

// List returns every stored playlist, oldest first.
func (r *Repository) List(ctx context.Context) ([]*Entry, error) {
	var models []PlaylistModel
	err := r.db.WithContext(ctx).
		Preload("Tracks", orderByPosition).
		Order("created_at ASC").
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("library: list playlists: %w", err)
	}

	entries := make([]*Entry, len(models))
	for i, model := range models {
		entries[i] = toEntry(model)
	}
	return entries, nil
}

// UpdateChannelIDs replaces the per-track identifiers of the playlist stored under
// id with those of playlist. Both must have the same number of tracks.
func (r *Repository) UpdateChannelIDs(ctx context.Context, id string, playlist *adaptor.Playlist) error {
	if playlist == nil {
		return fmt.Errorf("library: nil playlist")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored PlaylistModel
		err := tx.Preload("Tracks", orderByPosition).First(&stored, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		if len(stored.Tracks) != len(playlist.Tracks) {
			return fmt.Errorf("%w: stored %d, given %d", ErrTrackCountMismatch, len(stored.Tracks), len(playlist.Tracks))
		}

		for i := range stored.Tracks {
			update := TrackModel{ChannelIDs: copyMap(playlist.Tracks[i].ChannelIDs)}
			if err := tx.Model(&stored.Tracks[i]).Select("ChannelIDs").Updates(update).Error; err != nil {
				return err
			}
		}
		return tx.Model(&PlaylistModel{}).Where("id = ?", id).Update("updated_at", time.Now()).Error
	})
}

// Delete removes the playlist stored under id together with its tracks.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&TrackModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&PlaylistModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil
	})
}

// Count returns the number of stored playlists.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&PlaylistModel{}).Count(&count).Error
	return count, err
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func applySQLitePragmas(db *gorm.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, stmt := range pragmas {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
