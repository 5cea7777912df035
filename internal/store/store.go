// Package store persists sentiment snapshots and classified headlines in
// SQLite and serves the time-range queries behind trend and keyword
// analysis.
package store

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/seenimoa/econmood/pkg/models"
)

// snapshotRow is one persisted sentiment snapshot. The unique index on
// (region_id, recorded_at) enforces at most one snapshot per region per
// timestamp; duplicate inserts are dropped, not errors.
type snapshotRow struct {
	ID            uint      `gorm:"primaryKey"`
	RegionID      string    `gorm:"index:idx_region_time;uniqueIndex:uniq_region_recorded"`
	Score         float64   `gorm:"not null"`
	Label         string    `gorm:"not null"`
	HeadlineCount int       `gorm:"not null"`
	BullCount     int       `gorm:"not null"`
	BearCount     int       `gorm:"not null"`
	NeutralCount  int       `gorm:"not null"`
	RecordedAt    time.Time `gorm:"index:idx_region_time;uniqueIndex:uniq_region_recorded"`
}

func (snapshotRow) TableName() string { return "sentiment_history" }

// headlineRow is one persisted classified headline.
type headlineRow struct {
	ID         uint   `gorm:"primaryKey"`
	RegionID   string `gorm:"index:idx_headlines_region_time"`
	Title      string `gorm:"not null"`
	Source     string
	URL        string
	Score      float64
	Label      string
	RecordedAt time.Time `gorm:"index:idx_headlines_region_time"`
}

func (headlineRow) TableName() string { return "headlines_history" }

// Store wraps the SQLite database. Snapshot writes for a single region are
// serialized through a per-region mutex so concurrent collection cycles
// cannot race on the (region_id, recorded_at) uniqueness invariant.
type Store struct {
	db *gorm.DB

	mu      sync.Mutex
	regions map[models.Region]*sync.Mutex
}

// Open opens (creating if necessary) the SQLite database at path and runs
// migrations. Use "file::memory:?cache=shared" for an in-memory store.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&snapshotRow{}, &headlineRow{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Store{
		db:      db,
		regions: make(map[models.Region]*sync.Mutex),
	}, nil
}

// regionLock returns the write mutex for a region, creating it on first use.
func (s *Store) regionLock(region models.Region) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.regions[region]
	if !ok {
		lock = &sync.Mutex{}
		s.regions[region] = lock
	}
	return lock
}

// SaveSnapshot persists one snapshot. A duplicate (region, recorded_at) pair
// is silently dropped and logged — an expected race under sub-second
// collection cadence, not a caller error.
func (s *Store) SaveSnapshot(snap models.Snapshot) error {
	lock := s.regionLock(snap.RegionID)
	lock.Lock()
	defer lock.Unlock()

	row := snapshotRow{
		RegionID:      string(snap.RegionID),
		Score:         snap.Score,
		Label:         string(snap.Label),
		HeadlineCount: snap.HeadlineCount,
		BullCount:     snap.BullCount,
		BearCount:     snap.BearCount,
		NeutralCount:  snap.NeutralCount,
		RecordedAt:    snap.RecordedAt,
	}

	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if result.Error != nil {
		return fmt.Errorf("save snapshot for %s: %w", snap.RegionID, result.Error)
	}
	if result.RowsAffected == 0 {
		log.Printf("duplicate snapshot for %s at %s, skipping", snap.RegionID, snap.RecordedAt.Format(time.RFC3339))
	}
	return nil
}

// SaveHeadlines persists a batch of classified headlines for keyword
// analysis.
func (s *Store) SaveHeadlines(region models.Region, headlines []models.Headline, recordedAt time.Time) error {
	if len(headlines) == 0 {
		return nil
	}

	rows := make([]headlineRow, len(headlines))
	for i, h := range headlines {
		rows[i] = headlineRow{
			RegionID:   string(region),
			Title:      h.Title,
			Source:     h.Source,
			URL:        h.URL,
			Score:      h.SentimentScore,
			Label:      string(h.SentimentLabel),
			RecordedAt: recordedAt,
		}
	}

	if err := s.db.Create(&rows).Error; err != nil {
		return fmt.Errorf("save %d headlines for %s: %w", len(headlines), region, err)
	}
	return nil
}

// History returns snapshots for a region since the given time, ascending by
// recorded_at.
func (s *Store) History(region models.Region, since time.Time) ([]models.TrendPoint, error) {
	var rows []snapshotRow
	err := s.db.
		Where("region_id = ? AND recorded_at >= ?", string(region), since).
		Order("recorded_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query history for %s: %w", region, err)
	}

	points := make([]models.TrendPoint, len(rows))
	for i, row := range rows {
		points[i] = models.TrendPoint{
			Score:         row.Score,
			Label:         models.Label(row.Label),
			HeadlineCount: row.HeadlineCount,
			Timestamp:     row.RecordedAt,
		}
	}
	return points, nil
}

// Latest returns the most recent snapshot for a region, or nil when the
// region has no history yet ("no data" is an absence, not an error).
func (s *Store) Latest(region models.Region) (*models.Snapshot, error) {
	var row snapshotRow
	err := s.db.
		Where("region_id = ?", string(region)).
		Order("recorded_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot for %s: %w", region, err)
	}

	return &models.Snapshot{
		RegionID:      models.Region(row.RegionID),
		Score:         row.Score,
		Label:         models.Label(row.Label),
		HeadlineCount: row.HeadlineCount,
		BullCount:     row.BullCount,
		BearCount:     row.BearCount,
		NeutralCount:  row.NeutralCount,
		RecordedAt:    row.RecordedAt,
	}, nil
}

// RecentHeadlines returns (title, label) pairs for a region since the given
// time, feeding the keyword extractor.
func (s *Store) RecentHeadlines(region models.Region, since time.Time) ([]models.LabeledHeadline, error) {
	var rows []headlineRow
	err := s.db.
		Where("region_id = ? AND recorded_at >= ?", string(region), since).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query headlines for %s: %w", region, err)
	}

	labeled := make([]models.LabeledHeadline, len(rows))
	for i, row := range rows {
		labeled[i] = models.LabeledHeadline{Title: row.Title, Label: models.Label(row.Label)}
	}
	return labeled, nil
}

// TopHeadlines returns the most recently recorded headlines for a region,
// newest first, capped at limit.
func (s *Store) TopHeadlines(region models.Region, limit int) ([]models.Headline, error) {
	var rows []headlineRow
	err := s.db.
		Where("region_id = ?", string(region)).
		Order("recorded_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query top headlines for %s: %w", region, err)
	}

	headlines := make([]models.Headline, len(rows))
	for i, row := range rows {
		headlines[i] = models.Headline{
			Title:          row.Title,
			Source:         row.Source,
			URL:            row.URL,
			SentimentScore: row.Score,
			SentimentLabel: models.Label(row.Label),
		}
	}
	return headlines, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
