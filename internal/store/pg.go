package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-ownership-syncer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, the defaults of NormalizeConnectionPoolSettings are used.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 5
//   - MaxIdleConns: 2
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// The syncer issues one statement at a time, so the pool stays small.
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 5
	}
	if maxIdleConns == 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// RemoveOwnerToken removes a token from an owner's set
func (s *pgStore) RemoveOwnerToken(ctx context.Context, address string, tokenID string) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.OwnerTokens{}).
		Where("address = ?", address).
		Updates(map[string]interface{}{
			"tokens":     gorm.Expr("array_remove(tokens, ?::text)", tokenID),
			"updated_at": gorm.Expr("now()"),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove token from owner: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// AddOwnerToken adds a token to an owner's set in a single upsert:
// the record is created when absent and the token appended only when not already present
func (s *pgStore) AddOwnerToken(ctx context.Context, address string, tokenID string) error {
	record := schema.OwnerTokens{
		Address: address,
		Tokens:  pq.StringArray{tokenID},
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "address"}},
		DoUpdates: clause.Set{
			{
				Column: clause.Column{Name: "tokens"},
				Value: gorm.Expr(
					"CASE WHEN ?::text = ANY(address_to_tokens.tokens) THEN address_to_tokens.tokens ELSE array_append(address_to_tokens.tokens, ?::text) END",
					tokenID, tokenID),
			},
			{
				Column: clause.Column{Name: "updated_at"},
				Value:  gorm.Expr("now()"),
			},
		},
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to add token to owner: %w", err)
	}

	return nil
}

// SetTokenOwner overwrites the owner of a token
func (s *pgStore) SetTokenOwner(ctx context.Context, tokenID string, owner string, blockNumber uint64) error {
	record := schema.TokenOwner{
		TokenID:     tokenID,
		Owner:       owner,
		BlockNumber: blockNumber,
		UpdatedAt:   time.Now(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner", "block_number", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to set token owner: %w", err)
	}

	return nil
}

// GetOwnerTokens retrieves the tokens owned by an address
func (s *pgStore) GetOwnerTokens(ctx context.Context, address string) ([]string, error) {
	var record schema.OwnerTokens
	err := s.db.WithContext(ctx).Where("address = ?", address).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get owner tokens: %w", err)
	}

	return []string(record.Tokens), nil
}

// GetTokenOwner retrieves the current owner record of a token
func (s *pgStore) GetTokenOwner(ctx context.Context, tokenID string) (*schema.TokenOwner, error) {
	var record schema.TokenOwner
	err := s.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token owner: %w", err)
	}

	return &record, nil
}

// CreateSyncRun inserts a sync run record
func (s *pgStore) CreateSyncRun(ctx context.Context, run *schema.SyncRun) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to create sync run: %w", err)
	}
	return nil
}

// GetRecentSyncRuns retrieves the latest sync runs, newest first
func (s *pgStore) GetRecentSyncRuns(ctx context.Context, limit int) ([]schema.SyncRun, error) {
	var runs []schema.SyncRun
	err := s.db.WithContext(ctx).
		Order("finished_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sync runs: %w", err)
	}
	return runs, nil
}
