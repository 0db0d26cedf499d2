package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-ownership-syncer/internal/domain"
	"github.com/feral-file/ff-ownership-syncer/internal/store/schema"
)

// GetWatermark retrieves the last processed block number
func (s *pgStore) GetWatermark(ctx context.Context) (uint64, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", domain.WATERMARK_KEY).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrWatermarkNotInitialized
		}
		return 0, fmt.Errorf("failed to get watermark: %w", err)
	}

	blockNumber, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse watermark: %w", err)
	}

	return blockNumber, nil
}

// SetWatermark stores the last processed block number
func (s *pgStore) SetWatermark(ctx context.Context, blockNumber uint64) error {
	kv := schema.KeyValueStore{
		Key:   domain.WATERMARK_KEY,
		Value: strconv.FormatUint(blockNumber, 10),
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set watermark: %w", err)
	}

	return nil
}

// InitWatermark stores the bootstrap watermark unless one already exists
func (s *pgStore) InitWatermark(ctx context.Context, blockNumber uint64) (bool, error) {
	kv := schema.KeyValueStore{
		Key:   domain.WATERMARK_KEY,
		Value: strconv.FormatUint(blockNumber, 10),
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&kv)
	if result.Error != nil {
		return false, fmt.Errorf("failed to init watermark: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}
