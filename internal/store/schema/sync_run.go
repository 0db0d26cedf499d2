package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-ownership-syncer/internal/domain"
)

// SyncRun represents the sync_runs table - one row per syncer invocation
type SyncRun struct {
	// ID is the run id, also attached to every log line of the run
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// Chain identifies the blockchain network
	Chain domain.Chain `gorm:"column:chain;not null;type:text"`
	// ContractAddress is the contract whose events were consumed
	ContractAddress string `gorm:"column:contract_address;not null;type:text"`
	// Status is the outcome of the run (succeeded, failed, skipped)
	Status domain.RunStatus `gorm:"column:status;not null;type:text;index:idx_sync_runs_status"`
	// Phase is the last phase the run reached
	Phase domain.RunPhase `gorm:"column:phase;not null;type:text"`
	// FromBlock is the first block of the fetched range (nil if the range was never resolved)
	FromBlock *uint64 `gorm:"column:from_block;type:bigint"`
	// ToBlock is the last block of the fetched range
	ToBlock *uint64 `gorm:"column:to_block;type:bigint"`
	// FetchedEvents is the number of events returned by the source
	FetchedEvents int `gorm:"column:fetched_events;not null;default:0"`
	// AppliedEvents is the number of events folded into the index
	AppliedEvents int `gorm:"column:applied_events;not null;default:0"`
	// Watermark is the committed watermark (nil when nothing was committed)
	Watermark *uint64 `gorm:"column:watermark;type:bigint"`
	// Error is the failure reason for failed and skipped runs
	Error *string `gorm:"column:error;type:text"`
	// Details holds run counters such as page count and consistency warnings
	Details datatypes.JSONMap `gorm:"column:details;type:jsonb"`
	// StartedAt is when the run was triggered
	StartedAt time.Time `gorm:"column:started_at;not null;type:timestamptz"`
	// FinishedAt is when the run ended
	FinishedAt time.Time `gorm:"column:finished_at;not null;type:timestamptz;index:idx_sync_runs_finished_at"`
	// CreatedAt is the timestamp when this record was inserted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the SyncRun model
func (SyncRun) TableName() string {
	return "sync_runs"
}
