package schema

import "time"

// TokenOwner represents the tokens_to_address table - the current owner of each token
type TokenOwner struct {
	// TokenID is the token id as a decimal string
	TokenID string `gorm:"column:token_id;primaryKey;type:text"`
	// Owner is the EIP-55 checksummed address of the last recipient
	Owner string `gorm:"column:owner;not null;type:text;index:idx_tokens_to_address_owner"`
	// BlockNumber is the block of the transfer that set Owner
	BlockNumber uint64 `gorm:"column:block_number;not null;type:bigint"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TokenOwner model
func (TokenOwner) TableName() string {
	return "tokens_to_address"
}
