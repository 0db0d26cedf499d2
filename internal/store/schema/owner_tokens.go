package schema

import (
	"time"

	"github.com/lib/pq"
)

// OwnerTokens represents the address_to_tokens table - the set of tokens held by an address
type OwnerTokens struct {
	// Address is the EIP-55 checksummed owner address
	Address string `gorm:"column:address;primaryKey;type:text"`
	// Tokens is the set of token ids owned by Address, kept free of duplicates
	Tokens pq.StringArray `gorm:"column:tokens;type:text[];not null;default:'{}'"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the OwnerTokens model
func (OwnerTokens) TableName() string {
	return "address_to_tokens"
}
