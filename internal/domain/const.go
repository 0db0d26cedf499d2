package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// WATERMARK_KEY is the key of the last processed block record
	WATERMARK_KEY = "last_update_block"

	// DEFAULT_LEASE_KEY is the key of the run lease
	DEFAULT_LEASE_KEY = "ff-ownership-syncer:run-lease"
)
