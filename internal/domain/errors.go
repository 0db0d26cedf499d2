package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrWatermarkNotInitialized is returned when no watermark record exists yet
	ErrWatermarkNotInitialized = errors.New("watermark not initialized")

	// ErrLeaseNotAcquired is returned when another run holds the run lease
	ErrLeaseNotAcquired = errors.New("lease not acquired")

	// ErrInvalidAddress is returned when an address cannot be canonicalized
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidConfig is returned when the configuration is missing or malformed
	ErrInvalidConfig = errors.New("invalid config")
)

// ConfigError reports a configuration problem detected at startup
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %q: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is makes every ConfigError match ErrInvalidConfig
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// SourceFetchError reports a failure to fetch or decode events from the event source
type SourceFetchError struct {
	FromBlock uint64
	ToBlock   uint64
	Page      int
	Err       error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("failed to fetch events for blocks %d-%d (page %d): %v", e.FromBlock, e.ToBlock, e.Page, e.Err)
}

func (e *SourceFetchError) Unwrap() error {
	return e.Err
}

// StoreOperationError reports a failed read or write against the ownership store
type StoreOperationError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreOperationError) Error() string {
	return fmt.Sprintf("store operation %s on %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *StoreOperationError) Unwrap() error {
	return e.Err
}
