package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-ownership-syncer/internal/domain"
)

// SourceProvider selects the event source implementation
type SourceProvider string

const (
	SourceProviderRPC     SourceProvider = "rpc"
	SourceProviderMoralis SourceProvider = "moralis"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// EthereumConfig holds EVM RPC configuration
type EthereumConfig struct {
	RPCURL               string        `mapstructure:"rpc_url"`
	ChainID              domain.Chain  `mapstructure:"chain_id"`
	BlockHeadTTL         time.Duration `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration `mapstructure:"block_head_stale_window"`
}

// SourceConfig holds event source pagination settings
type SourceConfig struct {
	Provider    SourceProvider `mapstructure:"provider"`
	PageLimit   int            `mapstructure:"page_limit"`   // Max events returned per page
	PageBackoff time.Duration  `mapstructure:"page_backoff"` // Fixed delay before each follow-up page
	BlockStep   uint64         `mapstructure:"block_step"`   // Block window per eth_getLogs call (rpc only)
}

// MoralisConfig holds Moralis Web3 API configuration
type MoralisConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	APIKey  string        `mapstructure:"api_key"`
	Chain   string        `mapstructure:"chain"` // Moralis chain name, e.g. "eth", "polygon"
	Timeout time.Duration `mapstructure:"timeout"`
}

// ContractConfig identifies the tracked contract and its transfer event
type ContractConfig struct {
	Address    string `mapstructure:"address"`
	EventTopic string `mapstructure:"event_topic"`
	ABI        string `mapstructure:"abi"`
}

// RedisConfig holds Redis configuration for the run lease
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LeaseConfig holds run lease configuration
type LeaseConfig struct {
	Key string        `mapstructure:"key"`
	TTL time.Duration `mapstructure:"ttl"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ScheduleConfig holds the periodic trigger configuration
type ScheduleConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	RunOnStart bool          `mapstructure:"run_on_start"`
}

// OwnershipSyncerConfig holds configuration for ownership-syncer
type OwnershipSyncerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Source     SourceConfig   `mapstructure:"source"`
	Moralis    MoralisConfig  `mapstructure:"moralis"`
	Contract   ContractConfig `mapstructure:"contract"`
	Redis      RedisConfig    `mapstructure:"redis"`
	Lease      LeaseConfig    `mapstructure:"lease"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Schedule   ScheduleConfig `mapstructure:"schedule"`
}

// LoadOwnershipSyncerConfig loads and validates configuration for ownership-syncer.
// Validation failures are returned as *domain.ConfigError.
func LoadOwnershipSyncerConfig(configFile string, envPath string) (*OwnershipSyncerConfig, error) {
	v := configureViper("ownership-syncer", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("ethereum.chain_id", "eip155:1")
	v.SetDefault("ethereum.block_head_ttl", "12s")
	v.SetDefault("ethereum.block_head_stale_window", "60s")
	v.SetDefault("source.provider", string(SourceProviderRPC))
	v.SetDefault("source.page_limit", 100)
	v.SetDefault("source.page_backoff", "1s")
	v.SetDefault("source.block_step", 2000)
	v.SetDefault("moralis.api_url", "https://deep-index.moralis.io/api/v2.2")
	v.SetDefault("moralis.chain", "eth")
	v.SetDefault("moralis.timeout", "30s")
	v.SetDefault("lease.key", domain.DEFAULT_LEASE_KEY)
	v.SetDefault("lease.ttl", "10m")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "OWNERSHIP_EVENTS")
	v.SetDefault("nats.connection_name", "ownership-syncer")
	v.SetDefault("schedule.interval", "5m")
	v.SetDefault("schedule.run_on_start", true)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) || os.IsNotExist(err) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg OwnershipSyncerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required fields and the contract ABI
func (c *OwnershipSyncerConfig) Validate() error {
	if !domain.IsValidChain(c.Ethereum.ChainID) {
		return &domain.ConfigError{Key: "ethereum.chain_id", Err: fmt.Errorf("unsupported chain %q", c.Ethereum.ChainID)}
	}

	if c.Database.Host == "" {
		return &domain.ConfigError{Key: "database.host", Err: errors.New("required")}
	}
	if c.Database.DBName == "" {
		return &domain.ConfigError{Key: "database.dbname", Err: errors.New("required")}
	}

	switch c.Source.Provider {
	case SourceProviderRPC:
		if c.Ethereum.RPCURL == "" {
			return &domain.ConfigError{Key: "ethereum.rpc_url", Err: errors.New("required for rpc provider")}
		}
		if c.Source.BlockStep == 0 {
			return &domain.ConfigError{Key: "source.block_step", Err: errors.New("must be greater than 0")}
		}
	case SourceProviderMoralis:
		if c.Moralis.APIKey == "" {
			return &domain.ConfigError{Key: "moralis.api_key", Err: errors.New("required for moralis provider")}
		}
		if c.Moralis.Chain == "" {
			return &domain.ConfigError{Key: "moralis.chain", Err: errors.New("required for moralis provider")}
		}
	default:
		return &domain.ConfigError{Key: "source.provider", Err: fmt.Errorf("unknown provider %q", c.Source.Provider)}
	}

	if c.Source.PageLimit <= 0 {
		return &domain.ConfigError{Key: "source.page_limit", Err: errors.New("must be greater than 0")}
	}
	if c.Source.PageBackoff < 0 {
		return &domain.ConfigError{Key: "source.page_backoff", Err: errors.New("must not be negative")}
	}
	if c.Lease.TTL <= 0 {
		return &domain.ConfigError{Key: "lease.ttl", Err: errors.New("must be greater than 0")}
	}

	if _, err := c.Contract.TransferEvent(); err != nil {
		return err
	}

	return nil
}

// TransferEvent parses the contract ABI and returns the event matching the configured topic.
// The ABI may be a JSON array or a single event object.
func (c *ContractConfig) TransferEvent() (*abi.Event, error) {
	if !common.IsHexAddress(c.Address) {
		return nil, &domain.ConfigError{Key: "contract.address", Err: fmt.Errorf("%w: %q", domain.ErrInvalidAddress, c.Address)}
	}

	topic := strings.TrimSpace(c.EventTopic)
	if len(strings.TrimPrefix(topic, "0x")) != 2*common.HashLength {
		return nil, &domain.ConfigError{Key: "contract.event_topic", Err: fmt.Errorf("expected 32-byte hex hash, got %q", c.EventTopic)}
	}

	raw := strings.TrimSpace(c.ABI)
	if raw == "" {
		return nil, &domain.ConfigError{Key: "contract.abi", Err: errors.New("required")}
	}
	if strings.HasPrefix(raw, "{") {
		raw = "[" + raw + "]"
	}

	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		return nil, &domain.ConfigError{Key: "contract.abi", Err: fmt.Errorf("failed to parse ABI: %w", err)}
	}

	event, err := parsed.EventByID(common.HexToHash(topic))
	if err != nil {
		return nil, &domain.ConfigError{Key: "contract.event_topic", Err: fmt.Errorf("no ABI event matches topic: %w", err)}
	}

	for _, name := range []string{"from", "to", "tokenId"} {
		if !hasInput(event.Inputs, name) {
			return nil, &domain.ConfigError{Key: "contract.abi", Err: fmt.Errorf("event %s has no %q input", event.Name, name)}
		}
	}

	return event, nil
}

// EventABIJSON returns the ABI entry of the transfer event as a single JSON object,
// the form expected by event APIs that decode logs server side
func (c *ContractConfig) EventABIJSON() (string, error) {
	event, err := c.TransferEvent()
	if err != nil {
		return "", err
	}

	raw := strings.TrimSpace(c.ABI)
	if strings.HasPrefix(raw, "{") {
		return raw, nil
	}

	var entries []map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return "", &domain.ConfigError{Key: "contract.abi", Err: fmt.Errorf("failed to decode ABI: %w", err)}
	}
	for _, entry := range entries {
		if entry["type"] == "event" && entry["name"] == event.RawName {
			data, err := json.Marshal(entry)
			if err != nil {
				return "", fmt.Errorf("failed to encode event ABI: %w", err)
			}
			return string(data), nil
		}
	}

	return "", &domain.ConfigError{Key: "contract.abi", Err: fmt.Errorf("event %s not found", event.RawName)}
}

// hasInput reports whether args contains name, accepting an underscore prefix (_from, _to, _tokenId)
func hasInput(args abi.Arguments, name string) bool {
	for _, arg := range args {
		if arg.Name == name || arg.Name == "_"+name {
			return true
		}
	}
	return false
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_OWNERSHIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.block_head_ttl",
		"ethereum.block_head_stale_window",
		// Source
		"source.provider",
		"source.page_limit",
		"source.page_backoff",
		"source.block_step",
		// Moralis
		"moralis.api_url",
		"moralis.api_key",
		"moralis.chain",
		"moralis.timeout",
		// Contract
		"contract.address",
		"contract.event_topic",
		"contract.abi",
		// Redis / lease
		"redis.addr",
		"redis.password",
		"redis.db",
		"lease.key",
		"lease.ttl",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Schedule
		"schedule.interval",
		"schedule.run_on_start",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
