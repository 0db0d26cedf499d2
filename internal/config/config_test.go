package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ownership-syncer/internal/domain"
)

const (
	testTransferTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
	testTransferABI   = `{"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"from","type":"address"},{"indexed":true,"internalType":"address","name":"to","type":"address"},{"indexed":true,"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"Transfer","type":"event"}`
	testApprovalABI   = `{"anonymous":false,"inputs":[{"indexed":true,"name":"owner","type":"address"},{"indexed":true,"name":"approved","type":"address"},{"indexed":true,"name":"tokenId","type":"uint256"}],"name":"Approval","type":"event"}`
)

func TestLoadOwnershipSyncerConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *OwnershipSyncerConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
ethereum:
  rpc_url: "http://localhost:8545"
  chain_id: "eip155:11155111"
source:
  provider: rpc
  page_limit: 50
  page_backoff: "250ms"
  block_step: 500
contract:
  address: "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
  event_topic: "` + testTransferTopic + `"
  abi: '` + testTransferABI + `'
redis:
  addr: "localhost:6379"
lease:
  ttl: "2m"
schedule:
  interval: "1m"
  run_on_start: false
`,
			validate: func(t *testing.T, cfg *OwnershipSyncerConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "http://localhost:8545", cfg.Ethereum.RPCURL)
				assert.Equal(t, domain.ChainEthereumSepolia, cfg.Ethereum.ChainID)
				assert.Equal(t, SourceProviderRPC, cfg.Source.Provider)
				assert.Equal(t, 50, cfg.Source.PageLimit)
				assert.Equal(t, 250*time.Millisecond, cfg.Source.PageBackoff)
				assert.Equal(t, uint64(500), cfg.Source.BlockStep)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, 2*time.Minute, cfg.Lease.TTL)
				assert.Equal(t, time.Minute, cfg.Schedule.Interval)
				assert.False(t, cfg.Schedule.RunOnStart)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  dbname: testdb
ethereum:
  rpc_url: "http://localhost:8545"
contract:
  address: "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
  event_topic: "` + testTransferTopic + `"
  abi: '[` + testApprovalABI + `,` + testTransferABI + `]'
`,
			validate: func(t *testing.T, cfg *OwnershipSyncerConfig) {
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, domain.ChainEthereumMainnet, cfg.Ethereum.ChainID)
				assert.Equal(t, SourceProviderRPC, cfg.Source.Provider)
				assert.Equal(t, 100, cfg.Source.PageLimit)
				assert.Equal(t, time.Second, cfg.Source.PageBackoff)
				assert.Equal(t, uint64(2000), cfg.Source.BlockStep)
				assert.Equal(t, domain.DEFAULT_LEASE_KEY, cfg.Lease.Key)
				assert.Equal(t, 10*time.Minute, cfg.Lease.TTL)
				assert.Equal(t, "OWNERSHIP_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, 5*time.Minute, cfg.Schedule.Interval)
				assert.True(t, cfg.Schedule.RunOnStart)
			},
		},
		{
			name: "moralis provider",
			configFile: `
database:
  host: localhost
  dbname: testdb
source:
  provider: moralis
moralis:
  api_key: "secret"
  chain: "polygon"
ethereum:
  chain_id: "eip155:137"
contract:
  address: "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
  event_topic: "` + testTransferTopic + `"
  abi: '` + testTransferABI + `'
`,
			validate: func(t *testing.T, cfg *OwnershipSyncerConfig) {
				assert.Equal(t, SourceProviderMoralis, cfg.Source.Provider)
				assert.Equal(t, "secret", cfg.Moralis.APIKey)
				assert.Equal(t, "polygon", cfg.Moralis.Chain)
				assert.Equal(t, "https://deep-index.moralis.io/api/v2.2", cfg.Moralis.APIURL)
			},
		},
		{
			name: "malformed ABI",
			configFile: `
database:
  host: localhost
  dbname: testdb
ethereum:
  rpc_url: "http://localhost:8545"
contract:
  address: "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
  event_topic: "` + testTransferTopic + `"
  abi: '{"name": "Transfer", "type": "event", "inputs": ['
`,
			expectError: true,
		},
		{
			name: "missing ABI",
			configFile: `
database:
  host: localhost
  dbname: testdb
ethereum:
  rpc_url: "http://localhost:8545"
contract:
  address: "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
  event_topic: "` + testTransferTopic + `"
`,
			expectError: true,
		},
		{
			name: "unknown provider",
			configFile: `
database:
  host: localhost
  dbname: testdb
source:
  provider: graph
contract:
  address: "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
  event_topic: "` + testTransferTopic + `"
  abi: '` + testTransferABI + `'
`,
			expectError: true,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.configFile), 0600))

			cfg, err := LoadOwnershipSyncerConfig(configFile, tmpDir)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestContractConfig_TransferEvent(t *testing.T) {
	tests := []struct {
		name      string
		contract  ContractConfig
		errKey    string
		eventName string
	}{
		{
			name: "single event object",
			contract: ContractConfig{
				Address:    "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
				EventTopic: testTransferTopic,
				ABI:        testTransferABI,
			},
			eventName: "Transfer",
		},
		{
			name: "abi array",
			contract: ContractConfig{
				Address:    "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
				EventTopic: testTransferTopic,
				ABI:        "[" + testApprovalABI + "," + testTransferABI + "]",
			},
			eventName: "Transfer",
		},
		{
			name: "invalid contract address",
			contract: ContractConfig{
				Address:    "0x1234",
				EventTopic: testTransferTopic,
				ABI:        testTransferABI,
			},
			errKey: "contract.address",
		},
		{
			name: "invalid topic",
			contract: ContractConfig{
				Address:    "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
				EventTopic: "0xddf252ad",
				ABI:        testTransferABI,
			},
			errKey: "contract.event_topic",
		},
		{
			name: "topic not in ABI",
			contract: ContractConfig{
				Address:    "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
				EventTopic: testTransferTopic,
				ABI:        testApprovalABI,
			},
			errKey: "contract.event_topic",
		},
		{
			name: "malformed JSON",
			contract: ContractConfig{
				Address:    "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
				EventTopic: testTransferTopic,
				ABI:        "{not json",
			},
			errKey: "contract.abi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := tt.contract.TransferEvent()
			if tt.errKey != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
				var cfgErr *domain.ConfigError
				require.True(t, errors.As(err, &cfgErr))
				assert.Equal(t, tt.errKey, cfgErr.Key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.eventName, event.Name)
			assert.Len(t, event.Inputs, 3)
		})
	}
}

func TestContractConfig_EventABIJSON(t *testing.T) {
	contract := ContractConfig{
		Address:    "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		EventTopic: testTransferTopic,
		ABI:        "[" + testApprovalABI + "," + testTransferABI + "]",
	}

	raw, err := contract.EventABIJSON()
	require.NoError(t, err)
	assert.Contains(t, raw, `"name":"Transfer"`)
	assert.NotContains(t, raw, "Approval")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "testuser",
		Password: "p@ssw0rd!",
		DBName:   "testdb",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable", cfg.DSN())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// Viper uses FF_OWNERSHIP_ prefix
	envContent := `FF_OWNERSHIP_DEBUG=true
FF_OWNERSHIP_DATABASE_HOST=env-host
FF_OWNERSHIP_DATABASE_DBNAME=env-db
FF_OWNERSHIP_ETHEREUM_RPC_URL=http://env-rpc:8545
FF_OWNERSHIP_SOURCE_PAGE_LIMIT=25
FF_OWNERSHIP_CONTRACT_ADDRESS=0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359
FF_OWNERSHIP_CONTRACT_EVENT_TOPIC=` + testTransferTopic + `
FF_OWNERSHIP_CONTRACT_ABI='` + testTransferABI + `'
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))
	t.Cleanup(func() {
		for _, key := range []string{
			"FF_OWNERSHIP_DEBUG",
			"FF_OWNERSHIP_DATABASE_HOST",
			"FF_OWNERSHIP_DATABASE_DBNAME",
			"FF_OWNERSHIP_ETHEREUM_RPC_URL",
			"FF_OWNERSHIP_SOURCE_PAGE_LIMIT",
			"FF_OWNERSHIP_CONTRACT_ADDRESS",
			"FF_OWNERSHIP_CONTRACT_EVENT_TOPIC",
			"FF_OWNERSHIP_CONTRACT_ABI",
		} {
			_ = os.Unsetenv(key)
		}
	})

	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
database:
  host: file-host
  dbname: file-db
`
	require.NoError(t, os.WriteFile(configPath, []byte(configFile), 0600))

	cfg, err := LoadOwnershipSyncerConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, "http://env-rpc:8545", cfg.Ethereum.RPCURL)
	assert.Equal(t, 25, cfg.Source.PageLimit)
	assert.Equal(t, testTransferABI, cfg.Contract.ABI)
}
