package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-ownership-syncer/internal/adapter"
	"github.com/feral-file/ff-ownership-syncer/internal/block"
	"github.com/feral-file/ff-ownership-syncer/internal/config"
	"github.com/feral-file/ff-ownership-syncer/internal/domain"
	"github.com/feral-file/ff-ownership-syncer/internal/lease"
	"github.com/feral-file/ff-ownership-syncer/internal/logger"
	"github.com/feral-file/ff-ownership-syncer/internal/messaging"
	"github.com/feral-file/ff-ownership-syncer/internal/providers/ethereum"
	"github.com/feral-file/ff-ownership-syncer/internal/providers/jetstream"
	"github.com/feral-file/ff-ownership-syncer/internal/providers/moralis"
	"github.com/feral-file/ff-ownership-syncer/internal/scheduler"
	"github.com/feral-file/ff-ownership-syncer/internal/source"
	"github.com/feral-file/ff-ownership-syncer/internal/store"
	"github.com/feral-file/ff-ownership-syncer/internal/syncer"
)

var (
	configFile     = flag.String("config", "", "Path to configuration file")
	envPath        = flag.String("env", "config/", "Path to environment files")
	once           = flag.Bool("once", false, "Run a single sync and exit")
	bootstrapBlock = flag.Int64("bootstrap-block", -1, "Seed the watermark with this block if none exists, then exit")
	history        = flag.Int("history", 0, "Print the most recent sync runs and exit")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadOwnershipSyncerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ownership-syncer",
			"chain":   string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Ownership Syncer",
		zap.String("contract", cfg.Contract.Address),
		zap.String("provider", string(cfg.Source.Provider)),
	)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	if *bootstrapBlock >= 0 {
		seedWatermark(ctx, dataStore, uint64(*bootstrapBlock))
		return
	}

	if *history > 0 {
		printHistory(ctx, dataStore, *history)
		return
	}

	// Initialize clock adapter
	clock := adapter.NewClock()

	// Initialize event source
	src, closeSource := newEventSource(ctx, cfg, clock)
	defer closeSource()

	// Initialize run lease
	locker, closeLocker := newLocker(ctx, cfg, clock)
	defer closeLocker()

	// Initialize ownership change publisher
	publisher := newPublisher(ctx, cfg)
	defer publisher.Close()

	// Build the event filter from the contract ABI
	event, err := cfg.Contract.TransferEvent()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid contract configuration", zap.Error(err))
	}
	eventABI, err := cfg.Contract.EventABIJSON()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid contract configuration", zap.Error(err))
	}
	filter := source.Filter{
		Chain:           cfg.Ethereum.ChainID,
		ContractAddress: cfg.Contract.Address,
		EventTopic:      cfg.Contract.EventTopic,
		Event:           *event,
		EventABIJSON:    eventABI,
		Limit:           cfg.Source.PageLimit,
	}

	// Initialize syncer
	ownershipSyncer := syncer.NewSyncer(syncer.Config{
		Filter:      filter,
		PageBackoff: cfg.Source.PageBackoff,
		LeaseKey:    cfg.Lease.Key,
		LeaseTTL:    cfg.Lease.TTL,
	}, dataStore, src, locker, publisher, clock)

	if *once {
		result, err := ownershipSyncer.Run(ctx)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("run_id", result.RunID))
			logger.Flush(2 * time.Second)
			os.Exit(1)
		}
		logger.InfoCtx(ctx, "Sync run completed",
			zap.String("status", string(result.Status)),
			zap.Int("applied", result.Applied),
			zap.Uint64("watermark", result.Watermark),
		)
		return
	}

	// Initialize scheduler
	syncScheduler := scheduler.NewSyncScheduler(scheduler.Config{
		Interval:   cfg.Schedule.Interval,
		RunOnStart: cfg.Schedule.RunOnStart,
	}, ownershipSyncer, clock)

	logger.InfoCtx(ctx, "Initialized sync scheduler",
		zap.Duration("interval", cfg.Schedule.Interval),
		zap.Bool("run_on_start", cfg.Schedule.RunOnStart),
	)

	// Start the scheduler in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := syncScheduler.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Let an in-progress run finish before canceling it
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := syncScheduler.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}
	cancel()

	logger.InfoCtx(shutdownCtx, "Ownership Syncer stopped")
}

// newEventSource builds the configured event source and returns a cleanup function
func newEventSource(ctx context.Context, cfg *config.OwnershipSyncerConfig, clock adapter.Clock) (source.EventSource, func()) {
	switch cfg.Source.Provider {
	case config.SourceProviderMoralis:
		httpClient := adapter.NewHTTPClient(cfg.Moralis.Timeout, adapter.DefaultRetryConfig)
		logger.InfoCtx(ctx, "Using Moralis event source", zap.String("chain", cfg.Moralis.Chain))
		return moralis.NewEventSource(httpClient, moralis.Config{
			APIURL: cfg.Moralis.APIURL,
			APIKey: cfg.Moralis.APIKey,
			Chain:  cfg.Moralis.Chain,
		}), func() {}
	default:
		ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to Ethereum RPC", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to Ethereum RPC", zap.String("chain_id", string(cfg.Ethereum.ChainID)))

		blockProvider := block.NewBlockProvider(ethereum.NewEthereumBlockFetcher(ethClient), block.Config{
			TTL:         cfg.Ethereum.BlockHeadTTL,
			StaleWindow: cfg.Ethereum.BlockHeadStaleWindow,
		}, clock)

		return ethereum.NewEventSource(ethClient, block.NewResolver(blockProvider, 0), ethereum.Config{
			BlockStep: cfg.Source.BlockStep,
		}), ethClient.Close
	}
}

// newLocker returns the Redis lease when configured, the in-process lease otherwise
func newLocker(ctx context.Context, cfg *config.OwnershipSyncerConfig, clock adapter.Clock) (lease.Locker, func()) {
	if cfg.Redis.Addr == "" {
		logger.InfoCtx(ctx, "Redis not configured, using in-process run lease")
		return lease.NewLocalLocker(clock), func() {}
	}

	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Ping(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
	}
	logger.InfoCtx(ctx, "Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	return lease.NewRedisLocker(redisClient), func() {
		if err := redisClient.Close(); err != nil {
			logger.WarnCtx(ctx, "Failed to close Redis client", zap.Error(err))
		}
	}
}

// newPublisher returns the JetStream publisher when configured, a no-op publisher otherwise
func newPublisher(ctx context.Context, cfg *config.OwnershipSyncerConfig) messaging.Publisher {
	if cfg.NATS.URL == "" {
		return messaging.NewNoopPublisher()
	}

	publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), adapter.NewJSON())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))

	return publisher
}

// seedWatermark writes the bootstrap watermark unless one already exists
func seedWatermark(ctx context.Context, st store.WatermarkStore, blockNumber uint64) {
	created, err := st.InitWatermark(ctx, blockNumber)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to seed watermark", zap.Error(err))
	}
	if !created {
		current, err := st.GetWatermark(ctx)
		if err != nil && !errors.Is(err, domain.ErrWatermarkNotInitialized) {
			logger.FatalCtx(ctx, "Failed to read watermark", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Watermark already exists, leaving it unchanged", zap.Uint64("watermark", current))
		return
	}
	logger.InfoCtx(ctx, "Seeded watermark", zap.Uint64("watermark", blockNumber))
}

// printHistory writes the most recent run records to stdout
func printHistory(ctx context.Context, st store.RunStore, limit int) {
	runs, err := st.GetRecentSyncRuns(ctx, limit)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load sync runs", zap.Error(err))
	}

	for _, run := range runs {
		line := fmt.Sprintf("%s  %-9s  %-15s  fetched=%d applied=%d",
			run.FinishedAt.Format(time.RFC3339), run.Status, run.Phase, run.FetchedEvents, run.AppliedEvents)
		if run.FromBlock != nil && run.ToBlock != nil {
			line += fmt.Sprintf(" range=%d-%d", *run.FromBlock, *run.ToBlock)
		}
		if run.Watermark != nil {
			line += fmt.Sprintf(" watermark=%d", *run.Watermark)
		}
		if run.Error != nil {
			line += fmt.Sprintf(" error=%q", *run.Error)
		}
		fmt.Println(line)
	}
}
