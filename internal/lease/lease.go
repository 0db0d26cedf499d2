package lease

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-syncer/internal/adapter"
	"github.com/feral-file/ff-ownership-syncer/internal/domain"
	"github.com/feral-file/ff-ownership-syncer/internal/logger"
)

// Lease is a held lock record; it expires on its own after the TTL
//
//go:generate mockgen -source=lease.go -destination=../mocks/lease.go -package=mocks -mock_names=Lease=MockLease,Locker=MockLocker
type Lease interface {
	// Token identifies the holder
	Token() string
	// Release gives the lease back if it is still held by this holder
	Release(ctx context.Context) error
}

// Locker hands out exclusive, expiring leases
type Locker interface {
	// Acquire takes the lease for key or returns domain.ErrLeaseNotAcquired
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// releaseScript deletes the key only if it still holds the caller's token
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

type redisLocker struct {
	client adapter.RedisClient
}

// NewRedisLocker creates a locker backed by SET NX PX
func NewRedisLocker(client adapter.RedisClient) Locker {
	return &redisLocker{client: client}
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lease %s: %w", key, err)
	}
	if !ok {
		return nil, domain.ErrLeaseNotAcquired
	}

	logger.DebugCtx(ctx, "Acquired lease", zap.String("key", key), zap.Duration("ttl", ttl))

	return &redisLease{client: l.client, key: key, token: token}, nil
}

type redisLease struct {
	client adapter.RedisClient
	key    string
	token  string
}

func (l *redisLease) Token() string {
	return l.token
}

func (l *redisLease) Release(ctx context.Context) error {
	res, err := l.client.Eval(ctx, releaseScript, []string{l.key}, l.token)
	if err != nil {
		return fmt.Errorf("failed to release lease %s: %w", l.key, err)
	}

	if n, ok := res.(int64); ok && n == 0 {
		logger.WarnCtx(ctx, "Lease expired before release", zap.String("key", l.key))
	}

	return nil
}

type localLocker struct {
	clock adapter.Clock

	mu     sync.Mutex
	holder map[string]localHolder
}

type localHolder struct {
	token     string
	expiresAt time.Time
}

// NewLocalLocker creates an in-process locker for single-instance deployments
func NewLocalLocker(clock adapter.Clock) Locker {
	return &localLocker{
		clock:  clock,
		holder: make(map[string]localHolder),
	}
}

func (l *localLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.holder[key]; ok && now.Before(h.expiresAt) {
		return nil, domain.ErrLeaseNotAcquired
	}

	token := uuid.NewString()
	l.holder[key] = localHolder{token: token, expiresAt: now.Add(ttl)}

	return &localLease{locker: l, key: key, token: token}, nil
}

type localLease struct {
	locker *localLocker
	key    string
	token  string
}

func (l *localLease) Token() string {
	return l.token
}

func (l *localLease) Release(ctx context.Context) error {
	l.locker.mu.Lock()
	defer l.locker.mu.Unlock()

	if h, ok := l.locker.holder[l.key]; ok && h.token == l.token {
		delete(l.locker.holder, l.key)
	}

	return nil
}
