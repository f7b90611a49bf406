package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SlowBrain97/E-Commerce/config"
	"github.com/SlowBrain97/E-Commerce/internal/adapters/localstate"
	redisadapter "github.com/SlowBrain97/E-Commerce/internal/adapters/redis"
	"github.com/SlowBrain97/E-Commerce/internal/ports"
)

// StorageOptions selects and configures the persisted-state backend.
type StorageOptions struct {
	Storage config.StorageConfig
	Redis   config.RedisConfig
	Logger  *slog.Logger
}

// StateBackend is a StateStore plus whatever must be closed with it.
type StateBackend struct {
	Store ports.StateStore
	close func() error
}

// Close releases connections held by the backend.
func (b StateBackend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// NewStateStore builds the StateStore for the configured driver.
func NewStateStore(ctx context.Context, opts StorageOptions) (StateBackend, error) {
	switch opts.Storage.Driver {
	case config.StorageDriverMemory:
		return StateBackend{Store: localstate.NewMemoryStore()}, nil
	case config.StorageDriverRedis:
		client, err := ConnectRedis(ctx, opts.Redis, opts.Logger)
		if err != nil {
			return StateBackend{}, err
		}
		store := redisadapter.NewStateStore(client, redisadapter.StateStoreOptions{Prefix: opts.Storage.KeyPrefix})
		return StateBackend{Store: store, close: client.Close}, nil
	case config.StorageDriverFile, "":
		store, err := localstate.NewFileStore(opts.Storage.Dir)
		if err != nil {
			return StateBackend{}, err
		}
		return StateBackend{Store: store}, nil
	default:
		return StateBackend{}, fmt.Errorf("unsupported storage driver %q", opts.Storage.Driver)
	}
}

// ConnectRedis establishes a connection to Redis.
//
//nolint:ireturn // returning redis.UniversalClient lets us pick single or sentinel clients at runtime.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	var (
		client   redis.UniversalClient
		addrDesc string
		err      error
	)

	if cfg.UseSentinel {
		client, addrDesc, err = newSentinelClient(cfg)
	} else {
		client, addrDesc, err = newDirectClient(cfg)
	}
	if err != nil {
		return nil, err
	}

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if pingErr := client.Ping(pingCtx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if logger != nil {
		logger.Info("redis connected", "addr", redactAddr(addrDesc))
	}

	return client, nil
}

// redactAddr strips credentials from a connection description for logging.
func redactAddr(addrDesc string) string {
	if u, parseErr := url.Parse(addrDesc); parseErr == nil && u.User != nil {
		u.User = url.User("*")
		return u.Redacted()
	}
	if i := strings.LastIndex(addrDesc, "@"); i > -1 {
		return addrDesc[i+1:]
	}
	return addrDesc
}

//nolint:ireturn // returning redis.UniversalClient keeps client selection flexible.
func newSentinelClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	nodes := normalizeAddrs(cfg.SentinelNodes)
	if len(nodes) == 0 {
		return nil, "", errors.New("redis sentinel configuration requires at least one sentinel node")
	}

	opts := &redis.FailoverOptions{
		MasterName:       cfg.SentinelMasterName,
		SentinelAddrs:    nodes,
		Password:         cfg.Password,
		SentinelPassword: cfg.SentinelPassword,
		DB:               cfg.DB,
	}
	client := redis.NewFailoverClient(opts)
	return client, "sentinel:" + cfg.SentinelMasterName, nil
}

//nolint:ireturn // returning redis.UniversalClient keeps client selection flexible.
func newDirectClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, "", errors.New("redis direct configuration requires a URI")
	}

	if isRedisURL(uri) {
		opt, err := redis.ParseURL(uri)
		if err != nil {
			return nil, "", fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), opt.Addr, nil
	}

	opts := &redis.Options{
		Addr:     uri,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	return redis.NewClient(opts), uri, nil
}

func normalizeAddrs(raw []string) []string {
	result := make([]string, 0, len(raw))
	for _, addr := range raw {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func isRedisURL(value string) bool {
	return strings.HasPrefix(value, "redis://") || strings.HasPrefix(value, "rediss://")
}
