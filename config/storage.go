package config

import (
	"fmt"
	"strings"
)

// StorageDriver selects where the session and cart snapshots are persisted.
type StorageDriver string

const (
	// StorageDriverFile keeps one JSON file per key under a directory.
	StorageDriverFile StorageDriver = "file"
	// StorageDriverRedis keeps keys in Redis.
	StorageDriverRedis StorageDriver = "redis"
	// StorageDriverMemory keeps keys in process memory (nothing survives a restart).
	StorageDriverMemory StorageDriver = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageDriver.
func (d *StorageDriver) UnmarshalText(text []byte) error {
	v := StorageDriver(strings.ToLower(strings.TrimSpace(string(text))))
	switch v {
	case StorageDriverFile, StorageDriverRedis, StorageDriverMemory:
		*d = v
		return nil
	default:
		return fmt.Errorf("invalid StorageDriver: %q (valid options: file, redis, memory)", string(text))
	}
}

// StorageConfig controls persistence of client-side state across restarts.
type StorageConfig struct {
	Driver StorageDriver `env:"STORAGE_DRIVER" envDefault:"file"`

	// Dir is the directory used by the file driver.
	Dir string `env:"STORAGE_DIR" envDefault:".shoestore"`

	// KeyPrefix namespaces keys for the redis driver.
	KeyPrefix string `env:"STORAGE_KEY_PREFIX" envDefault:"shoestore:"`
}

// Sanitize applies guardrails to storage configuration values.
func (s *StorageConfig) Sanitize() {
	if s.Driver == "" {
		s.Driver = StorageDriverFile
	}
	s.Dir = strings.TrimSpace(s.Dir)
	if s.Dir == "" {
		s.Dir = ".shoestore"
	}
}

// RedisConfig contains Redis connection configuration for the redis storage driver.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
}
