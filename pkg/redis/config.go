package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // ConnectionURL is the URL of the database. It should be in the format "redis://:password@localhost:6379/0"
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`                      // RetryAttempts is the number of connection attempts before giving up.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`                     // RetryInterval is the delay between connection attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`                   // ConnectTimeout bounds the whole connection procedure.
	KeyPrefix      string        `env:"REDIS_BUNDLE_PREFIX" envDefault:"tolgee:bundle"`           // KeyPrefix namespaces cached bundles as "<prefix>:<lang>".
	BundleTTL      time.Duration `env:"REDIS_BUNDLE_TTL" envDefault:"24h"`                        // BundleTTL is how long a cached bundle stays valid. Zero keeps it forever.
}
