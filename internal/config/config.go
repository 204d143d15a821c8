package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Inventory
	InventoryFiles  []string      // .yaml/.yml/.json/.csv inventory files, one or more sites each
	ReloadInterval  time.Duration // interval to reload inventory files (default: 1h)
	GCInterval      time.Duration // interval to run garbage collection (default: 24h)
	GCThreshold     time.Duration // disabled devices older than this are deleted (default: 720h)
	ClassifyWorkers int           // goroutines used for bulk classification (default: 4)
	DriftSamples    int           // example devices quoted per drift list (default: 5)

	// Redis (optional, empty address => memory only)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password when Redis is enabled
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Access restrictions
	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "10.0.0.0/8, 192.168.1.4")
	TrustProxy   bool     // true => trust X-Forwarded-For headers
	RateBurst    int      // /api/classify token bucket size per client IP
	RatePerMin   int      // /api/classify refill rate per client IP
}

// RedisEnabled reports whether a Redis mirror is configured.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("DEVCAT_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("DEVCAT_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("DEVCAT_LOG_LEVEL", "info"),
		PrettyLog: mustBool("DEVCAT_PRETTY_LOG", true),

		// Inventory
		InventoryFiles:  inventoryFiles(requireEnvSlice("DEVCAT_INVENTORY_FILES")),
		ReloadInterval:  mustDuration("DEVCAT_RELOAD_INTERVAL", time.Hour),
		GCInterval:      mustDuration("DEVCAT_GC_INTERVAL", 24*time.Hour),
		GCThreshold:     mustDuration("DEVCAT_GC_THRESHOLD", 30*24*time.Hour),
		ClassifyWorkers: getenvInt("DEVCAT_CLASSIFY_WORKERS", 4),
		DriftSamples:    getenvInt("DEVCAT_DRIFT_SAMPLES", 5),

		// Redis settings
		RedisAddr:             getenv("DEVCAT_REDIS_ADDR", ""),
		RedisUser:             getenv("DEVCAT_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("DEVCAT_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("DEVCAT_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("DEVCAT_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("DEVCAT_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("DEVCAT_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("DEVCAT_TRUST_PROXY", false),
		RateBurst:    getenvInt("DEVCAT_RATE_BURST", 30),
		RatePerMin:   getenvInt("DEVCAT_RATE_PER_MIN", 120),
	}

	if cfg.ClassifyWorkers < 1 {
		cfg.ClassifyWorkers = 1
	}
	if cfg.DriftSamples < 0 {
		cfg.DriftSamples = 0
	}

	// Validate Redis password configuration
	if cfg.RedisEnabled() && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: DEVCAT_REDIS_PASSWORD is required when DEVCAT_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvSlice(key string) []string {
	parts := splitAndTrim(requireEnv(key))
	if len(parts) == 0 {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is empty", key))
	}
	return parts
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

var inventoryExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
	".csv":  true,
}

// inventoryFiles panics on a file whose extension no loader understands, so a
// typo fails at startup instead of on the first reload.
func inventoryFiles(paths []string) []string {
	for _, p := range paths {
		if !inventoryExtensions[strings.ToLower(filepath.Ext(p))] {
			panic(fmt.Sprintf("❌ FATAL: unsupported inventory file %q (want .yaml, .yml, .json or .csv)", p))
		}
	}
	return paths
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
