// Package config loads service configuration from YAML files with
// environment-variable overrides, layered through koanf.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Database *DatabaseConfig `json:"database" yaml:"database"`

	// Tracking configuration for the item-tracking core
	Tracking *TrackingConfig `json:"tracking" yaml:"tracking"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// DatabaseConfig selects and configures the backing store. SQLite is the
// default; PostgreSQL is the documented migration target.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `json:"driver" yaml:"driver"`

	// SQLitePath is the database file path for the sqlite driver.
	// ":memory:" yields an ephemeral in-memory database.
	SQLitePath string `json:"sqlitePath" yaml:"sqlitePath"`

	// Postgres connection settings, used when Driver is "postgres".
	Postgres PostgresConfig `json:"postgres" yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	UserName string `json:"userName" yaml:"userName"`
	Password string `json:"password" yaml:"password"`
	DBName   string `json:"dbName" yaml:"dbName"`
	SSLMode  string `json:"sslMode" yaml:"sslMode"`
}

// TrackingConfig holds the tunable constants of the item-tracking core.
// The window and tolerance values are deliberately configuration rather than
// code constants; the product has no documented rationale for the defaults.
type TrackingConfig struct {
	// DuplicateWindow is the trailing window within which a same-name active
	// item counts as a duplicate capture.
	DuplicateWindow time.Duration `json:"duplicateWindow" yaml:"duplicateWindow"`

	// RecurrenceMinPurchases is the purchase count at which recurrence
	// analysis starts running.
	RecurrenceMinPurchases int `json:"recurrenceMinPurchases" yaml:"recurrenceMinPurchases"`

	// RecurrenceTolerance is the maximum deviation of a purchase gap from
	// the mean interval for the pattern to still count as regular.
	RecurrenceTolerance time.Duration `json:"recurrenceTolerance" yaml:"recurrenceTolerance"`

	// FreshnessAgingAfter is the age at which an active item stops being
	// labeled fresh.
	FreshnessAgingAfter time.Duration `json:"freshnessAgingAfter" yaml:"freshnessAgingAfter"`

	// FreshnessStaleAfter is the age beyond which an active item is labeled
	// stale.
	FreshnessStaleAfter time.Duration `json:"freshnessStaleAfter" yaml:"freshnessStaleAfter"`
}

// Tracking defaults, applied when the YAML omits them.
const (
	defaultDuplicateWindow        = 24 * time.Hour
	defaultRecurrenceMinPurchases = 3
	defaultRecurrenceTolerance    = 48 * time.Hour
	defaultFreshnessAgingAfter    = 7 * 24 * time.Hour
	defaultFreshnessStaleAfter    = 30 * 24 * time.Hour
)

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: DATABASE_SQLITEPATH -> database.sqlitePath (not database.sqlitepath)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	applyTrackingDefaults(cfg)

	return cfg, nil
}

// applyTrackingDefaults fills in tracking knobs the YAML left unset.
func applyTrackingDefaults(cfg *Config) {
	if cfg.Tracking == nil {
		cfg.Tracking = &TrackingConfig{}
	}
	if cfg.Tracking.DuplicateWindow <= 0 {
		cfg.Tracking.DuplicateWindow = defaultDuplicateWindow
	}
	if cfg.Tracking.RecurrenceMinPurchases <= 0 {
		cfg.Tracking.RecurrenceMinPurchases = defaultRecurrenceMinPurchases
	}
	if cfg.Tracking.RecurrenceTolerance <= 0 {
		cfg.Tracking.RecurrenceTolerance = defaultRecurrenceTolerance
	}
	if cfg.Tracking.FreshnessAgingAfter <= 0 {
		cfg.Tracking.FreshnessAgingAfter = defaultFreshnessAgingAfter
	}
	if cfg.Tracking.FreshnessStaleAfter <= 0 {
		cfg.Tracking.FreshnessStaleAfter = defaultFreshnessStaleAfter
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
