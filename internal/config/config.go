package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/fishery-booking/internal/domain"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
// Например: FISHERY_DATABASE_HOST, FISHERY_BOOKING_COOLDOWN, FISHERY_SERVER_HTTP_PORT.
// Теги envconfig не используются: с ними envconfig читает и переменную без префикса (PATH, USER)
const EnvPrefix = "FISHERY"

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrEnvOverride   = errors.New("config: failed to apply environment overrides")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Tracing   TracingConfig   `toml:"tracing"`
	Booking   BookingConfig   `toml:"booking"`
	Lakes     []LakeConfig    `toml:"lakes" ignored:"true"`
	Events    EventsConfig    `toml:"events"`
	RateLimit RateLimitConfig `toml:"rate_limit" split_words:"true"`
	Sweeper   SweeperConfig   `toml:"sweeper"`
}

// ServerConfig таймауты задаются в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

type TracingConfig struct {
	Enabled     bool    `toml:"enabled"`
	Endpoint    string  `toml:"endpoint"`
	Insecure    bool    `toml:"insecure"`
	SampleRatio float64 `toml:"sample_ratio" split_words:"true"`
}

type BookingConfig struct {
	// Cooldown окно между созданием бронирований одного участника
	Cooldown time.Duration `toml:"cooldown"`
	// AdvanceBookingDays насколько дней вперёд можно бронировать, 0 - без ограничения
	AdvanceBookingDays int `toml:"advance_booking_days" split_words:"true"`
	MaxNotesLength     int `toml:"max_notes_length" split_words:"true"`
}

type LakeConfig struct {
	ID          string   `toml:"id"`
	Name        string   `toml:"name"`
	Capacity    int      `toml:"capacity"`
	Description string   `toml:"description"`
	LegacyIDs   []string `toml:"legacy_ids"`
}

type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// TrustedProxies IP или CIDR прокси, чей X-Forwarded-For принимается за адрес клиента
type RateLimitConfig struct {
	Enabled           bool     `toml:"enabled"`
	RequestsPerSecond float64  `toml:"requests_per_second" split_words:"true"`
	Burst             int      `toml:"burst"`
	TrustedProxies    []string `toml:"trusted_proxies" split_words:"true"`
}

type SweeperConfig struct {
	Enabled  bool          `toml:"enabled"`
	Interval time.Duration `toml:"interval"`
}

// DefaultLakes озёра, если секция [[lakes]] не задана
func DefaultLakes() []LakeConfig {
	return []LakeConfig{
		{
			ID:          "bignor-main",
			Name:        "Bignor Main Lake",
			Capacity:    3,
			Description: "Main specimen carp lake",
			LegacyIDs:   []string{"bignor"},
		},
		{
			ID:          "wood-pool",
			Name:        "Wood Pool",
			Capacity:    2,
			Description: "Secluded woodland pool",
			LegacyIDs:   []string{"wood"},
		},
	}
}

// Load читает .env (если есть), TOML-файл и переменные окружения с префиксом FISHERY_
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "fishery-booking"
	}

	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = "localhost:4318"
	}
	if c.Tracing.SampleRatio == 0 {
		c.Tracing.SampleRatio = 1
	}

	if c.Booking.Cooldown == 0 {
		c.Booking.Cooldown = 12 * time.Hour
	}
	if c.Booking.MaxNotesLength == 0 {
		c.Booking.MaxNotesLength = 500
	}

	if len(c.Lakes) == 0 {
		c.Lakes = DefaultLakes()
	}

	if c.Events.Exchange == "" {
		c.Events.Exchange = "fishery.bookings"
	}

	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}

	if c.Sweeper.Interval == 0 {
		c.Sweeper.Interval = 60 * time.Second
	}
}

// Validate проверяет значения после применения дефолтов
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d out of range", c.Server.HTTPPort))
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database.host and database.dbname are required for postgres driver")
		}
	case DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("database.driver %q is not supported", c.Database.Driver))
	}

	if c.Booking.Cooldown < 0 {
		problems = append(problems, "booking.cooldown must not be negative")
	}
	if c.Booking.AdvanceBookingDays < 0 {
		problems = append(problems, "booking.advance_booking_days must not be negative")
	}
	if c.Booking.MaxNotesLength < 0 {
		problems = append(problems, "booking.max_notes_length must not be negative")
	}

	seen := make(map[string]string)
	for _, lake := range c.Lakes {
		if lake.ID == "" {
			problems = append(problems, "lakes: id is required")
			continue
		}
		if lake.Capacity < 1 {
			problems = append(problems, fmt.Sprintf("lakes: %s capacity must be >= 1", lake.ID))
		}
		for _, key := range append([]string{lake.ID}, lake.LegacyIDs...) {
			if owner, ok := seen[key]; ok {
				problems = append(problems, fmt.Sprintf("lakes: id %q used by %s and %s", key, owner, lake.ID))
				continue
			}
			seen[key] = lake.ID
		}
	}

	if c.Events.Enabled && c.Events.URL == "" {
		problems = append(problems, "events.url is required when events are enabled")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1) {
		problems = append(problems, "rate_limit: requests_per_second and burst must be positive")
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !isIPOrCIDR(proxy) {
			problems = append(problems, fmt.Sprintf("rate_limit: trusted proxy %q is not an IP or CIDR", proxy))
		}
	}

	if c.Sweeper.Enabled && c.Sweeper.Interval <= 0 {
		problems = append(problems, "sweeper.interval must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func isIPOrCIDR(s string) bool {
	s = strings.TrimSpace(s)
	if _, _, err := net.ParseCIDR(s); err == nil {
		return true
	}
	return net.ParseIP(s) != nil
}

// DomainLakes озёра для реестра в порядке конфигурации
func (c *Config) DomainLakes() []domain.Lake {
	lakes := make([]domain.Lake, 0, len(c.Lakes))
	for _, l := range c.Lakes {
		lakes = append(lakes, domain.Lake{
			ID:          l.ID,
			Name:        l.Name,
			Capacity:    l.Capacity,
			Description: l.Description,
		})
	}
	return lakes
}

// LakeAliases legacy ID -> канонический ID
func (c *Config) LakeAliases() map[string]string {
	aliases := make(map[string]string)
	for _, l := range c.Lakes {
		for _, legacy := range l.LegacyIDs {
			aliases[legacy] = l.ID
		}
	}
	return aliases
}
