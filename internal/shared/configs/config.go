package configs

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Analytics AnalyticsConfig `mapstructure:"analytics" validate:"required"`
	GeoIP     GeoIPConfig     `mapstructure:"geoip"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// DatabaseConfig holds Postgres connection configuration.
type DatabaseConfig struct {
	DSN             string `mapstructure:"dsn" validate:"required"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" validate:"required,min=1"` // minutes
}

// AuthConfig holds bearer-token verification configuration for the analytics surface.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=16"`
}

// AnalyticsConfig holds report defaults.
type AnalyticsConfig struct {
	DefaultLanguage string `mapstructure:"default_language" validate:"required,len=2"`
	DefaultTop      int    `mapstructure:"default_top" validate:"required,min=1,max=100"`
}

// GeoIPConfig holds the optional MaxMind database location. When the path is
// empty, country/city enrichment is disabled.
type GeoIPConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}
