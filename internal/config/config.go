package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// SchedulerConfig contains the tuning knobs for study-session scheduling.
// These feed scheduler.Params so thresholds are injected rather than
// hardcoded in the selection logic.
type SchedulerConfig struct {
	DefaultLimit       int     `mapstructure:"default_limit"        validate:"required,gt=0"`
	MaxLimit           int     `mapstructure:"max_limit"            validate:"required,gt=0"`
	DefaultPriority    int     `mapstructure:"default_priority"     validate:"required,gte=1,lte=10"`
	DueThresholdRatio  float64 `mapstructure:"due_threshold_ratio"  validate:"required,gt=0,lte=1"`
	WeakMasteryCeiling float64 `mapstructure:"weak_mastery_ceiling" validate:"required,gt=0,lte=1"`
	MinExposures       int     `mapstructure:"min_exposures"        validate:"required,gte=1"`
	MasteryBoost       float64 `mapstructure:"mastery_boost"        validate:"required,gt=0"`
}
