package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/tallerhq/facturas/internal/types"
)

type Configuration struct {
	Deployment   DeploymentConfig   `validate:"required"`
	Server       ServerConfig       `validate:"required"`
	Logging      LoggingConfig      `validate:"required"`
	Postgres     PostgresConfig     `validate:"required"`
	Coordination CoordinationConfig `validate:"required"`
	Numbering    NumberingConfig    `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// CoordinationConfig tunes the collaborative editing signals: how long a
// user stays in the active roster after their last heartbeat, how long an
// editing lock or draft announcement survives without refresh, and how
// often the housekeeper sweeps stale rows.
type CoordinationConfig struct {
	ActiveWindow  time.Duration `mapstructure:"active_window" validate:"required"`
	LockTTL       time.Duration `mapstructure:"lock_ttl" validate:"required"`
	DraftTTL      time.Duration `mapstructure:"draft_ttl" validate:"required"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" validate:"required"`
}

// NumberingConfig controls document number allocation. StartValue is the
// seed for a fresh counter, so the first issued number is StartValue+1.
type NumberingConfig struct {
	InvoicePrefix string `mapstructure:"invoice_prefix" validate:"required"`
	StartValue    int64  `mapstructure:"start_value" validate:"gte=0"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/facturas")

	v.SetEnvPrefix("FACTURAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeAPI))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("coordination.active_window", "25s")
	v.SetDefault("coordination.lock_ttl", "30s")
	v.SetDefault("coordination.draft_ttl", "30s")
	v.SetDefault("coordination.sweep_interval", "15s")
	v.SetDefault("numbering.invoice_prefix", "F")
	v.SetDefault("numbering.start_value", 9999)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
		Coordination: CoordinationConfig{
			ActiveWindow:  25 * time.Second,
			LockTTL:       30 * time.Second,
			DraftTTL:      30 * time.Second,
			SweepInterval: 15 * time.Second,
		},
		Numbering: NumberingConfig{
			InvoicePrefix: "F",
			StartValue:    9999,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
