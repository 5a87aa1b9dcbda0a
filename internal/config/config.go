package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"ROI_DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"ROI_DB_HOST" default:"localhost"`
	Port     string `envconfig:"ROI_DB_PORT" default:"5432"`
	Name     string `envconfig:"ROI_DB_NAME" default:"roi_planner"`
	User     string `envconfig:"ROI_DB_USER" default:"admin"`
	Password string `envconfig:"ROI_DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string   `envconfig:"ROI_PLANNER_ADDRESS" default:":3443"`
	MetricsAddress  string   `envconfig:"ROI_PLANNER_METRICS_ADDRESS" default:":8080"`
	LogLevel        string   `envconfig:"ROI_PLANNER_LOG_LEVEL" default:"info"`
	MigrationFolder string   `envconfig:"ROI_PLANNER_MIGRATIONS_FOLDER" default:""`
	CorsOrigins     []string `envconfig:"ROI_PLANNER_CORS_ORIGINS" default:"*"`
	PathPrefix      string   `envconfig:"ROI_PLANNER_PATH_PREFIX" default:""`
	Notify          notifyConfig
}

// notifyConfig selects where analysis request events are delivered.
type notifyConfig struct {
	Writer string `envconfig:"ROI_PLANNER_NOTIFY_WRITER" default:"stdout"`
	URL    string `envconfig:"ROI_PLANNER_NOTIFY_URL" default:""`
	Topic  string `envconfig:"ROI_PLANNER_NOTIFY_TOPIC" default:"roi-planner"`
}

const (
	NotifyWriterStdout = "stdout"
	NotifyWriterHTTP   = "http"
)

func New() (*Config, error) {
	if singleConfig == nil {
		cfg := new(Config)
		if err := envconfig.Process("", cfg); err != nil {
			return nil, err
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// NewDefault returns the defaults without reading the environment, backed by an
// in-memory sqlite database.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type: "sqlite",
			Name: "file::memory:?cache=shared",
		},
		Service: &svcConfig{
			Address:        ":3443",
			MetricsAddress: ":8080",
			LogLevel:       "info",
			CorsOrigins:    []string{"*"},
			Notify: notifyConfig{
				Writer: NotifyWriterStdout,
				Topic:  "roi-planner",
			},
		},
	}
}

func (c *Config) validate() error {
	switch c.Database.Type {
	case "pgsql", "sqlite":
	default:
		return fmt.Errorf("unsupported database type %q", c.Database.Type)
	}
	switch c.Service.Notify.Writer {
	case NotifyWriterStdout:
	case NotifyWriterHTTP:
		if c.Service.Notify.URL == "" {
			return fmt.Errorf("ROI_PLANNER_NOTIFY_URL is required with the %s notify writer", NotifyWriterHTTP)
		}
	default:
		return fmt.Errorf("unsupported notify writer %q", c.Service.Notify.Writer)
	}
	return nil
}
