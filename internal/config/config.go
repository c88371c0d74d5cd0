package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings shared by all reporting jobs. Values come from the
// environment; cmd loads a .env file first when one exists.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"cuny_curriculum"`

	// Directory scanned for the latest transfer-evaluation CSV export.
	DownloadsDir string `envconfig:"DOWNLOADS_DIR" default:"downloads"`
	// Directory the xlsx reports are written to.
	ReportsDir string `envconfig:"REPORTS_DIR" default:"reports"`

	// Worker counts for the per-rule jobs. Rules are independent, so the jobs
	// fan out freely; these bound the DB load.
	DescribeWorkers int `envconfig:"DESCRIBE_WORKERS" default:"8"`
	RouteWorkers    int `envconfig:"ROUTE_WORKERS" default:"8"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN renders the Postgres connection string for pgxpool.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
