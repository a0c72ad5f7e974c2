package store

import "github.com/kelseyhightower/envconfig"

// Config holds configuration for the Store.
type Config struct {
	// Table is the name of the shared records table.
	Table string `envconfig:"TABLE_NAME" required:"true"`

	// PrimaryKey is the attribute name of the table's partition key.
	// Default: "id"
	PrimaryKey string `envconfig:"PRIMARY_KEY" default:"id"`

	// Index is the GSI keyed on (entity, createdAt).
	// Default: "byEntityCreatedAt"
	Index string `envconfig:"INDEX_NAME" default:"byEntityCreatedAt"`
}

// LoadConfig reads the store configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.validate()
	return cfg, nil
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.PrimaryKey == "" {
		c.PrimaryKey = "id"
	}
	if c.Index == "" {
		c.Index = "byEntityCreatedAt"
	}
}
