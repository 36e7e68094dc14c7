// Package config provides YAML-based configuration loading for the
// obras CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Supported CSV encodings.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// Config is the top-level configuration, loaded from obras.yaml.
type Config struct {
	Store StoreConfig `yaml:"store"`
	CSV   CSVConfig   `yaml:"csv"`
}

// StoreConfig selects and parameterizes the persistent store.
type StoreConfig struct {
	Driver string      `yaml:"driver"`
	Path   string      `yaml:"path"`
	MySQL  MySQLConfig `yaml:"mysql"`
}

// MySQLConfig holds connection settings for the optional MySQL driver.
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Database string `yaml:"database"`
}

// CSVConfig describes the source dataset.
type CSVConfig struct {
	Path      string `yaml:"path"`
	Delimiter string `yaml:"delimiter"`
	Encoding  string `yaml:"encoding"`
}

// Default returns the configuration used when no config file exists:
// a local SQLite store and the published obras-urbanas dataset layout.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file from path and returns a validated
// Config. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Store.Driver == "" {
		c.Store.Driver = DriverSQLite
	}
	if c.Store.Path == "" {
		c.Store.Path = "obras_urbanas.db"
	}
	if c.Store.MySQL.Host == "" {
		c.Store.MySQL.Host = "127.0.0.1"
	}
	if c.Store.MySQL.Port == 0 {
		c.Store.MySQL.Port = 3306
	}
	if c.Store.MySQL.User == "" {
		c.Store.MySQL.User = "root"
	}
	if c.Store.MySQL.Database == "" {
		c.Store.MySQL.Database = "obras_urbanas"
	}
	if c.CSV.Path == "" {
		c.CSV.Path = "observatorio-de-obras-urbanas.csv"
	}
	if c.CSV.Delimiter == "" {
		c.CSV.Delimiter = ";"
	}
	if c.CSV.Encoding == "" {
		c.CSV.Encoding = EncodingUTF8
	}
}

// validate checks that all fields hold supported values.
func (c *Config) validate() error {
	var errs []string
	switch c.Store.Driver {
	case DriverSQLite, DriverMySQL:
	default:
		errs = append(errs, fmt.Sprintf("store.driver %q is not supported (sqlite, mysql)", c.Store.Driver))
	}
	if len([]rune(c.CSV.Delimiter)) != 1 {
		errs = append(errs, fmt.Sprintf("csv.delimiter %q must be a single character", c.CSV.Delimiter))
	}
	switch c.CSV.Encoding {
	case EncodingUTF8, EncodingLatin1:
	default:
		errs = append(errs, fmt.Sprintf("csv.encoding %q is not supported (utf-8, latin-1)", c.CSV.Encoding))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Delimitador returns the CSV delimiter as a rune.
func (c *Config) Delimitador() rune {
	return []rune(c.CSV.Delimiter)[0]
}
