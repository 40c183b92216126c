package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

const (
	maxWalkDepth = 25
)

// Config is the sqlkit configuration from sqlkit.yaml.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Generate GenerateConfig `mapstructure:"generate"`
	Output   OutputConfig   `mapstructure:"output"`
}

// DatabaseConfig holds MySQL connection settings. DSN wins over the discrete fields.
type DatabaseConfig struct {
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// GenerateConfig holds model generation settings.
type GenerateConfig struct {
	Package string `mapstructure:"package"`
	Output  string `mapstructure:"output"`
}

// OutputConfig selects how schema descriptions are printed.
type OutputConfig struct {
	Format string `mapstructure:"format"` // yaml | json | docs
}

// LoadConfig discovers and loads configuration with precedence
// flags > env > config file > defaults.
//
// Returns the config and the path of the file it came from ("" if none).
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("SQLKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")

	v.SetDefault("generate.package", "models")
	v.SetDefault("generate.output", "")

	v.SetDefault("output.format", "yaml")
}

// findConfigFile validates an explicit path, or walks up from cwd looking for
// sqlkit.yaml / sqlkit.yml, stopping at a .git entry or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range []string{"sqlkit.yaml", "sqlkit.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// DSN returns a go-sql-driver/mysql connection string.
func (c *Config) DSN() (string, error) {
	db := c.Database
	if db.DSN != "" {
		if _, err := mysql.ParseDSN(db.DSN); err != nil {
			return "", fmt.Errorf("database.dsn: %w", err)
		}
		return db.DSN, nil
	}

	if db.Host == "" {
		return "", fmt.Errorf("database.host is required when database.dsn is not set")
	}
	if db.Name == "" {
		return "", fmt.Errorf("database.name is required when database.dsn is not set")
	}
	if db.User == "" {
		return "", fmt.Errorf("database.user is required when database.dsn is not set")
	}

	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = db.Host + ":" + strconv.Itoa(db.Port)
	mc.DBName = db.Name
	mc.User = db.User
	mc.Passwd = db.Password
	return mc.FormatDSN(), nil
}
