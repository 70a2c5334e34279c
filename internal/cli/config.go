package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/huntbook/internal/logging"
	"github.com/mesh-intelligence/huntbook/internal/paths"
	"github.com/mesh-intelligence/huntbook/internal/refdata"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "HUNTBOOK"

	keyDataDir       = "data_dir"
	keySpeciesURL    = "species_csv_url"
	keyFetchTimeout  = "fetch_timeout"
	keyLogFile       = "log.file"
	keyLogLevel      = "log.level"
	keyLogMaxSize    = "log.max_size_mb"
	keyLogMaxBackups = "log.max_backups"
)

// configFile is the structure written to config.yaml on first run.
type configFile struct {
	DataDir       string     `yaml:"data_dir,omitempty"`
	SpeciesCSVURL string     `yaml:"species_csv_url"`
	FetchTimeout  string     `yaml:"fetch_timeout"`
	Log           logSection `yaml:"log"`
}

type logSection struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

func defaultConfig() configFile {
	return configFile{
		FetchTimeout: refdata.DefaultTimeout.String(),
		Log: logSection{
			File:       logging.DefaultFileName,
			Level:      "info",
			MaxSizeMB:  logging.DefaultMaxSizeMB,
			MaxBackups: logging.DefaultMaxBackups,
		},
	}
}

// loadConfig reads config.yaml from configDir with Viper, creating the
// directory and a default file on first run. HUNTBOOK_* environment
// variables override file values (log.level is HUNTBOOK_LOG_LEVEL).
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := paths.Ensure(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := writeConfigIfMissing(paths.ConfigFile(configDir)); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	def := defaultConfig()
	v := viper.New()
	v.SetDefault(keySpeciesURL, def.SpeciesCSVURL)
	v.SetDefault(keyFetchTimeout, def.FetchTimeout)
	v.SetDefault(keyLogFile, def.Log.File)
	v.SetDefault(keyLogLevel, def.Log.Level)
	v.SetDefault(keyLogMaxSize, def.Log.MaxSizeMB)
	v.SetDefault(keyLogMaxBackups, def.Log.MaxBackups)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values. An existing
// file is left alone.
func writeConfigIfMissing(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfig()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := "# huntbook configuration\n# data_dir, species_csv_url and log.* may also be set via HUNTBOOK_* variables.\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}
