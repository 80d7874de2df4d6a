package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tomlrepo "github.com/bnema/scantally/internal/adapters/repo/toml"
	"github.com/spf13/viper"
)

const (
	configName     = "config"
	configType     = "toml"
	envPrefix      = "TALLY"
	symbologiesKey = "scan.symbologies"
	serveAddrKey   = "serve.addr"
	logLevelKey    = "log.level"
	logModeKey     = "log.mode"

	defaultServeAddr = "127.0.0.1:8765"
)

// loadConfig reads ~/.scantally/config.toml when present; TALLY_* environment
// variables override file values (TALLY_SESSION_PATH, TALLY_LOG_LEVEL, ...).
func loadConfig() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, tomlrepo.ConfigDir))
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(serveAddrKey, defaultServeAddr)
	cfg.SetDefault(logLevelKey, "warn")
	cfg.SetDefault(logModeKey, "development")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

// configList reads a list value that may come from a TOML array or from a
// comma separated environment variable.
func configList(cfg *viper.Viper, key string) []string {
	var values []string
	for _, raw := range cfg.GetStringSlice(key) {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}
	}

	return values
}
