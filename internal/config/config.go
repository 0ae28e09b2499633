/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config provides configuration types, defaults and loading for
// dxbook.
//
// Values are resolved by viper in the usual order: command-line flags,
// DXBOOK_* environment variables, the config file, then Defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dirpx.dev/rxmerr"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"dirpx.dev/dxbook/dxcore/model/field"
	"dirpx.dev/dxbook/internal/logger"
)

// Config keys, shared by flags, environment variables and the config file.
const (
	KeyDataFile    = "data_file"
	KeyLogLevel    = "log_level"
	KeyEmailRule   = "email_rule"
	KeyLockTimeout = "lock_timeout"
)

// EnvPrefix prefixes environment overrides, e.g. DXBOOK_DATA_FILE.
const EnvPrefix = "DXBOOK"

// DefaultFileName is looked up in the working directory when no config file
// is given explicitly.
const DefaultFileName = "dxbook.yaml"

// Config holds all configuration options for dxbook.
type Config struct {
	DataFile    string        `mapstructure:"data_file"`
	LogLevel    string        `mapstructure:"log_level"`
	EmailRule   string        `mapstructure:"email_rule"` // "legacy" (default) or "address"
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataFile:    filepath.Join("data", "addressbook.json"),
		LogLevel:    "warn",
		EmailRule:   field.LegacyEmailRule.Name,
		LockTimeout: 5 * time.Second,
	}
}

// Validate reports every invalid option.
func (c Config) Validate() error {
	col := rxmerr.NewCollector()
	if c.DataFile == "" {
		col.Append(errors.New("data_file must not be empty"))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		col.Append(err)
	}
	if _, err := field.EmailRuleByName(c.EmailRule); err != nil {
		col.Append(err)
	}
	if c.LockTimeout < 0 {
		col.Append(fmt.Errorf("lock_timeout must not be negative, got %s", c.LockTimeout))
	}
	return col.Err()
}

// Rule returns the configured email rule.
func (c Config) Rule() (field.EmailRule, error) {
	return field.EmailRuleByName(c.EmailRule)
}

// SetDefaults registers Defaults with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyDataFile, d.DataFile)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyEmailRule, d.EmailRule)
	v.SetDefault(KeyLockTimeout, d.LockTimeout)
}

// Load resolves the configuration through v. cfgFile, when set, must exist;
// otherwise DefaultFileName in the working directory is used if present.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("dxbook")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fileConfig is the on-disk layout written by WriteDefaultConfig.
type fileConfig struct {
	DataFile    string `yaml:"data_file"`
	LogLevel    string `yaml:"log_level"`
	EmailRule   string `yaml:"email_rule"`
	LockTimeout string `yaml:"lock_timeout"`
}

// WriteDefaultConfig writes Defaults to path as YAML. It refuses to
// overwrite an existing file.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	d := Defaults()
	data, err := yaml.Marshal(fileConfig{
		DataFile:    d.DataFile,
		LogLevel:    d.LogLevel,
		EmailRule:   d.EmailRule,
		LockTimeout: d.LockTimeout.String(),
	})
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // config is not secret
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
