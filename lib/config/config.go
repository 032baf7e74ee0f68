/*package config holds harmio's configuration. Values come from, in order of
precedence, command line flags, HARMIO_* environment variables, an optional
config file, and the defaults in NewConfig.*/
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read into Config.
const EnvPrefix = "HARMIO"

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Log Log `mapstructure:"log"`
	// GhostZones is passed to every dump that is opened.
	GhostZones bool `mapstructure:"ghost_zones"`
	// Workers bounds the number of files read at once. <= 0 means one per
	// CPU.
	Workers int `mapstructure:"workers"`
	// Compress zstd-compresses dumps written by "convert".
	Compress bool `mapstructure:"compress"`
}

func NewConfig() *Config {
	return &Config{
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load reads cfgFile (if it isn't empty) and the environment into v and
// unmarshals the result into a new Config. Flags should already be bound to
// v.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading from config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := NewConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
