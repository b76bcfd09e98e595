// Package config loads the lsvm run configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/lsvm/translate"
)

var f = translate.From

var (
	ErrAddressMissing = errors.New(f("controller address missing"))
	ErrPortInvalid    = errors.New(f("controller port invalid"))
)

// ErrUnknownKeys lists configuration keys that were not recognized.
type ErrUnknownKeys []string

func (err ErrUnknownKeys) Error() string {
	return f("unknown configuration keys: %v", strings.Join(err, ", "))
}

// Duration is a time.Duration read from a string such as "2s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the configuration of a single run.
type Config struct {
	Address     string   `toml:"address"`      // Strip controller host.
	Port        int      `toml:"port"`         // Strip controller TCP port.
	DialTimeout Duration `toml:"dial-timeout"` // Connection timeout.
	Offline     bool     `toml:"offline"`      // Echo commands, never connect.
	Verbose     bool     `toml:"verbose"`      // Trace every instruction.
}

const (
	DEFAULT_ADDRESS      = "127.0.0.1"
	DEFAULT_PORT         = 5577
	DEFAULT_DIAL_TIMEOUT = 2 * time.Second
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Address:     DEFAULT_ADDRESS,
		Port:        DEFAULT_PORT,
		DialTimeout: Duration{DEFAULT_DIAL_TIMEOUT},
	}
}

// Load reads a TOML configuration file over the defaults.
func Load(path string) (cfg Config, err error) {
	cfg = Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		var keys ErrUnknownKeys
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		err = fmt.Errorf("%v: %w", path, keys)
		return
	}

	err = cfg.Validate()
	return
}

// Validate checks the configuration is usable.
func (cfg *Config) Validate() error {
	if cfg.Offline {
		return nil
	}
	if len(cfg.Address) == 0 {
		return ErrAddressMissing
	}
	if cfg.Port <= 0 || cfg.Port > 0xffff {
		return ErrPortInvalid
	}
	return nil
}
