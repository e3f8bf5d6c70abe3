package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idlespace/pois-go/pkg/pois"
	"github.com/idlespace/pois-go/pkg/pois/logging"
)

const envPrefix = "POIS"

// Config is the CLI configuration. Values come from flags, then POIS_*
// environment variables, then the optional config file.
type Config struct {
	ConfigFile     string `mapstructure:"config"`
	Library        string `mapstructure:"library"`
	LogLevel       string `mapstructure:"log-level"`
	KeyBits        int    `mapstructure:"key-bits"`
	KeyN           string `mapstructure:"key-n"`
	KeyG           string `mapstructure:"key-g"`
	K              int64  `mapstructure:"k"`
	N              int64  `mapstructure:"n"`
	D              int64  `mapstructure:"d"`
	ProverID       string `mapstructure:"prover-id"`
	ProverKey      string `mapstructure:"prover-key"`
	GeneratedCount int64  `mapstructure:"generated-count"`
}

func defaultConfig() *Config {
	return &Config{
		Library:        pois.DefaultLibraryPath,
		LogLevel:       "info",
		KeyBits:        pois.DefaultKeyBits,
		K:              7,
		N:              1024,
		D:              64,
		GeneratedCount: -1,
	}
}

func setFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Path to a configuration file (toml, yaml or json)")
	flags.StringVar(&cfg.Library, "library", cfg.Library, "Path to the engine shared library")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	flags.IntVar(&cfg.KeyBits, "key-bits", cfg.KeyBits, "RSA modulus size when no key is given")
	flags.StringVar(&cfg.KeyN, "key-n", cfg.KeyN, "RSA modulus n as a decimal string")
	flags.StringVar(&cfg.KeyG, "key-g", cfg.KeyG, "Accumulator generator g as a decimal string")
	flags.Int64Var(&cfg.K, "k", cfg.K, "PoIS parameter k")
	flags.Int64Var(&cfg.N, "n", cfg.N, "PoIS parameter n")
	flags.Int64Var(&cfg.D, "d", cfg.D, "PoIS parameter d")

	flags.StringVar(&cfg.ProverID, "prover-id", cfg.ProverID, "Prover identity; a fresh secp256k1 key is used when empty")
	flags.StringVar(&cfg.ProverKey, "prover-key", cfg.ProverKey, "Hex secp256k1 public key to derive the prover identity from")
	flags.Int64Var(&cfg.GeneratedCount, "generated-count", cfg.GeneratedCount, "Number of generated files; negative asks the engine")
}

// loadConfig merges the config file, environment and flags into a Config.
func loadConfig(flags *pflag.FlagSet) (*Config, error) {
	vip := viper.New()
	vip.SetEnvPrefix(envPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	if err := vip.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if file := vip.GetString("config"); file != "" {
		vip.SetConfigFile(file)
		if err := vip.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := defaultConfig()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) logger() *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logging.ParseLevel(c.LogLevel)})
	return slog.New(h)
}

// commonParam builds the engine parameters, generating a key when none is
// configured.
func (c *Config) commonParam() (pois.CommonParam, error) {
	switch {
	case c.KeyN != "" && c.KeyG != "":
		return pois.NewCommonParam(c.KeyN, c.KeyG, c.K, c.N, c.D)
	case c.KeyN != "" || c.KeyG != "":
		return pois.CommonParam{}, fmt.Errorf("%w: key-n and key-g must be given together", pois.ErrInvalidParameter)
	default:
		return pois.NewRandomCommonParam(c.KeyBits, c.K, c.N, c.D)
	}
}

// proverID returns the configured identity. Without one it is derived from
// the configured public key, or from a fresh key when none is given.
func (c *Config) proverID() (pois.ProverID, error) {
	switch {
	case c.ProverID != "":
		return pois.ProverID(c.ProverID), nil
	case c.ProverKey != "":
		return pois.ParseProverKey(c.ProverKey)
	}
	priv, err := pois.NewProverKey()
	if err != nil {
		return "", err
	}
	return pois.ProverIDFromPublicKey(priv.PubKey())
}

func (c *Config) open() (*pois.Library, error) {
	return pois.Open(pois.Config{LibraryPath: c.Library, Logger: c.logger()})
}

// logParams records the parameters of a run without the key components.
func (c *Config) logParams(ctx context.Context, p pois.CommonParam) {
	bits := p.KeyN.BitLen()
	logging.New(c.logger()).Info(ctx, "parameters",
		logging.Redacted("key_n"),
		logging.Redacted("key_g"),
		"key_bits", bits,
		"k", p.K, "n", p.N, "d", p.D,
	)
}
