package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type APIConfig struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// yaml.v3 has no native duration support, so "30s"-style values are parsed
// by hand.
func (a *APIConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		BaseURL        string `yaml:"base_url"`
		RequestTimeout string `yaml:"request_timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	a.BaseURL = raw.BaseURL

	var err error
	if a.RequestTimeout, err = parseDuration(raw.RequestTimeout); err != nil {
		return fmt.Errorf("api.request_timeout: %w", err)
	}
	return nil
}

type PollConfig struct {
	Games   time.Duration `yaml:"games"`
	Balance time.Duration `yaml:"balance"`
}

func (p *PollConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Games   string `yaml:"games"`
		Balance string `yaml:"balance"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	var err error
	if p.Games, err = parseDuration(raw.Games); err != nil {
		return fmt.Errorf("poll.games: %w", err)
	}
	if p.Balance, err = parseDuration(raw.Balance); err != nil {
		return fmt.Errorf("poll.balance: %w", err)
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

type BetConfig struct {
	MinAmount int64 `yaml:"min_amount"`
	MaxAmount int64 `yaml:"max_amount"`
}

type WalletConfig struct {
	MinDeposit  int64 `yaml:"min_deposit"`
	MaxDeposit  int64 `yaml:"max_deposit"`
	MinWithdraw int64 `yaml:"min_withdraw"`
	MaxWithdraw int64 `yaml:"max_withdraw"`
}

type StorageConfig struct {
	Directory string `yaml:"directory"`
	Prefix    string `yaml:"prefix"`
}

type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type Config struct {
	API     APIConfig     `yaml:"api"`
	Poll    PollConfig    `yaml:"poll"`
	Bet     BetConfig     `yaml:"bet"`
	Wallet  WalletConfig  `yaml:"wallet"`
	Storage StorageConfig `yaml:"storage"`
	NATS    NATSConfig    `yaml:"nats"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	config.applyDefaults()

	if config.API.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url is required")
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.API.RequestTimeout == 0 {
		c.API.RequestTimeout = 30 * time.Second
	}
	if c.Poll.Games == 0 {
		c.Poll.Games = 30 * time.Second
	}
	if c.Poll.Balance == 0 {
		c.Poll.Balance = 60 * time.Second
	}
	if c.Bet.MinAmount == 0 {
		c.Bet.MinAmount = 10
	}
	if c.Bet.MaxAmount == 0 {
		c.Bet.MaxAmount = 10000
	}
	if c.Wallet.MinDeposit == 0 {
		c.Wallet.MinDeposit = 100
	}
	if c.Wallet.MaxDeposit == 0 {
		c.Wallet.MaxDeposit = 50000
	}
	if c.Wallet.MinWithdraw == 0 {
		c.Wallet.MinWithdraw = 500
	}
	if c.Wallet.MaxWithdraw == 0 {
		c.Wallet.MaxWithdraw = 25000
	}
	if c.Storage.Directory == "" {
		c.Storage.Directory = "state"
	}
	if c.Storage.Prefix == "" {
		c.Storage.Prefix = "matka"
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = "matka.events"
	}
}
