// Package config loads the core's only recognized settings: the
// seq_check policy flag and the seed subscriber key material, from a
// YAML file. See spec.md §6.2.
package config

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SubscriberSeed is one provisioned subscriber's key and initial SQN,
// as read from the config file (hex-encoded strings on disk).
type SubscriberSeed struct {
	Identity string `yaml:"identity"`
	K        string `yaml:"k"`   // 32 hex chars (16 bytes)
	SQN      string `yaml:"sqn"` // 12 hex chars (6 bytes)
}

// Config is the core's configuration surface: the seq_check flag plus
// the subscribers to seed a provider.Store from.
type Config struct {
	SeqCheck    bool             `yaml:"seq_check"`
	Subscribers []SubscriberSeed `yaml:"subscribers"`
}

// Load reads and parses a YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks that every subscriber's K and SQN decode to the
// fixed widths the core requires.
func (c *Config) Validate() error {
	for _, sub := range c.Subscribers {
		k, err := hex.DecodeString(sub.K)
		if err != nil || len(k) != 16 {
			return fmt.Errorf("subscriber %s: K must be 32 hex chars", sub.Identity)
		}
		sqn, err := hex.DecodeString(sub.SQN)
		if err != nil || len(sqn) != 6 {
			return fmt.Errorf("subscriber %s: sqn must be 12 hex chars", sub.Identity)
		}
	}
	return nil
}

// DecodeK returns s's K as raw bytes. The caller must have already
// validated the config.
func (s SubscriberSeed) DecodeK() ([]byte, error) {
	return hex.DecodeString(s.K)
}

// DecodeSQN returns s's SQN as raw bytes.
func (s SubscriberSeed) DecodeSQN() ([]byte, error) {
	return hex.DecodeString(s.SQN)
}
