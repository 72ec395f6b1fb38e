package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk layout of a server configuration file.
//
//	server:
//	  name: "My Freeze Server"
//	  port: 7373
//	  tickRate: 20
//	cvars:
//	  hook_max_length: 1200
//	  hook_wall_only: 1
type FileConfig struct {
	Server struct {
		Name       string `yaml:"name"`
		Port       uint   `yaml:"port"`
		TickRate   int    `yaml:"tickRate"`
		MaxPlayers int    `yaml:"maxPlayers"`
		AssetsDir  string `yaml:"assets"`
		Level      string `yaml:"level"`
		Version    string `yaml:"version"`
	} `yaml:"server"`
	Cvars map[string]float64 `yaml:"cvars"`
	MOTD  []string           `yaml:"motd"`
}

// LoadFile reads a YAML configuration file and applies it on top of the
// current values. Zero-valued server fields keep their defaults.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return Apply(data)
}

// Apply parses YAML configuration data and applies it.
func Apply(data []byte) error {
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	// Validate every cvar before touching anything
	for name := range fc.Cvars {
		if _, ok := cvars[name]; !ok {
			return fmt.Errorf("invalid config: %w: %s", ErrUnknownCvar, name)
		}
	}

	if fc.Server.Name != "" {
		Server.Name = fc.Server.Name
	}
	if fc.Server.Port != 0 {
		Server.Port = fc.Server.Port
	}
	if fc.Server.TickRate > 0 {
		Server.TickRate = fc.Server.TickRate
	}
	if fc.Server.MaxPlayers > 0 {
		Server.MaxPlayers = fc.Server.MaxPlayers
	}
	if fc.Server.AssetsDir != "" {
		Server.AssetsDir = fc.Server.AssetsDir
	}
	if fc.Server.Level != "" {
		Server.Level = fc.Server.Level
	}
	if fc.Server.Version != "" {
		Server.Version = fc.Server.Version
	}
	if len(fc.MOTD) > 0 {
		UI.MOTD = fc.MOTD
	}

	for name, value := range fc.Cvars {
		cvars[name].set(value)
	}
	return nil
}
