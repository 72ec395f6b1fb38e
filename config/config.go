// Package config holds the server's tunable values. Every value has a default
// set in init(); YAML files, persisted overrides and console commands change
// them through the cvar registry in cvars.go.
package config

import "time"

// HookConfig contains grappling hook configuration values
type HookConfig struct {
	MaxLength       float64 // Chain length at which the hook is released
	MinLength       float64 // Desired chain length in normal tension mode
	Speed           float64 // Projectile travel speed (units/second)
	PullCoefficient float64 // Impulse per unit of chain beyond the desired length
	WallOnly        bool    // Hooks never attach to players when set

	// Radius around the chain endpoints within which observers receive the
	// chain effect.
	EffectRadius float64

	// Size of the projectile collision box
	Size float64
}

// FreezeConfig contains freeze tag rule configuration values
type FreezeConfig struct {
	MaxTeams     int
	StartHealth  int
	ThawTime     time.Duration // Contact time needed to thaw a teammate
	ThawRadius   float64       // Max center distance for thaw contact
	RoundRestart time.Duration // Delay between a round win and the mass thaw
	StompDamage  int           // Damage dealt by landing on an enemy

	// Starting inventory
	StartWeapon int // Bit flags, see freeze.Weapon*
	StartArmor  int
}

// UIConfig contains MOTD and menu configuration values
type UIConfig struct {
	MOTD        []string
	MOTDTimeout time.Duration
	MenuTimeout time.Duration
	MaxItems    int
}

// ServerConfig contains dedicated server configuration values
type ServerConfig struct {
	Name       string
	Port       uint
	TickRate   int
	MaxPlayers int
	AssetsDir  string
	Level      string
	Version    string
}

// Global configuration instances
var (
	Hook   HookConfig
	Freeze FreezeConfig
	UI     UIConfig
	Server ServerConfig
)

func init() {
	Reset()
}

// Reset restores every configuration value to its default.
func Reset() {
	Hook = HookConfig{
		MaxLength:       1000.0,
		MinLength:       40.0,
		Speed:           900.0,
		PullCoefficient: 5.0,
		WallOnly:        false,
		EffectRadius:    640.0,
		Size:            6.0,
	}

	Freeze = FreezeConfig{
		MaxTeams:     4,
		StartHealth:  100,
		ThawTime:     3 * time.Second,
		ThawRadius:   48.0,
		RoundRestart: 5 * time.Second,
		StompDamage:  50,
		StartWeapon:  0,
		StartArmor:   0,
	}

	UI = UIConfig{
		MOTD: []string{
			"Welcome to Freeze Tag!",
			"Work as a team!",
			"Press INVENTORY to continue",
		},
		MOTDTimeout: 15 * time.Second,
		MenuTimeout: 30 * time.Second,
		MaxItems:    16,
	}

	Server = ServerConfig{
		Name:       "Freeze Tag Server",
		Port:       7373,
		TickRate:   20,
		MaxPlayers: 16,
		AssetsDir:  "assets",
		Level:      "arena",
	}
}
