package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// cvar binds a console variable name to a configuration field. All values are
// exchanged as float64; booleans are 0/1 and durations are seconds.
type cvar struct {
	get func() float64
	set func(float64)
}

func floatVar(p *float64) cvar {
	return cvar{get: func() float64 { return *p }, set: func(v float64) { *p = v }}
}

func intVar(p *int) cvar {
	return cvar{get: func() float64 { return float64(*p) }, set: func(v float64) { *p = int(v) }}
}

func boolVar(p *bool) cvar {
	return cvar{
		get: func() float64 {
			if *p {
				return 1
			}
			return 0
		},
		set: func(v float64) { *p = v != 0 },
	}
}

func secondsVar(p *time.Duration) cvar {
	return cvar{
		get: func() float64 { return p.Seconds() },
		set: func(v float64) { *p = time.Duration(v * float64(time.Second)) },
	}
}

var cvars = map[string]cvar{
	"hook_max_length": floatVar(&Hook.MaxLength),
	"hook_min_length": floatVar(&Hook.MinLength),
	"hook_speed":      floatVar(&Hook.Speed),
	"hook_pull_speed": floatVar(&Hook.PullCoefficient),
	"hook_wall_only":  boolVar(&Hook.WallOnly),
	"start_weapon":    intVar(&Freeze.StartWeapon),
	"start_armor":     intVar(&Freeze.StartArmor),
	"thaw_time":       secondsVar(&Freeze.ThawTime),
	"thaw_radius":     floatVar(&Freeze.ThawRadius),
	"stomp_damage":    intVar(&Freeze.StompDamage),
	"ui_motd_timeout": secondsVar(&UI.MOTDTimeout),
	"ui_menu_timeout": secondsVar(&UI.MenuTimeout),
}

// ErrUnknownCvar is returned for names that are not registered.
var ErrUnknownCvar = errors.New("unknown cvar")

// GetCvar returns the current value of a named setting.
func GetCvar(name string) (float64, error) {
	cv, ok := cvars[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCvar, name)
	}
	return cv.get(), nil
}

// SetCvar changes a named setting. Values are not range checked.
func SetCvar(name string, value float64) error {
	cv, ok := cvars[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCvar, name)
	}
	cv.set(value)
	return nil
}

// SetCvarString parses value and sets the named setting. "true"/"false" are
// accepted for flags.
func SetCvarString(name, value string) error {
	var v float64
	switch value {
	case "true":
		v = 1
	case "false":
		v = 0
	default:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("cvar %s: %w", name, err)
		}
		v = f
	}
	return SetCvar(name, v)
}

// CvarNames returns all registered names in sorted order.
func CvarNames() []string {
	names := make([]string, 0, len(cvars))
	for name := range cvars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns every cvar and its current value.
func Snapshot() map[string]float64 {
	out := make(map[string]float64, len(cvars))
	for name, cv := range cvars {
		out[name] = cv.get()
	}
	return out
}
