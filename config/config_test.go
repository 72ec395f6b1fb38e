package config

import (
	"errors"
	"testing"
	"time"
)

func TestCvarsBindToConfig(t *testing.T) {
	Reset()
	defer Reset()

	if err := SetCvar("hook_max_length", 1200); err != nil {
		t.Fatalf("SetCvar: %v", err)
	}
	if Hook.MaxLength != 1200 {
		t.Fatalf("expected Hook.MaxLength=1200, got %f", Hook.MaxLength)
	}

	if err := SetCvarString("hook_wall_only", "true"); err != nil {
		t.Fatalf("SetCvarString: %v", err)
	}
	if !Hook.WallOnly {
		t.Fatal("expected wall-only mode to be enabled")
	}

	if err := SetCvar("thaw_time", 1.5); err != nil {
		t.Fatalf("SetCvar: %v", err)
	}
	if Freeze.ThawTime != 1500*time.Millisecond {
		t.Fatalf("expected thaw time 1.5s, got %s", Freeze.ThawTime)
	}

	v, err := GetCvar("hook_wall_only")
	if err != nil || v != 1 {
		t.Fatalf("expected hook_wall_only=1, got %f (err=%v)", v, err)
	}
}

func TestUnknownCvar(t *testing.T) {
	if err := SetCvar("no_such_var", 1); !errors.Is(err, ErrUnknownCvar) {
		t.Fatalf("expected ErrUnknownCvar, got %v", err)
	}
	if _, err := GetCvar("no_such_var"); !errors.Is(err, ErrUnknownCvar) {
		t.Fatalf("expected ErrUnknownCvar, got %v", err)
	}
}

func TestCvarsAreNotRangeChecked(t *testing.T) {
	Reset()
	defer Reset()

	if err := SetCvar("hook_min_length", -10); err != nil {
		t.Fatalf("negative values must be accepted, got %v", err)
	}
	if Hook.MinLength != -10 {
		t.Fatalf("expected -10, got %f", Hook.MinLength)
	}
}

func TestApplyYAML(t *testing.T) {
	Reset()
	defer Reset()

	data := []byte(`
server:
  name: "Test Server"
  tickRate: 30
cvars:
  hook_min_length: 64
  start_weapon: 33
motd:
  - "hello"
`)
	if err := Apply(data); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if Server.Name != "Test Server" || Server.TickRate != 30 {
		t.Fatalf("server section not applied: %+v", Server)
	}
	if Server.Port != 7373 {
		t.Fatalf("expected default port to be kept, got %d", Server.Port)
	}
	if Hook.MinLength != 64 || Freeze.StartWeapon != 33 {
		t.Fatalf("cvars not applied: min=%f weapon=%d", Hook.MinLength, Freeze.StartWeapon)
	}
	if len(UI.MOTD) != 1 || UI.MOTD[0] != "hello" {
		t.Fatalf("motd not applied: %v", UI.MOTD)
	}
}

func TestApplyRejectsUnknownCvarWithoutSideEffects(t *testing.T) {
	Reset()
	defer Reset()

	data := []byte(`
server:
  name: "Changed"
cvars:
  hook_speed: 10
  bogus: 1
`)
	if err := Apply(data); !errors.Is(err, ErrUnknownCvar) {
		t.Fatalf("expected ErrUnknownCvar, got %v", err)
	}
	if Hook.Speed != 900 || Server.Name == "Changed" {
		t.Fatal("rejected config must not be partially applied")
	}
}

func TestNilStoreIsNoop(t *testing.T) {
	var s *Store
	if err := s.Load(); err != nil {
		t.Fatalf("Load on nil store: %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save on nil store: %v", err)
	}
}
