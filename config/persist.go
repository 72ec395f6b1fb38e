package config

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/quasilyte/gdata"
)

const cvarsItem = "cvars"

// Store persists cvar overrides between server runs.
type Store struct {
	manager *gdata.Manager
}

// OpenStore opens the persistent settings storage for appName.
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open settings storage: %w", err)
	}
	return &Store{manager: m}, nil
}

// Load applies previously saved cvars. Missing data is not an error; unknown
// names from older versions are skipped.
func (s *Store) Load() error {
	if s == nil || s.manager == nil {
		return nil
	}

	data, err := s.manager.LoadItem(cvarsItem)
	if err != nil {
		return fmt.Errorf("load cvars: %w", err)
	}
	if data == nil {
		return nil
	}

	var saved map[string]float64
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("parse saved cvars: %w", err)
	}

	for name, value := range saved {
		if err := SetCvar(name, value); err != nil {
			log.Printf("[config] skipping saved cvar: %v", err)
		}
	}
	return nil
}

// Save writes the current value of every cvar.
func (s *Store) Save() error {
	if s == nil || s.manager == nil {
		return nil
	}

	data, err := json.Marshal(Snapshot())
	if err != nil {
		return fmt.Errorf("serialize cvars: %w", err)
	}
	if err := s.manager.SaveItem(cvarsItem, data); err != nil {
		return fmt.Errorf("save cvars: %w", err)
	}
	return nil
}
