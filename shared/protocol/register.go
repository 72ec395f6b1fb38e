package protocol

import (
	"fmt"

	"github.com/automoto/freezetag/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetPosition    uint = 10
	SyncIDNetVelocity    uint = 11
	SyncIDNetPlayerState uint = 12
	SyncIDNetHook        uint = 13
	SyncIDNetTeamState   uint = 14
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetPosition uint8 = 10
	InterpIDNetVelocity uint8 = 11
	InterpIDNetHook     uint8 = 13
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetPosition,
		netcomponents.NetPositionData{},
		netcomponents.NetPosition,
		esync.WithInterpFn(InterpIDNetPosition, netcomponents.LerpNetPosition),
	); err != nil {
		return fmt.Errorf("register position: %w", err)
	}

	if err := esync.RegisterComponent(
		SyncIDNetVelocity,
		netcomponents.NetVelocityData{},
		netcomponents.NetVelocity,
		esync.WithInterpFn(InterpIDNetVelocity, netcomponents.LerpNetVelocity),
	); err != nil {
		return fmt.Errorf("register velocity: %w", err)
	}

	// PlayerState: no interpolation (discrete state changes)
	if err := esync.RegisterComponent(
		SyncIDNetPlayerState,
		netcomponents.NetPlayerStateData{},
		netcomponents.NetPlayerState,
	); err != nil {
		return fmt.Errorf("register player state: %w", err)
	}

	if err := esync.RegisterComponent(
		SyncIDNetHook,
		netcomponents.NetHookData{},
		netcomponents.NetHook,
		esync.WithInterpFn(InterpIDNetHook, netcomponents.LerpNetHook),
	); err != nil {
		return fmt.Errorf("register hook: %w", err)
	}

	// TeamState: no interpolation (scoreboard)
	if err := esync.RegisterComponent(
		SyncIDNetTeamState,
		netcomponents.NetTeamStateData{},
		netcomponents.NetTeamState,
	); err != nil {
		return fmt.Errorf("register team state: %w", err)
	}

	return nil
}
