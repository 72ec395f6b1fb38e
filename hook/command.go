package hook

import (
	"strings"

	"github.com/yohamta/donburi"
)

// Command tokens accepted by Command.
const (
	CmdFire   = "fire"
	CmdDrop   = "drop"
	CmdShrink = "shrink"
	CmdGrow   = "grow"
	CmdNormal = "normal"
)

// Command runs a hook command for player. Tokens are case-insensitive;
// unknown tokens and commands from players that are not alive do nothing.
func (s *System) Command(player donburi.Entity, token string) {
	if !s.world.Alive(player) {
		return
	}

	switch strings.ToLower(strings.TrimSpace(token)) {
	case CmdFire:
		s.Fire(player)
	case CmdDrop:
		s.Drop(player)
	case CmdShrink:
		s.SetTension(player, TensionShrink)
	case CmdGrow:
		s.SetTension(player, TensionGrow)
	case CmdNormal:
		s.SetTension(player, TensionNormal)
	}
}
