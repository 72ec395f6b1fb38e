package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/automoto/freezetag/config"
	"github.com/automoto/freezetag/menu"
	"github.com/automoto/freezetag/shared/messages"
	"github.com/automoto/freezetag/shared/netconfig"
)

var helpLines = []string{
	"hook fire|drop     launch or release the hook",
	"hook shrink|grow   shorten or lengthen the chain",
	"hook normal        default chain length",
	"menu               open the team menu",
	"join / spectate    change team",
	"info               server settings",
	"get <cvar>         show a setting",
}

func (s *Server) toggleMenu(sess *Session) {
	if sess.Display.Active && sess.Display.Kind == menu.KindMenu {
		sess.Display.Close()
		return
	}
	s.openMainMenu(sess)
}

func (s *Server) openMainMenu(sess *Session) {
	items := []menu.Item{
		{Kind: menu.ItemButton, Text: "Join Team", Action: func() {
			if s.rules.Teams.TeamOf(sess.Entity) == netconfig.TeamNone {
				s.joinTeam(sess, s.rules.Teams.AutoAssign())
			}
			sess.Display.Close()
		}},
		{Kind: menu.ItemButton, Text: "Spectate", Action: func() {
			s.spectate(sess)
			sess.Display.Close()
		}},
		{Kind: menu.ItemSeparator},
		{Kind: menu.ItemButton, Text: "Server Info", Action: func() {
			sess.Display.ShowInfo("Server Info", s.serverInfo(), s.now, config.UI.MenuTimeout)
		}},
		{Kind: menu.ItemButton, Text: "Help", Action: func() {
			sess.Display.ShowInfo("Help", helpLines, s.now, config.UI.MenuTimeout)
		}},
		{Kind: menu.ItemButton, Text: "Close", Action: func() {
			sess.Display.Close()
		}},
	}
	sess.Display.ShowMenu("Freeze Tag", items, s.now, config.UI.MenuTimeout)
}

func (s *Server) onMenuKey(id string, key messages.MenuKey) {
	if sess, ok := s.sessions.ByID(id); ok {
		sess.Display.HandleKey(key.Key)
	}
}

// updateMenus expires displays and sends layouts that changed.
func (s *Server) updateMenus() {
	for _, sess := range s.sessions.All() {
		layout := sess.Display.Update(s.now)
		if layout == sess.layout {
			continue
		}
		sess.layout = layout
		s.send(sess, messages.LayoutMessage{Layout: layout})
	}
}

func (s *Server) serverInfo() []string {
	lines := []string{
		fmt.Sprintf("%s on %s", config.Server.Name, s.level.Name),
		fmt.Sprintf("players %d/%d", s.sessions.Len(), config.Server.MaxPlayers),
		fmt.Sprintf("hook speed %.0f, length %.0f-%.0f", config.Hook.Speed, config.Hook.MinLength, config.Hook.MaxLength),
		fmt.Sprintf("thaw time %s", config.Freeze.ThawTime),
	}
	if config.Hook.WallOnly {
		lines = append(lines, "hooks attach to walls only")
	}
	for _, info := range s.rules.Teams.All() {
		lines = append(lines, fmt.Sprintf("%-6s score %d, %d/%d frozen", info.Name, info.Score, info.Frozen, info.Players))

		members := s.rules.Teams.Members(info.ID)
		if len(members) == 0 {
			continue
		}
		names := make([]string, 0, len(members))
		for _, e := range members {
			names = append(names, s.playerName(e))
		}
		sort.Strings(names)
		lines = append(lines, "  "+strings.Join(names, ", "))
	}
	return lines
}

// onConsoleCommand runs a console line typed by a player.
func (s *Server) onConsoleCommand(id string, cmd messages.ConsoleCommand) {
	sess, ok := s.sessions.ByID(id)
	if !ok {
		return
	}

	fields := strings.Fields(cmd.Line)
	if len(fields) == 0 {
		return
	}

	switch strings.ToLower(fields[0]) {
	case "hook":
		if len(fields) > 1 {
			s.hooks.Command(sess.Entity, fields[1])
		}
	case "menu":
		s.toggleMenu(sess)
	case "join":
		if s.rules.Teams.TeamOf(sess.Entity) == netconfig.TeamNone {
			s.joinTeam(sess, s.rules.Teams.AutoAssign())
		}
	case "spectate":
		s.spectate(sess)
	case "info":
		for _, line := range s.serverInfo() {
			s.printf(sess, line)
		}
	case "help":
		for _, line := range helpLines {
			s.printf(sess, line)
		}
	case "get":
		if len(fields) < 2 {
			s.printf(sess, "usage: get <cvar>")
			return
		}
		s.printf(sess, getCvarLine(fields[1]))
	default:
		s.printf(sess, "unknown command: "+fields[0])
	}
}

// execOperator runs a server console line and returns its output.
func (s *Server) execOperator(line string) []string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "set":
		if len(fields) < 3 {
			return []string{"usage: set <cvar> <value>"}
		}
		if err := config.SetCvarString(fields[1], fields[2]); err != nil {
			return []string{err.Error()}
		}
		if err := s.store.Save(); err != nil {
			return []string{getCvarLine(fields[1]), "not saved: " + err.Error()}
		}
		return []string{getCvarLine(fields[1])}
	case "get":
		if len(fields) < 2 {
			return []string{"usage: get <cvar>"}
		}
		return []string{getCvarLine(fields[1])}
	case "cvarlist":
		var out []string
		for _, name := range config.CvarNames() {
			out = append(out, getCvarLine(name))
		}
		return out
	case "status":
		out := s.serverInfo()
		for _, sess := range s.sessions.All() {
			out = append(out, fmt.Sprintf("%s %q team=%s hook=%s tension=%s", sess.ID, sess.Name,
				s.teamName(s.rules.Teams.TeamOf(sess.Entity)), s.hooks.State(sess.Entity), s.hooks.Tension(sess.Entity)))
		}
		return out
	case "say":
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
		s.broadcastEvent(messages.PrintMessage{Text: "console: " + text})
		return nil
	case "hooks":
		return []string{fmt.Sprintf("%d live hooks", s.hooks.Live())}
	}
	return []string{"unknown command: " + fields[0]}
}

func getCvarLine(name string) string {
	v, err := config.GetCvar(name)
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("%s = %g", name, v)
}
