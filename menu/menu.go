// Package menu keeps each player's MOTD or menu display and turns it into a
// layout string for the client's HUD.
package menu

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the type of a display.
type Kind int

const (
	KindNone Kind = iota
	KindMOTD
	KindMenu
	KindInfo
)

// ItemKind is the type of a display line.
type ItemKind int

const (
	ItemText ItemKind = iota
	ItemButton
	ItemSeparator
)

// Layout colors per item kind
const (
	ColorWhite = 7
	ColorGreen = 2
	ColorGray  = 8
)

// Action runs when a button is selected.
type Action func()

// Item is a single display line.
type Item struct {
	Kind       ItemKind
	Text       string
	Color      int
	Selectable bool
	Action     Action
}

// Display is one player's current MOTD or menu.
type Display struct {
	Kind     Kind
	Title    string
	Lines    []string
	Items    []Item
	Selected int
	ShownAt  time.Time
	Timeout  time.Duration
	Active   bool
	maxItems int
}

// New returns an inactive display holding at most maxItems items.
func New(maxItems int) *Display {
	return &Display{maxItems: maxItems}
}

// AddItem appends an item. Items beyond the limit are dropped.
func (d *Display) AddItem(kind ItemKind, text string, action Action) {
	if d.maxItems > 0 && len(d.Items) >= d.maxItems {
		return
	}
	item := Item{
		Kind:       kind,
		Text:       text,
		Selectable: kind == ItemButton,
		Action:     action,
	}
	switch kind {
	case ItemText:
		item.Color = ColorWhite
	case ItemButton:
		item.Color = ColorGreen
	case ItemSeparator:
		item.Color = ColorGray
	}
	d.Items = append(d.Items, item)
}

// ShowMOTD opens the message of the day.
func (d *Display) ShowMOTD(lines []string, now time.Time, timeout time.Duration) {
	d.open(KindMOTD, "Welcome", now, timeout)
	d.Lines = append([]string(nil), lines...)
}

// ShowMenu opens a menu with the given items.
func (d *Display) ShowMenu(title string, items []Item, now time.Time, timeout time.Duration) {
	d.open(KindMenu, title, now, timeout)
	for _, it := range items {
		d.AddItem(it.Kind, it.Text, it.Action)
	}
	d.Selected = d.firstSelectable()
}

// ShowInfo opens a read-only text page.
func (d *Display) ShowInfo(title string, lines []string, now time.Time, timeout time.Duration) {
	d.open(KindInfo, title, now, timeout)
	d.Lines = append([]string(nil), lines...)
}

func (d *Display) open(kind Kind, title string, now time.Time, timeout time.Duration) {
	d.Kind = kind
	d.Title = title
	d.Lines = nil
	d.Items = nil
	d.Selected = 0
	d.ShownAt = now
	d.Timeout = timeout
	d.Active = true
}

// Close hides the display.
func (d *Display) Close() {
	d.Active = false
}

// Expired reports whether the display timed out at now.
func (d *Display) Expired(now time.Time) bool {
	return d.Active && d.Timeout > 0 && now.Sub(d.ShownAt) > d.Timeout
}

// Update closes a timed out display. It returns the layout to send, or ""
// when nothing is shown.
func (d *Display) Update(now time.Time) string {
	if !d.Active {
		return ""
	}
	if d.Expired(now) {
		d.Close()
		return ""
	}
	return d.Render()
}

// HandleKey processes one key press. n/p move the selection, u or Enter
// selects (closing a MOTD or info page), q or Esc closes.
func (d *Display) HandleKey(key rune) {
	if !d.Active {
		return
	}

	switch key {
	case 'n', 'N':
		d.move(1)
	case 'p', 'P':
		d.move(-1)
	case 'u', 'U', '\r', '\n':
		if d.Kind != KindMenu {
			d.Close()
			return
		}
		if d.Selected >= 0 && d.Selected < len(d.Items) {
			if it := d.Items[d.Selected]; it.Selectable && it.Action != nil {
				it.Action()
			}
		}
	case 'q', 'Q', 27:
		d.Close()
	}
}

// move steps the selection, skipping items that cannot be selected.
func (d *Display) move(step int) {
	n := len(d.Items)
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		d.Selected = ((d.Selected+step)%n + n) % n
		if d.Items[d.Selected].Selectable {
			return
		}
	}
}

func (d *Display) firstSelectable() int {
	for i, it := range d.Items {
		if it.Selectable {
			return i
		}
	}
	return 0
}

// Render builds the HUD layout program for the display.
func (d *Display) Render() string {
	if !d.Active {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "xv 32 yv 32 string2 %q ", d.Title)
	y := 64
	for _, line := range d.Lines {
		fmt.Fprintf(&b, "xv 32 yv %d string %q ", y, line)
		y += 16
	}
	for i, it := range d.Items {
		cmd := "string"
		text := it.Text
		switch {
		case it.Kind == ItemSeparator:
			text = "--------"
		case i == d.Selected && it.Selectable:
			cmd = "string2"
			text = "> " + text
		}
		fmt.Fprintf(&b, "xv 32 yv %d %s %q ", y, cmd, text)
		y += 16
	}
	return b.String()
}
