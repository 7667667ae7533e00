// Package hud draws the ammunition readout and the quick-slot bar on a tcell
// screen.
package hud

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/inventory"
	"github.com/cory-johannsen/armory/internal/game/weapon"
)

// Rows used by the HUD, from the top of the screen.
const (
	RowAmmo = iota
	RowSlots
	RowStatus
)

// MinWidth is the narrowest HUD that still fits a readout.
const MinWidth = 20

var kindLabels = []string{"PISTOL", "SHOTGUN"}

var (
	styleAmmo   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleLow    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleSlot   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleActive = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// AmmoLine formats a readout as "KIND Name  current/capacity | reserve".
func AmmoLine(r weapon.Readout) string {
	kind := "WEAPON"
	if r.Kind >= 0 && r.Kind < len(kindLabels) {
		kind = kindLabels[r.Kind]
	}
	return fmt.Sprintf("%s %s  %02d/%02d | %d", kind, r.Name, r.Current, r.Capacity, r.Reserve)
}

// SlotLabel formats one slot in at most width columns. Empty slots show
// dashes; the ammo total follows the name.
func SlotLabel(v inventory.SlotView, width int) string {
	var s string
	if v.Empty() {
		s = fmt.Sprintf("%d ----", v.Index+1)
	} else {
		s = fmt.Sprintf("%d %s %d", v.Index+1, v.Name, v.Ammo)
	}
	return runewidth.Truncate(s, width, "…")
}

// Terminal implements weapon.HUD and inventory.SlotSink on a tcell screen.
//
// Terminal is safe for concurrent use.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	width  int
	ammo   *weapon.Readout
	slots  []inventory.SlotView
	status string
	logger *zap.Logger
}

// New returns a Terminal drawing width columns of screen.
//
// Precondition: screen is initialized.
func New(screen tcell.Screen, width int, logger *zap.Logger) *Terminal {
	if width < MinWidth {
		width = MinWidth
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Terminal{screen: screen, width: width, logger: logger}
}

// ShowAmmo displays r and redraws.
func (t *Terminal) ShowAmmo(r weapon.Readout) {
	t.mu.Lock()
	t.ammo = &r
	t.mu.Unlock()
	t.Draw()
}

// Clear removes the ammunition readout and redraws.
func (t *Terminal) Clear() {
	t.mu.Lock()
	t.ammo = nil
	t.mu.Unlock()
	t.Draw()
}

// ShowSlots displays the slot bar and redraws.
func (t *Terminal) ShowSlots(slots []inventory.SlotView) {
	t.mu.Lock()
	t.slots = append(t.slots[:0], slots...)
	t.mu.Unlock()
	t.Draw()
}

// SetStatus replaces the status line. It is drawn on the next Draw.
func (t *Terminal) SetStatus(s string) {
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
}

// Draw renders every HUD row and shows the screen.
func (t *Terminal) Draw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.clearRow(RowAmmo)
	if t.ammo != nil {
		st := styleAmmo
		if t.ammo.Current == 0 {
			st = styleLow
		}
		t.put(0, RowAmmo, AmmoLine(*t.ammo), st)
	}

	t.clearRow(RowSlots)
	if n := len(t.slots); n > 0 {
		cell := t.width / n
		for i, v := range t.slots {
			st := styleSlot
			if v.Active {
				st = styleActive
			}
			t.put(i*cell, RowSlots, SlotLabel(v, cell-1), st)
		}
	}

	t.clearRow(RowStatus)
	t.put(0, RowStatus, t.status, styleStatus)

	t.screen.Show()
}

func (t *Terminal) clearRow(y int) {
	for x := 0; x < t.width; x++ {
		t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

// put writes s from column x, advancing by each rune's display width and
// stopping at the HUD edge.
func (t *Terminal) put(x, y int, s string, st tcell.Style) {
	for _, r := range strings.TrimRight(s, " ") {
		w := runewidth.RuneWidth(r)
		if x+w > t.width {
			return
		}
		t.screen.SetContent(x, y, r, nil, st)
		x += w
	}
}
