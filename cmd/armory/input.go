package main

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/cory-johannsen/armory/internal/game/inventory"
	"github.com/cory-johannsen/armory/internal/game/player"
	"github.com/cory-johannsen/armory/internal/game/weapon"
)

// dropAmount is the size of the ammo pickup dropped with the 'p' key.
const dropAmount = 10

// inputState collects terminal events between ticks. Key presses are edges
// consumed by the next tick; held fire, walking and the cursor persist.
type inputState struct {
	mu sync.Mutex

	slot         int
	discard      int
	discardArmed bool
	reload       bool
	pressed      bool
	held         bool
	move         float64
	// aim is the cursor position relative to the player, in world units.
	aim  weapon.Vec2
	drop bool
	quit bool
	view viewport
}

func newInputState(v viewport) *inputState {
	return &inputState{aim: weapon.Vec2{X: 1}, view: v}
}

func (s *inputState) currentView() viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// handle applies one terminal event. It returns false when the session
// should end.
func (s *inputState) handle(ev tcell.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			s.quit = true
		case tcell.KeyLeft:
			s.move = -1
		case tcell.KeyRight:
			s.move = 1
		case tcell.KeyDown:
			s.move = 0
		case tcell.KeyRune:
			s.handleRune(ev.Rune())
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		s.aim = s.view.toWorldOffset(x, y)
		s.held = ev.Buttons()&tcell.Button1 != 0
	case *tcell.EventResize:
		w, h := ev.Size()
		s.view = viewport{width: w, height: h}
	case *tcell.EventInterrupt:
		return false
	}
	return !s.quit
}

func (s *inputState) handleRune(r rune) {
	switch {
	case r >= '1' && r <= '9':
		n := int(r - '0')
		if s.discardArmed {
			s.discard = n
			s.discardArmed = false
			return
		}
		s.slot = n
	case r == 'x':
		s.discardArmed = true
	case r == 'r':
		s.reload = true
	case r == ' ':
		s.pressed = true
	case r == 'f':
		s.held = !s.held
	case r == 'a':
		s.move = -1
	case r == 'd':
		s.move = 1
	case r == 's':
		s.move = 0
	case r == 'p':
		s.drop = true
	case r == 'q':
		s.quit = true
	}
}

// drain returns the input for the next tick and clears the edges.
func (s *inputState) drain(origin weapon.Vec2) (in player.Input, drop, quit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in = player.Input{
		SlotKey:     s.slot,
		DiscardKey:  s.discard,
		Reload:      s.reload,
		FireHeld:    s.held,
		FirePressed: s.pressed,
		Move:        s.move,
		Cursor:      weapon.Extend(origin.Add(s.aim)),
	}
	drop, quit = s.drop, s.quit
	s.slot, s.discard = 0, 0
	s.reload, s.pressed, s.drop = false, false, false
	return in, drop, quit
}

// dropPickup is the ammo pickup the 'p' key drops for the active weapon.
func dropPickup(activeID string) (inventory.Pickup, bool) {
	if activeID == "" {
		return inventory.Pickup{}, false
	}
	return inventory.Pickup{Kind: inventory.PickupAmmo, WeaponID: activeID, Amount: dropAmount}, true
}
