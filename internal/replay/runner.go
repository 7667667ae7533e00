package replay

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/inventory"
	"github.com/cory-johannsen/armory/internal/game/player"
	"github.com/cory-johannsen/armory/internal/game/projectile"
	"github.com/cory-johannsen/armory/internal/game/weapon"
)

// ErrNoTick is returned by Run when neither the script nor the caller sets a
// positive tick.
var ErrNoTick = errors.New("no tick interval")

// TimedHit is a projectile hit and the simulation time it happened.
type TimedHit struct {
	At time.Duration
	projectile.Hit
}

// WeaponReport is the final state of one weapon in the bar.
type WeaponReport struct {
	Slot int
	weapon.Readout
	ID    string
	Phase weapon.Phase
}

// Report summarizes a replay.
type Report struct {
	Ticks           int
	Steps           int
	Pickups         int
	RejectedPickups int
	// FloorLeft counts the pickups still on the ground at the end.
	FloorLeft int
	Active          string
	Phase           weapon.Phase
	Weapons         []WeaponReport
	Hits            []TimedHit
}

// Run plays s against p. fallbackTick is used when the script sets no tick.
//
// Precondition: s is valid and p has not ticked yet.
// Postcondition: ticks run at 0, tick, 2*tick ... up to s.Duration.
func Run(s *Script, p *player.Player, fallbackTick time.Duration, logger *zap.Logger) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	step := s.Tick
	if step <= 0 {
		step = fallbackTick
	}
	if step <= 0 {
		return Report{}, fmt.Errorf("replay: Run: %w", ErrNoTick)
	}

	var rep Report
	for _, f := range s.Floor {
		p.Floor().Drop(weapon.Vec2{X: f.X, Y: f.Y}, f.Pickup)
	}
	targets := s.targets()
	cursor := s.Cursor
	held, move := false, 0.0
	next := 0

	for now := time.Duration(0); now <= s.Duration; now += step {
		in := player.Input{Targets: targets}
		for next < len(s.Steps) && s.Steps[next].At <= now {
			st := s.Steps[next]
			next++
			rep.Steps++
			if st.Pickup != nil {
				rep.collect(p, *st.Pickup, now, logger)
			}
			if st.Slot != 0 {
				in.SlotKey = st.Slot
			}
			if st.Discard != 0 {
				in.DiscardKey = st.Discard
			}
			in.Reload = in.Reload || st.Reload
			in.FirePressed = in.FirePressed || st.Fire
			if st.Hold != nil {
				held = *st.Hold
			}
			if st.Move != nil {
				move = *st.Move
			}
			if st.Cursor != nil {
				cursor = *st.Cursor
			}
		}
		in.FireHeld = held
		in.Move = move
		in.Cursor = weapon.Extend(cursor)

		for _, h := range p.Tick(now, in) {
			rep.Hits = append(rep.Hits, TimedHit{At: now, Hit: h})
		}
		rep.Ticks++
	}
	if next < len(s.Steps) {
		logger.Warn("replay steps after the end were skipped", zap.Int("skipped", len(s.Steps)-next))
	}

	rep.FloorLeft = p.Floor().Len()
	rep.Active = p.Controller().ActiveID()
	rep.Phase = p.Controller().Phase()
	for _, v := range p.Bar().Slots() {
		if v.Empty() {
			continue
		}
		w, err := p.Controller().Weapon(v.WeaponID)
		if err != nil {
			return rep, fmt.Errorf("replay: Run: %w", err)
		}
		st := w.State()
		rep.Weapons = append(rep.Weapons, WeaponReport{
			Slot: v.Index + 1,
			ID:   v.WeaponID,
			Readout: weapon.Readout{
				Current:  st.Magazine,
				Capacity: w.Profile().MagazineCapacity,
				Reserve:  st.Reserve,
				Name:     w.Profile().Name,
				Kind:     w.Kind().HUDIndex(),
			},
			Phase: st.Phase,
		})
	}
	return rep, nil
}

func (r *Report) collect(p *player.Player, pk inventory.Pickup, now time.Duration, logger *zap.Logger) {
	ok, err := p.Collect(pk)
	switch {
	case err != nil:
		logger.Warn("replay pickup rejected", zap.Duration("at", now), zap.Error(err))
		r.RejectedPickups++
	case !ok:
		r.RejectedPickups++
	default:
		r.Pickups++
	}
}

// Write prints the report as aligned text.
func (r Report) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	active := r.Active
	if active == "" {
		active = "(holstered)"
	}
	fmt.Fprintf(tw, "ticks\t%d\n", r.Ticks)
	fmt.Fprintf(tw, "steps\t%d\n", r.Steps)
	fmt.Fprintf(tw, "pickups\t%d collected, %d rejected\n", r.Pickups, r.RejectedPickups)
	fmt.Fprintf(tw, "floor\t%d left\n", r.FloorLeft)
	fmt.Fprintf(tw, "active\t%s\t%s\n", active, r.Phase)
	for _, wr := range r.Weapons {
		fmt.Fprintf(tw, "slot %d\t%s\t%02d/%02d | %d\t%s\n", wr.Slot, wr.Name, wr.Current, wr.Capacity, wr.Reserve, wr.Phase)
	}
	for _, h := range r.Hits {
		fmt.Fprintf(tw, "hit %.3fs\t%s\t%s\t%s/%s\t%.1f\n", h.At.Seconds(), h.TargetID, h.WeaponID, h.Type, h.Effect, h.Damage)
	}
	return tw.Flush()
}
