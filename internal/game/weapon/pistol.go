package weapon

import (
	"time"

	"go.uber.org/zap"
)

// ReloadCueLead is how long before the magazine refill the reload cue plays,
// and how long after the cue the refill becomes visible.
const ReloadCueLead = 600 * time.Millisecond

// Pistol reloads its whole magazine in one step once ReloadDuration has
// elapsed. The reload cue plays ReloadCueLead before the refill so that sound
// and HUD land together.
type Pistol struct {
	core

	cuePlayed     bool
	hudDeferUntil time.Duration
}

// State returns a snapshot of the pistol's runtime state.
func (w *Pistol) State() State {
	return State{
		Magazine:        w.magazine,
		Reserve:         w.reserve,
		Phase:           w.phase,
		ReloadStartedAt: w.reloadStartedAt,
	}
}

// CanFire reports whether the pistol is idle, loaded and off cooldown.
func (w *Pistol) CanFire(now, lastShot time.Duration) bool {
	return w.phase == PhaseIdle && w.magazine > 0 && w.cadenceReady(now, lastShot)
}

// StartReload begins a reload.
//
// Postcondition: returns true iff the phase moved from Idle to Reloading.
func (w *Pistol) StartReload(now time.Duration) bool {
	if !w.canStartReload() {
		return false
	}
	w.phase = PhaseReloading
	w.reloadStartedAt = now
	w.cuePlayed = false
	w.logger.Info("reload started",
		zap.Int("magazine", w.magazine),
		zap.Int("reserve", w.reserve),
	)
	return true
}

// TickReload plays the cue and completes the refill when their thresholds
// are reached.
func (w *Pistol) TickReload(now time.Duration) {
	if w.phase != PhaseReloading {
		return
	}
	p := w.profile
	elapsed := now - w.reloadStartedAt

	if !w.cuePlayed && elapsed >= p.ReloadDuration-ReloadCueLead {
		w.ports.Audio.Play(p.ReloadSound)
		w.cuePlayed = true
		w.hudDeferUntil = now
		w.logger.Debug("reload cue played", zap.Duration("elapsed", elapsed))
	}

	if elapsed < p.ReloadDuration || !w.cuePlayed || now < w.hudDeferUntil+ReloadCueLead {
		return
	}

	needed := p.MagazineCapacity - w.magazine
	switch {
	case w.reserve >= needed:
		w.magazine = p.MagazineCapacity
		w.reserve -= needed
		w.logger.Info("reload complete", zap.Int("reserve", w.reserve))
	case w.reserve > 0:
		w.magazine += w.reserve
		w.reserve = 0
		w.logger.Info("partial reload complete", zap.Int("magazine", w.magazine))
	}
	w.phase = PhaseIdle
	w.cuePlayed = false
	w.RefreshHUD()
}

// CancelReload abandons the reload without touching ammunition.
func (w *Pistol) CancelReload() {
	w.phase = PhaseIdle
	w.cuePlayed = false
	w.hudDeferUntil = 0
}
