package weapon

import (
	"time"

	"go.uber.org/zap"
)

// Shotgun reloads one round per interval and may keep firing while a reload
// is in progress. A shot fired mid-reload cancels the reload.
type Shotgun struct {
	core

	roundsLoaded    int
	roundsNeeded    int // fixed when the reload starts
	magazineAtStart int
	lastCueAt       time.Duration
}

// State returns a snapshot of the shotgun's runtime state.
func (w *Shotgun) State() State {
	return State{
		Magazine:        w.magazine,
		Reserve:         w.reserve,
		Phase:           w.phase,
		ReloadStartedAt: w.reloadStartedAt,
		RoundsLoaded:    w.roundsLoaded,
		RoundsNeeded:    w.roundsNeeded,
	}
}

// CanFire reports whether the shotgun is loaded and off cooldown, regardless
// of reload phase.
func (w *Shotgun) CanFire(now, lastShot time.Duration) bool {
	return w.magazine > 0 && w.cadenceReady(now, lastShot)
}

// StartReload begins an incremental reload and snapshots the number of rounds
// to load.
//
// Postcondition: returns true iff the phase moved from Idle to Reloading;
// RoundsNeeded == min(capacity-magazine, reserve).
func (w *Shotgun) StartReload(now time.Duration) bool {
	if !w.canStartReload() {
		return false
	}
	w.phase = PhaseReloading
	w.reloadStartedAt = now
	w.roundsLoaded = 0
	w.roundsNeeded = min(w.profile.MagazineCapacity-w.magazine, w.reserve)
	w.magazineAtStart = w.magazine
	w.lastCueAt = now
	w.logger.Info("reload started",
		zap.Int("magazine", w.magazine),
		zap.Int("reserve", w.reserve),
		zap.Int("rounds_needed", w.roundsNeeded),
	)
	return true
}

// TickReload aborts on a mid-reload shot, completes when nothing is left to
// load, and otherwise loads one round per interval.
func (w *Shotgun) TickReload(now time.Duration) {
	if w.phase != PhaseReloading {
		return
	}
	p := w.profile

	if w.magazine < w.magazineAtStart+w.roundsLoaded {
		w.logger.Info("reload interrupted by shot",
			zap.Int("magazine", w.magazine),
			zap.Int("rounds_loaded", w.roundsLoaded),
		)
		w.resetReload()
		return
	}

	if w.reserve <= 0 || w.magazine >= p.MagazineCapacity || w.roundsLoaded >= w.roundsNeeded {
		w.logger.Info("reload complete",
			zap.Int("magazine", w.magazine),
			zap.Int("reserve", w.reserve),
		)
		w.resetReload()
		return
	}

	interval := p.ReloadDuration
	if w.roundsNeeded > 0 {
		interval = p.ReloadDuration / time.Duration(w.roundsNeeded)
	}
	if now < w.lastCueAt+interval {
		return
	}

	w.ports.Audio.Play(p.ReloadSound)
	w.roundsLoaded++
	w.lastCueAt = now
	w.magazine++
	w.reserve--
	w.logger.Debug("round loaded",
		zap.Int("round", w.roundsLoaded),
		zap.Int("of", w.roundsNeeded),
	)
	w.RefreshHUD()
}

// CancelReload abandons the reload. Rounds already loaded stay loaded.
func (w *Shotgun) CancelReload() {
	w.resetReload()
}

func (w *Shotgun) resetReload() {
	w.phase = PhaseIdle
	w.roundsLoaded = 0
	w.roundsNeeded = 0
	w.magazineAtStart = 0
}
