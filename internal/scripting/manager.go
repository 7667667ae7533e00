package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// HookProjectileHit is the Lua global called for every projectile hit. It
// receives a table describing the hit and may return the damage to apply.
const HookProjectileHit = "on_projectile_hit"

// HitInfo is the snapshot of a projectile hit passed to Lua.
type HitInfo struct {
	ProjectileID string
	WeaponID     string
	Type         string
	Damage       float64
	TargetID     string
	// Hits counts the targets this projectile has struck, including this one.
	Hits int
}

// Manager owns one sandboxed LState loaded with every script of a content
// directory.
//
// Manager is safe for concurrent use; calls into the VM are serialized.
type Manager struct {
	mu     sync.Mutex
	state  *lua.LState
	limit  int
	logger *zap.Logger
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: logger must be non-nil (panics otherwise).
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting: NewManager: logger must not be nil")
	}
	return &Manager{logger: logger}
}

// Load replaces the VM with a fresh one running every *.lua file in
// scriptDir in lexicographic order. instLimit bounds each load and hook call.
//
// Postcondition: on error the previous VM is kept.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			files = append(files, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(files)

	L := NewSandboxedState()
	m.RegisterModules(L)
	for _, path := range files {
		release := Budget(L, instLimit)
		err := L.DoFile(path)
		release()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}
	m.swap(L, instLimit)
	m.logger.Info("scripts loaded", zap.String("dir", scriptDir), zap.Int("files", len(files)))
	return nil
}

// LoadString replaces the VM with one running src.
func (m *Manager) LoadString(src string, instLimit int) error {
	L := NewSandboxedState()
	m.RegisterModules(L)
	release := Budget(L, instLimit)
	err := L.DoString(src)
	release()
	if err != nil {
		L.Close()
		return fmt.Errorf("scripting: loading source: %w", err)
	}
	m.swap(L, instLimit)
	return nil
}

func (m *Manager) swap(L *lua.LState, limit int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
	}
	m.state = L
	m.limit = limit
}

// CallHook calls the named Lua global with args. Returns (LNil, nil) when no
// VM is loaded or the hook is not defined. Lua runtime errors, including an
// exhausted instruction budget, are logged at Warn and never propagated.
//
// Postcondition: returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	return m.call(hook, func(*lua.LState) []lua.LValue { return args })
}

func (m *Manager) call(hook string, build func(L *lua.LState) []lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	L := m.state
	if L == nil {
		return lua.LNil, nil
	}
	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	release := Budget(L, m.limit)
	err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, build(L)...)
	release()
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error", zap.String("hook", hook), zap.Error(err))
		return lua.LNil, nil
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// ProjectileHit runs on_projectile_hit for h and returns the damage to apply.
// Without a script, or when the script returns a non-number, the damage is
// h.Damage. Negative results are clamped to zero.
func (m *Manager) ProjectileHit(h HitInfo) float64 {
	ret, _ := m.call(HookProjectileHit, func(L *lua.LState) []lua.LValue {
		t := L.NewTable()
		t.RawSetString("projectile", lua.LString(h.ProjectileID))
		t.RawSetString("weapon", lua.LString(h.WeaponID))
		t.RawSetString("type", lua.LString(h.Type))
		t.RawSetString("damage", lua.LNumber(h.Damage))
		t.RawSetString("target", lua.LString(h.TargetID))
		t.RawSetString("hits", lua.LNumber(h.Hits))
		return []lua.LValue{t}
	})
	n, ok := ret.(lua.LNumber)
	if !ok {
		return h.Damage
	}
	if n < 0 {
		return 0
	}
	return float64(n)
}

// Close releases the VM. Subsequent calls behave as if no scripts were loaded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
}
