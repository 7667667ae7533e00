package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules defines the armory global table in L:
//
//	armory.log(msg)           logs msg at Info
//	armory.clamp(x, lo, hi)   returns x limited to [lo, hi]
//
// Precondition: L must be from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Info("script", zap.String("msg", L.CheckString(1)))
		return 0
	}))
	L.SetField(mod, "clamp", L.NewFunction(func(L *lua.LState) int {
		x, lo, hi := L.CheckNumber(1), L.CheckNumber(2), L.CheckNumber(3)
		switch {
		case x < lo:
			x = lo
		case x > hi:
			x = hi
		}
		L.Push(x)
		return 1
	}))
	L.SetGlobal("armory", mod)
}
