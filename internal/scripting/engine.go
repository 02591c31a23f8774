// Package scripting attaches Lua behaviors to scene nodes. One VM serves the
// whole scene; scripts are instances of registered classes and serialize to
// opaque byte blobs so the editor can move them across the undo boundary
// without holding live VM references.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// ResourceEnv re-resolves external resource references named by a script or
// payload after deserialization.
type ResourceEnv interface {
	RequestResource(path string) error
}

// Class is a registered script class: default field values plus the names of
// fields that hold resource paths and must be re-resolved on restore.
type Class struct {
	Name      string
	Defaults  map[string]any
	Resources []string
	table     *lua.LTable
}

// Engine wraps a single gopher-lua VM. Single-goroutine access only (the
// editor/scene thread).
type Engine struct {
	vm      *lua.LState
	classes map[string]*Class
	log     *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir.
// Script files register classes through the injected keel.register_class.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, classes: make(map[string]*Class), log: log}

	mod := vm.NewTable()
	mod.RawSetString("register_class", vm.NewFunction(e.luaRegisterClass))
	vm.SetGlobal("keel", mod)

	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

// Close releases the VM.
func (e *Engine) Close() { e.vm.Close() }

// DoString runs a chunk of Lua directly, mainly for tests and the editor
// console.
func (e *Engine) DoString(src string) error { return e.vm.DoString(src) }

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// luaRegisterClass implements keel.register_class(name, def). def may carry
// a `defaults` table of initial fields and a `resources` array of field names
// holding resource paths.
func (e *Engine) luaRegisterClass(L *lua.LState) int {
	name := L.CheckString(1)
	def := L.CheckTable(2)

	class := &Class{Name: name, Defaults: make(map[string]any), table: def}
	if defaults, ok := def.RawGetString("defaults").(*lua.LTable); ok {
		defaults.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				class.Defaults[string(ks)] = luaToGo(v)
			}
		})
	}
	if resources, ok := def.RawGetString("resources").(*lua.LTable); ok {
		resources.ForEach(func(_, v lua.LValue) {
			if vs, ok := v.(lua.LString); ok {
				class.Resources = append(class.Resources, string(vs))
			}
		})
	}

	e.classes[name] = class
	e.log.Debug("registered script class", zap.String("class", name))
	return 0
}

// RegisterClass registers a class from Go, for engine-built-in behaviors.
func (e *Engine) RegisterClass(class *Class) {
	e.classes[class.Name] = class
}

// Class looks up a registered class by name.
func (e *Engine) Class(name string) (*Class, bool) {
	c, ok := e.classes[name]
	return c, ok
}

// NewScript instantiates a class: defaults first, then overrides.
func (e *Engine) NewScript(class string, overrides map[string]any) (*Script, error) {
	c, ok := e.classes[class]
	if !ok {
		return nil, fmt.Errorf("scripting: unknown script class %q", class)
	}
	s := &Script{Class: class, Fields: make(map[string]any, len(c.Defaults))}
	for k, v := range c.Defaults {
		s.Fields[k] = v
	}
	for k, v := range overrides {
		s.Fields[k] = v
	}
	return s, nil
}

// Call invokes a method on a script class with the script's fields as self.
// A missing method is not an error: classes implement only the hooks they
// care about.
func (e *Engine) Call(s *Script, method string, dt float32) error {
	c, ok := e.classes[s.Class]
	if !ok {
		return fmt.Errorf("scripting: unknown script class %q", s.Class)
	}
	if c.table == nil {
		return nil
	}
	fn := c.table.RawGetString(method)
	if fn == lua.LNil {
		return nil
	}

	self := e.vm.NewTable()
	for k, v := range s.Fields {
		self.RawSetString(k, goToLua(v))
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, self, lua.LNumber(dt)); err != nil {
		return fmt.Errorf("scripting: %s.%s: %w", s.Class, method, err)
	}

	// Mutations the hook made on self flow back into the script fields.
	self.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			s.Fields[string(ks)] = luaToGo(v)
		}
	})
	return nil
}

func luaToGo(v lua.LValue) any {
	switch lv := v.(type) {
	case lua.LBool:
		return bool(lv)
	case lua.LNumber:
		return float64(lv)
	case lua.LString:
		return string(lv)
	default:
		return nil
	}
}

func goToLua(v any) lua.LValue {
	switch gv := v.(type) {
	case bool:
		return lua.LBool(gv)
	case int:
		return lua.LNumber(gv)
	case int64:
		return lua.LNumber(gv)
	case float32:
		return lua.LNumber(gv)
	case float64:
		return lua.LNumber(gv)
	case string:
		return lua.LString(gv)
	default:
		return lua.LNil
	}
}
