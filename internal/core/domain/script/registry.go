package script

import (
	"sort"
)

// Registry maps script names to scripts. The first script inserted under a
// name is kept; later inserts for the same name are ignored.
type Registry struct {
	scripts map[string]Script
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{scripts: make(map[string]Script)}
}

// Insert adds the script unless its name is already registered. It reports
// whether the script was added.
func (r *Registry) Insert(s Script) bool {
	if _, exists := r.scripts[s.name]; exists {
		return false
	}
	r.scripts[s.name] = s
	return true
}

// Has reports whether a script with the given name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.scripts[name]
	return ok
}

// Get returns the script registered under name
func (r *Registry) Get(name string) (Script, bool) {
	s, ok := r.scripts[name]
	return s, ok
}

// Len returns the number of registered scripts
func (r *Registry) Len() int {
	return len(r.scripts)
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scripts))
	for name := range r.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scripts returns the registered scripts sorted by name
func (r *Registry) Scripts() []Script {
	names := r.Names()
	scripts := make([]Script, 0, len(names))
	for _, name := range names {
		scripts = append(scripts, r.scripts[name])
	}
	return scripts
}

// ExecutorTable maps package manager executors to Custom overrides. Only
// named executors can be keys and the first override for a key wins.
type ExecutorTable struct {
	overrides map[Executor]Executor
}

// NewExecutorTable creates an empty executor table
func NewExecutorTable() *ExecutorTable {
	return &ExecutorTable{overrides: make(map[Executor]Executor)}
}

// Register records tool as the override for key. It reports whether the
// override was stored; invalid keys, empty tools and keys that already have
// an override are rejected.
func (t *ExecutorTable) Register(key Executor, tool string) bool {
	if !key.IsNamed() || tool == "" {
		return false
	}
	if _, exists := t.overrides[key]; exists {
		return false
	}
	t.overrides[key] = CustomExecutor(tool)
	return true
}

// Lookup returns the override registered for key
func (t *ExecutorTable) Lookup(key Executor) (Executor, bool) {
	override, ok := t.overrides[key]
	return override, ok
}

// Resolve returns the override for e, or e itself when none is registered
func (t *ExecutorTable) Resolve(e Executor) Executor {
	if override, ok := t.overrides[e]; ok {
		return override
	}
	return e
}

// Len returns the number of registered overrides
func (t *ExecutorTable) Len() int {
	return len(t.overrides)
}
