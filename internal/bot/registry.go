package bot

import (
	"fmt"
	"sync"
)

// ModuleRegistry holds modules registered at startup.
type ModuleRegistry struct {
	mu      sync.RWMutex
	modules []Module
	names   map[string]bool
}

// NewModuleRegistry creates an empty module registry.
func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{
		modules: make([]Module, 0),
		names:   make(map[string]bool),
	}
}

// Register adds a module. It panics if a module with the same name is
// already registered, like database/sql.Register does for drivers.
func (r *ModuleRegistry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.names[m.Name()] {
		panic(fmt.Sprintf("bot: module %q registered twice", m.Name()))
	}
	r.names[m.Name()] = true
	r.modules = append(r.modules, m)
}

// Modules returns a snapshot of all registered modules in registration order.
func (r *ModuleRegistry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Module, len(r.modules))
	copy(result, r.modules)
	return result
}

// Global registry instance for module self-registration via init()
var globalRegistry = NewModuleRegistry()

// Register adds a module to the global registry.
// This is typically called from module init() functions.
func Register(m Module) {
	globalRegistry.Register(m)
}

// Modules returns all modules from the global registry.
func Modules() []Module {
	return globalRegistry.Modules()
}

// ResetGlobalRegistry resets the global registry.
// This is intended for testing purposes only.
func ResetGlobalRegistry() {
	globalRegistry = NewModuleRegistry()
}
