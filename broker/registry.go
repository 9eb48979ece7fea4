package broker

import (
	"fmt"
	"sort"
	"sync"

	"github.com/miladsoleymani/pubmux/core"
)

// Factory opens one independently connected publisher against url.
type Factory func(cfg Config, url string) (core.Publisher, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register adds a named publisher factory. Plugins call this from init().
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = factory
}

// Create opens a publisher by name using the registered factory.
func Create(name string, cfg Config, url string) (core.Publisher, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("pubmux: unknown broker %q", name)
	}
	return f(cfg, url)
}

// Names returns the registered broker names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
