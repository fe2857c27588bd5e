package xop

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

var (
	ErrInvalidID     = errors.New("invalid extended operation id")
	ErrInvalidConfig = errors.New("invalid extended operation config")
)

// Registry maps extended operation ids to their configs. Registration
// overwrites; Clear wipes the registry for test isolation.
type Registry struct {
	mu sync.RWMutex
	d  map[string]*Config
}

func NewRegistry() *Registry {
	return &Registry{d: map[string]*Config{}}
}

func (r *Registry) Register(xid string, cfg *Config) error {
	if !ValidID(xid) {
		return fmt.Errorf("%w: %q", ErrInvalidID, xid)
	}
	if cfg == nil || cfg.Arr == nil || cfg.Obj == nil {
		return fmt.Errorf("%w: %q requires arr and obj handlers", ErrInvalidConfig, xid)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.d[xid] = cfg
	return nil
}

func (r *Registry) MustRegister(xid string, cfg *Config) {
	if err := r.Register(xid, cfg); err != nil {
		panic(err)
	}
}

func (r *Registry) Lookup(xid string) *Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d[xid]
}

func (r *Registry) Has(xid string) bool {
	return r.Lookup(xid) != nil
}

func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.d = map[string]*Config{}
}

func (r *Registry) XIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.d))
}

var defaultRegistry = NewRegistry()

// Default is the process-wide registry used when no registry is
// injected explicitly.
func Default() *Registry {
	return defaultRegistry
}

func Register(xid string, cfg *Config) error {
	return defaultRegistry.Register(xid, cfg)
}

func Has(xid string) bool {
	return defaultRegistry.Has(xid)
}

func Clear() {
	defaultRegistry.Clear()
}
