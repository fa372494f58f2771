package commands

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu     sync.RWMutex
	cmds   []Command
	byName map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds c under its name and aliases. It fails without changing the
// registry if any of them is taken.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	if i := slices.IndexFunc(names, r.taken); i >= 0 {
		return fmt.Errorf("command already registered: %s", names[i])
	}
	for _, name := range names {
		r.byName[name] = c
	}
	r.cmds = append(r.cmds, c)
	return nil
}

func (r *Registry) taken(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Lookup returns the command registered under name or alias.
func (r *Registry) Lookup(name string) (Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if cmd, ok := r.byName[name]; ok {
		return cmd, nil
	}
	return nil, fmt.Errorf("unknown command: %s", name)
}

// All returns the registered commands ordered by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := slices.Clone(r.cmds)
	slices.SortFunc(all, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return all
}

// DefaultRegistry holds the commands registered by this package.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a name clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
