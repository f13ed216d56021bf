package transform

import (
	"fmt"
	"sync"
)

// Registry holds all known rules. Registration order is preserved so
// priority ties resolve deterministically, and rules can be toggled
// active without being removed.
type Registry struct {
	mu     sync.RWMutex
	rules  []Rule
	byID   map[string]Rule
	active map[string]bool
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Rule),
		active: make(map[string]bool),
	}
}

// Register adds a rule and marks it active. Duplicate IDs are rejected.
func (r *Registry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[rule.ID()]; exists {
		return fmt.Errorf("rule already registered: %s", rule.ID())
	}
	r.rules = append(r.rules, rule)
	r.byID[rule.ID()] = rule
	r.active[rule.ID()] = true
	return nil
}

// Activate re-enables a rule by ID.
func (r *Registry) Activate(id string) error {
	return r.setActive(id, true)
}

// Deactivate disables a rule by ID without removing it.
func (r *Registry) Deactivate(id string) error {
	return r.setActive(id, false)
}

func (r *Registry) setActive(id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[id]; !exists {
		return fmt.Errorf("unknown rule: %s", id)
	}
	r.active[id] = active
	return nil
}

// ByID looks up a rule.
func (r *Registry) ByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// ActiveRules returns the active rules in registration order.
func (r *Registry) ActiveRules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Rule
	for _, rule := range r.rules {
		if r.active[rule.ID()] {
			out = append(out, rule)
		}
	}
	return out
}

// AllRules returns every registered rule in registration order.
func (r *Registry) AllRules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// IsActive reports whether a rule is currently active.
func (r *Registry) IsActive(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active[id]
}
