package lint

import (
	"cmp"
	"slices"
	"sync"
)

// Registry holds all available lint rules, indexed by ID, name and alias.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Rule
	byName  map[string]Rule
	aliases map[string]string // alias -> canonical ID
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Rule),
		byName:  make(map[string]Rule),
		aliases: make(map[string]string),
	}
}

// Register adds a rule to the registry.
// If a rule with the same ID already exists, it is replaced.
func (r *Registry) Register(rule Rule) {
	desc := rule.Descriptor()

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byID[desc.ID]; ok {
		delete(r.byName, old.Descriptor().Name)
	}
	r.byID[desc.ID] = rule
	r.byName[desc.Name] = rule
}

// RegisterAlias maps an alias to a canonical rule ID.
// Used for legacy markdownlint names (e.g., "header-increment" -> "MD001").
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// Resolve returns the rule for a key, which may be a rule ID, name or alias.
func (r *Registry) Resolve(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID[key]; ok {
		return rule, true
	}
	if rule, ok := r.byName[key]; ok {
		return rule, true
	}
	if targetID, ok := r.aliases[key]; ok {
		if rule, ok := r.byID[targetID]; ok {
			return rule, true
		}
	}
	return nil, false
}

// Rules returns all registered rules sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		result = append(result, rule)
	}

	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.Descriptor().ID, b.Descriptor().ID)
	})

	return result
}

// Aliases returns the aliases registered for a rule ID, sorted.
func (r *Registry) Aliases(ruleID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []string
	for alias, id := range r.aliases {
		if id == ruleID {
			result = append(result, alias)
		}
	}
	slices.Sort(result)
	return result
}
