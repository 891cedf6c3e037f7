package costing

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ignite/outreach-planner/internal/domain"
)

// Registry holds the named cost scenarios and the "current scenario"
// pointer. Switching the current scenario is an O(1) pointer change and
// never mutates snapshots already handed out; callers processing a batch
// take one Snapshot at batch start and hold it for the duration.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]CostScenario
	current  string
	onChange func() // optional persistence hook
}

// NewRegistry creates a registry seeded with the built-in scenarios, with
// `realistic` current.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]CostScenario)}
	for _, s := range DefaultScenarios() {
		r.byName[s.Name] = s
	}
	r.current = ScenarioRealistic
	return r
}

// SetOnChange registers a hook invoked after every successful mutation
// (switch or upsert), used to persist the registry.
func (r *Registry) SetOnChange(fn func()) {
	r.mu.Lock()
	r.onChange = fn
	r.mu.Unlock()
}

// Snapshot returns an immutable copy of the current scenario.
func (r *Registry) Snapshot() CostScenario {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[r.current]
}

// CurrentName returns the name of the current scenario.
func (r *Registry) CurrentName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Get returns the named scenario.
func (r *Registry) Get(name string) (CostScenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	if !ok {
		return CostScenario{}, fmt.Errorf("scenario %q: %w", name, domain.ErrUnknownScenario)
	}
	return s, nil
}

// SetCurrent switches the current scenario by name. A switch to an unknown
// scenario is rejected and leaves the current scenario unchanged.
func (r *Registry) SetCurrent(name string) error {
	r.mu.Lock()
	if _, ok := r.byName[name]; !ok {
		r.mu.Unlock()
		return fmt.Errorf("switch scenario %q: %w", name, domain.ErrUnknownScenario)
	}
	r.current = name
	hook := r.onChange
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

// Upsert adds or replaces a named scenario. The current pointer is not
// moved; in-flight snapshots are unaffected.
func (r *Registry) Upsert(s CostScenario) error {
	if s.Name == "" {
		return fmt.Errorf("upsert scenario: %w: empty name", domain.ErrInvalidInput)
	}
	r.mu.Lock()
	r.byName[s.Name] = s
	hook := r.onChange
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

// List returns all scenarios sorted by name.
func (r *Registry) List() []CostScenario {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]CostScenario, 0, len(r.byName))
	for _, s := range r.byName {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Replace swaps the full scenario set and current pointer, used when loading
// persisted state. Falls back to realistic when the persisted current name
// is missing from the set.
func (r *Registry) Replace(scenarios []CostScenario, current string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName = make(map[string]CostScenario, len(scenarios))
	for _, s := range scenarios {
		r.byName[s.Name] = s
	}
	// Keep the built-ins available even if the persisted file dropped them.
	for _, s := range DefaultScenarios() {
		if _, ok := r.byName[s.Name]; !ok {
			r.byName[s.Name] = s
		}
	}
	if _, ok := r.byName[current]; ok {
		r.current = current
	} else {
		r.current = ScenarioRealistic
	}
}
