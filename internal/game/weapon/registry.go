package weapon

import "fmt"

// Registry holds loaded weapon profiles indexed by ID, preserving load order.
type Registry struct {
	profiles map[string]*Profile
	order    []string
}

// NewRegistry returns an empty Registry.
//
// Postcondition: the internal map is initialised.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]*Profile)}
}

// Register adds p to the registry.
//
// Precondition:  p must not be nil.
// Postcondition: Profile(p.ID) returns p; returns error if p.ID already registered.
func (r *Registry) Register(p *Profile) error {
	if _, exists := r.profiles[p.ID]; exists {
		return fmt.Errorf("weapon: Registry.Register: profile ID %q already registered", p.ID)
	}
	r.profiles[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

// RegisterAll registers every profile in ps, stopping at the first duplicate.
func (r *Registry) RegisterAll(ps []*Profile) error {
	for _, p := range ps {
		if err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}

// Profile returns the profile for id and whether it was found.
//
// Postcondition: ok is true iff the id is registered.
func (r *Registry) Profile(id string) (*Profile, bool) {
	p, ok := r.profiles[id]
	return p, ok
}

// All returns the registered profiles in registration order.
func (r *Registry) All() []*Profile {
	out := make([]*Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id])
	}
	return out
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int { return len(r.order) }
