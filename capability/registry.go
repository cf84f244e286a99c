package capability

// Registry holds the capabilities available to a run, keyed by name while
// preserving registration order for stable schema presentation to models.
//
// A Registry is built up front and treated as immutable afterwards, which
// makes concurrent reads from parallel executions safe without locking.
type Registry struct {
	caps  map[string]Capability
	order []string
}

// NewRegistry creates a Registry preloaded with the given capabilities.
func NewRegistry(caps ...Capability) *Registry {
	r := &Registry{caps: make(map[string]Capability, len(caps))}
	for _, c := range caps {
		r.Register(c)
	}
	return r
}

// Register adds a capability. Registering a name twice replaces the earlier
// entry but keeps its position in the presentation order.
func (r *Registry) Register(c Capability) {
	name := c.Name()
	if _, exists := r.caps[name]; !exists {
		r.order = append(r.order, name)
	}
	r.caps[name] = c
}

// Lookup resolves a capability by name. The boolean reports whether the name
// is bound; callers must handle the unbound case explicitly.
func (r *Registry) Lookup(name string) (Capability, bool) {
	c, ok := r.caps[name]
	return c, ok
}

// All returns the capabilities in registration order.
func (r *Registry) All() []Capability {
	out := make([]Capability, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.caps[name])
	}
	return out
}

// Names returns the capability names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int { return len(r.caps) }
