package service

// Registry is an explicit collection of service descriptors keyed by service
// name. There is no package-level registry: whichever component needs one is
// handed a *Registry at setup time.
//
// Registration happens once during process startup; lookups afterwards are
// read-only, so no locking is required.
type Registry struct {
	order    []string
	services map[string]*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{services: make(map[string]*Descriptor)}
}

// Register adds a descriptor. Registering two services with the same name is
// a *DeclarationError.
func (r *Registry) Register(d *Descriptor) error {
	if _, dup := r.services[d.Name()]; dup {
		return &DeclarationError{Service: d.Name(), Reason: "duplicate service name"}
	}
	r.order = append(r.order, d.Name())
	r.services[d.Name()] = d
	return nil
}

// Lookup returns the descriptor registered under the given service name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.services[name]
	return d, ok
}

// Names returns the registered service names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
