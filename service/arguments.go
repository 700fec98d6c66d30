package service

// Arguments is the resolved name→value set for one call: every declared
// parameter of a method appears exactly once, in declaration order.
//
// An Arguments is produced fresh per call by the binder and owned by that
// call; it is never shared or mutated after binding completes.
type Arguments struct {
	names  []string
	values map[string]any
}

// NewArguments creates an empty argument set with capacity for n parameters.
func NewArguments(n int) *Arguments {
	return &Arguments{
		names:  make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Set records the value for a parameter. First Set fixes the parameter's
// position; a later Set for the same name overwrites the value in place.
func (a *Arguments) Set(name string, v any) {
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = v
}

// Get returns the value bound to the named parameter.
func (a *Arguments) Get(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Len returns the number of bound parameters.
func (a *Arguments) Len() int { return len(a.names) }

// Names returns the parameter names in bound order.
func (a *Arguments) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Map returns a fresh name→value map suitable for handing to a serialization
// hook. Mutating the returned map does not affect the Arguments.
func (a *Arguments) Map() map[string]any {
	out := make(map[string]any, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}
